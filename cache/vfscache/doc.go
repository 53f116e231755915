/*
Package vfscache is a cache.Cache that persists entries as files on a vfs.Location, so cached responses survive
process restarts and can live on local disk or any remote store vfs supports.

	// ~/.docstore/cache/ on the local filesystem
	c, err := vfscache.NewDefault()

	// a shared cache in a bucket
	c, err := vfscache.NewFromURI("s3://my-bucket/docstore-cache/")

Each key is stored in its own file named after the hex SHA-256 of the key, with a ".json" extension. Files at the
location without that extension are never touched, so a cache may share a directory with other data.
*/
package vfscache
