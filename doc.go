/*
Package docstore is a client for a remote document-store and file-storage HTTP API.

# Philosophy

The service is addressed through a tree of references that are plain values:

	Project -> Collection -> Document
	Project -> Bucket     -> File

Building a reference never talks to the service and never fails; ids are validated when a request is issued. Every
reference prints as its REST path (fmt.Stringer), so a reference in a log line shows exactly what was requested,
and Client.ParsePath turns such a path back into a reference.

Reads go through a local cache. With the default NetworkFirst policy a read asks the service and, when the service
cannot be reached or answers 5xx, falls back to the last cached response. Successful writes update the cached copy
of the resource they touch, so an offline read returns what was last written.

# Usage

	client, err := docstore.New(
	    docstore.WithEndpoint("https://docstore.example.com/v1"),
	    docstore.WithProject("blog"),
	    docstore.WithAPIKey(os.Getenv("DOCSTORE_API_KEY")),
	    docstore.WithCache(cache),
	)

	posts := client.Collection("posts")
	doc, err := posts.Create(ctx, "", map[string]any{"title": "Hello"}, request.WithPermissions(`read("any")`))
	doc, err = posts.Doc(doc.ID).Update(ctx, map[string]any{"title": "Hello, world"})

	list, err := posts.List(ctx, docstore.NewQuery().Where("status", docstore.Equal, "published").Limit(10))

	// read from the cache only, e.g. when known to be offline
	doc, err = posts.Doc("intro").Get(ctx, request.WithCachePolicy(dispatch.CacheOnly))

# Files

	src, err := upload.FromPath("/tmp/cover.png")
	file, err := client.Bucket("media").Upload(ctx, src,
	    newupload.WithProgress(func(p types.UploadProgress) { log.Printf("%.0f%%", p.Percent) }),
	)
	_, err = client.Bucket("media").File(file.ID).DownloadToURI(ctx, "s3://backups/cover.png")

Sources and download targets are vfs URIs, so any vfs backend (os, mem, S3, GCS, Azure, FTP, SFTP) can be read from
or written to.

# Caches

Two caches are provided: cache/mem keeps responses in memory, cache/vfscache persists them as files on any vfs
location, by default ~/.docstore/cache/.

	cache, err := vfscache.NewDefault()

# Errors

Non-2xx answers are returned as *APIError and transport failures as *TransportError. Both match the sentinel errors
of this package:

	if errors.Is(err, docstore.ErrNotFound) { ... }
	if docstore.IsUnavailable(err) { ... }
*/
package docstore
