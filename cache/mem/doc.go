/*
Package mem is an in-memory cache.Cache.

	c := mem.New(mem.WithMaxEntries(500))
	client, err := docstore.New(docstore.WithCache(c), ...)

Entries live as long as the process. When MaxEntries is set, adding a new key to a full cache evicts the entry
that was written least recently.
*/
package mem
