/*
Package dispatch sends requests to the document-store API and keeps their responses in a cache.Cache for
offline reads.

Every request carries the API key as a bearer token, the project id in X-Project-ID and a fresh X-Request-ID.
Bodies are JSON unless Request.RawBody is set.

# Cache policies

GET requests are answered according to their CachePolicy:

  - NetworkFirst asks the service and falls back to the cache when the service is unavailable.
  - CacheFirst answers from the cache and asks the service on a miss.
  - NetworkOnly bypasses the cache entirely.
  - CacheOnly never touches the network.

Requests using CacheDefault get Options.DefaultCachePolicy. A service is unavailable when the request could not
be sent or it answered with a 5xx status; client errors such as 404 are returned as they are. Mutations are never
answered from the cache. Unless sent with NetworkOnly, PUT and PATCH responses replace the cached entry of their
path and POST responses are stored under Request.CachePath when it is set. DELETE evicts the entry.

Cache failures are logged and never fail a request.

# Errors

Failed requests return an *APIError for responses with an error status and a *TransportError when no response
was received. Both match the sentinel errors with errors.Is:

	if errors.Is(err, dispatch.ErrNotFound) {
		...
	}
	if dispatch.IsUnavailable(err) {
		...
	}
*/
package dispatch
