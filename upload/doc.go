/*
Package upload sends files to a docstore bucket.

A Source of at most ChunkSize bytes (5 MiB by default) is uploaded in a single multipart request, or as a base64
JSON payload with newupload.WithBase64. Larger sources are split into ChunkSize chunks uploaded in order; each
chunk carries a Content-Range header and, from the second chunk on, the X-Upload-ID returned for the first.

	u := upload.New(dispatcher, upload.WithChunkSize(8<<20))
	src, err := upload.FromURI("s3://reports/2024.pdf")
	...
	file, err := u.Upload(ctx, "/projects/p/buckets/reports", src,
	    newupload.WithProgress(func(p types.UploadProgress) { ... }),
	)

A failed chunk returns a *ChunkError. The upload can be continued from that chunk within the same process:

	var chunkErr *upload.ChunkError
	if errors.As(err, &chunkErr) {
	    file, err = u.Upload(ctx, bucketPath, src, chunkErr.ResumeOptions()...)
	}
*/
package upload
