/*
Package newupload consists of options accepted by BucketRef.Upload and upload.Uploader.Upload.

Usage

	file, err := bucket.Upload(ctx, upload.FromPath("/tmp/report.pdf"),
	    newupload.WithFileID("report-2024"),
	    newupload.WithContentType("application/pdf"),
	    newupload.WithProgress(func(p types.UploadProgress) {
	        fmt.Printf("%.0f%%\n", p.Percent)
	    }),
	)

A failed chunked upload may be continued from the failed chunk within the same process:

	var chunkErr *upload.ChunkError
	if errors.As(err, &chunkErr) {
	    file, err = bucket.Upload(ctx, src, chunkErr.ResumeOptions()...)
	}
*/
package newupload
