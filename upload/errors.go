package upload

import (
	"fmt"

	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/options/newupload"
	"github.com/c2fo/docstore/types"
)

// ChunkError is returned when a chunk of a chunked upload fails. Chunks before Chunk were accepted by the service.
type ChunkError struct {
	FileID   string
	UploadID string
	// Chunk is the zero-based index of the failed chunk and Offset its first byte.
	Chunk  int
	Offset int64
	// BytesUploaded is the number of bytes the service accepted. Chunks are sent in order, so it always equals
	// Offset; it mirrors types.UploadProgress.BytesUploaded.
	BytesUploaded int64
	// Last is the service's response to the last accepted chunk, nil when the first chunk failed.
	Last *types.File
	Err  error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("upload of file %s failed at chunk %d (offset %d): %v", e.FileID, e.Chunk, e.Offset, e.Err)
}

// Unwrap returns the cause.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// ResumeOptions returns the upload options that continue this upload at the failed chunk.
func (e *ChunkError) ResumeOptions() []options.UploadOption {
	return []options.UploadOption{
		newupload.WithFileID(e.FileID),
		newupload.WithResume(e.UploadID, e.Chunk),
	}
}
