package newupload

import "github.com/c2fo/docstore/options"

const optionNameResume = "uploadResume"

// WithResume returns Resume implementation of UploadOption
func WithResume(uploadID string, chunk int) options.UploadOption {
	return &Resume{UploadID: uploadID, Chunk: chunk}
}

// Resume represents the UploadOption that continues a chunked upload at the given zero-based chunk index, reusing
// the upload id returned by the server for the first chunk.
type Resume struct {
	UploadID string
	Chunk    int
}

// UploadOptionName returns the name of Resume option
func (r *Resume) UploadOptionName() string {
	return optionNameResume
}
