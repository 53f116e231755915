package newupload

import "github.com/c2fo/docstore/options"

const optionNameFileID = "uploadFileID"

// WithFileID returns FileID implementation of UploadOption
func WithFileID(id string) options.UploadOption {
	fid := FileID(id)
	return &fid
}

// FileID represents the UploadOption that sets the id of the uploaded file. A random uuid is used otherwise.
type FileID string

// UploadOptionName returns the name of FileID option
func (f *FileID) UploadOptionName() string {
	return optionNameFileID
}
