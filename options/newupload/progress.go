package newupload

import (
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/types"
)

const optionNameProgress = "uploadProgress"

// WithProgress returns Progress implementation of UploadOption
func WithProgress(fn func(types.UploadProgress)) options.UploadOption {
	return Progress(fn)
}

// Progress represents the UploadOption that receives a progress report after every uploaded chunk.
type Progress func(types.UploadProgress)

// UploadOptionName returns the name of Progress option
func (Progress) UploadOptionName() string {
	return optionNameProgress
}
