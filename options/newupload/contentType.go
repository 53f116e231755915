package newupload

import "github.com/c2fo/docstore/options"

const optionNameContentType = "uploadContentType"

// WithContentType returns ContentType implementation of UploadOption
func WithContentType(contentType string) options.UploadOption {
	ct := ContentType(contentType)
	return &ct
}

// ContentType represents the UploadOption that is used to explicitly specify a content type on uploaded files.
// Without it the content type is detected from the first bytes of the payload.
type ContentType string

// UploadOptionName returns the name of ContentType option
func (ct *ContentType) UploadOptionName() string {
	return optionNameContentType
}
