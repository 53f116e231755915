package newupload

import "github.com/c2fo/docstore/options"

const optionNameBase64 = "uploadBase64"

// WithBase64 returns Base64 implementation of UploadOption
func WithBase64() options.UploadOption {
	return Base64{}
}

// Base64 represents the UploadOption that sends direct (non-chunked) uploads as a base64 JSON payload instead of
// multipart form data. Chunked uploads are always multipart.
type Base64 struct{}

// UploadOptionName returns the name of Base64 option
func (Base64) UploadOptionName() string {
	return optionNameBase64
}
