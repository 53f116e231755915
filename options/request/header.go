package request

import "github.com/c2fo/docstore/options"

const optionNameHeader = "requestHeader"

// WithHeader returns Header implementation of RequestOption
func WithHeader(key, value string) options.RequestOption {
	return &Header{Key: key, Value: value}
}

// Header represents the RequestOption that adds a header to one request.
type Header struct {
	Key   string
	Value string
}

// RequestOptionName returns the name of Header option
func (o *Header) RequestOptionName() string {
	return optionNameHeader
}
