// Package request provides per-request options for docstore references.
package request

import (
	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
)

const optionNameCachePolicy = "requestCachePolicy"

// WithCachePolicy returns CachePolicy implementation of RequestOption
func WithCachePolicy(policy dispatch.CachePolicy) options.RequestOption {
	return &CachePolicy{Policy: policy}
}

// CachePolicy represents the RequestOption that overrides the client's cache policy for one read.
type CachePolicy struct {
	Policy dispatch.CachePolicy
}

// RequestOptionName returns the name of CachePolicy option
func (o *CachePolicy) RequestOptionName() string {
	return optionNameCachePolicy
}
