package request

import "github.com/c2fo/docstore/options"

const optionNamePermissions = "requestPermissions"

// WithPermissions returns Permissions implementation of RequestOption
func WithPermissions(permissions ...string) options.RequestOption {
	return Permissions(permissions)
}

// Permissions represents the RequestOption that sets the permissions of a created or replaced document, e.g.
// `read("any")` or `update("user:42")`. Reads ignore it.
type Permissions []string

// RequestOptionName returns the name of Permissions option
func (Permissions) RequestOptionName() string {
	return optionNamePermissions
}
