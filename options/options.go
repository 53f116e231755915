// Package options defines the option interfaces accepted by docstore clients, requests and uploads.
package options

// NewClientOption is applied to a client (or any other configurable T) at construction time.
// Example:
// ```
//
//	type tokenOpt struct{ token string }
//	func (o *tokenOpt) Apply(c *docstore.Client) { ... }
//	func (o *tokenOpt) NewClientOptionName() string { return "token" }
//
// ```
type NewClientOption[T any] interface {
	Apply(*T)
	NewClientOptionName() string
}

// ApplyOptions applies every non-nil option to c in order.
func ApplyOptions[T any](c *T, opts ...NewClientOption[T]) {
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.Apply(c)
	}
}

// RequestOption interface contains function that should be implemented by any custom option to qualify as a
// per-request option. Implementations are type-switched by the reference that issues the request.
type RequestOption interface {
	RequestOptionName() string
}

// UploadOption interface contains function that should be implemented by any custom option to qualify as an
// upload option.
type UploadOption interface {
	UploadOptionName() string
}
