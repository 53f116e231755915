package mocks

import (
	"io"
	"strings"
)

// NewStringSource returns a Source mock whose content is data. Every Open returns a fresh reader, so the source
// can be reopened like a file.
func NewStringSource(data, name string) *Source {
	src := &Source{}
	src.On("Name").Return(name).Maybe()
	src.On("Size").Return(int64(len(data)), nil).Maybe()
	src.On("Open").Return(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(data)), nil
	}).Maybe()
	return src
}
