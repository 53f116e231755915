package upload

import (
	"github.com/hashicorp/go-hclog"

	"github.com/c2fo/docstore/options"
)

const (
	// DefaultChunkSize is the size of each chunk of a chunked upload and the largest payload sent in one request.
	DefaultChunkSize int64 = 5 * 1024 * 1024

	optionNameChunkSize = "chunkSize"
	optionNameLogger    = "logger"
)

// Options holds Uploader configuration.
type Options struct {
	// ChunkSize splits larger sources into chunks. Sources of at most ChunkSize bytes are uploaded directly.
	ChunkSize int64
}

// NewOptions creates Options with default values.
func NewOptions() Options {
	return Options{ChunkSize: DefaultChunkSize}
}

// WithChunkSize sets the chunk size. Values below one byte keep the default.
func WithChunkSize(size int64) options.NewClientOption[Uploader] {
	return &chunkSizeOpt{size: size}
}

type chunkSizeOpt struct {
	size int64
}

func (o *chunkSizeOpt) Apply(u *Uploader) {
	if o.size > 0 {
		u.opts.ChunkSize = o.size
	}
}

func (o *chunkSizeOpt) NewClientOptionName() string {
	return optionNameChunkSize
}

// WithLogger sets the logger chunk progress is traced to.
func WithLogger(logger hclog.Logger) options.NewClientOption[Uploader] {
	return &loggerOpt{logger: logger}
}

type loggerOpt struct {
	logger hclog.Logger
}

func (o *loggerOpt) Apply(u *Uploader) {
	if o.logger != nil {
		u.logger = o.logger
	}
}

func (o *loggerOpt) NewClientOptionName() string {
	return optionNameLogger
}
