package upload

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/c2fo/vfs/v7"
	"github.com/c2fo/vfs/v7/vfssimple"

	"github.com/c2fo/docstore/utils"
)

// Source is the payload of an upload.
//
// Open may be called more than once when an upload is resumed; sources that can only be read once (FromReader)
// fail the second Open.
type Source interface {
	// Name is the file name sent to the service.
	Name() string
	// Size is the exact number of bytes Open yields.
	Size() (int64, error)
	Open() (io.ReadCloser, error)
}

// ErrSourceConsumed is returned when a single-use source is opened twice.
var ErrSourceConsumed = errors.New("upload source has already been read")

type readSeekNopCloser struct {
	io.ReadSeeker
}

func (readSeekNopCloser) Close() error { return nil }

type bytesSource struct {
	name string
	data []byte
}

// FromBytes uploads data held in memory.
func FromBytes(name string, data []byte) Source {
	return &bytesSource{name: name, data: data}
}

func (s *bytesSource) Name() string { return s.name }

func (s *bytesSource) Size() (int64, error) { return int64(len(s.data)), nil }

func (s *bytesSource) Open() (io.ReadCloser, error) {
	return readSeekNopCloser{bytes.NewReader(s.data)}, nil
}

type readerSource struct {
	name   string
	r      io.Reader
	size   int64
	opened bool
}

// FromReader uploads exactly size bytes read from r. The reader is consumed on the first Open. If r is an
// io.Seeker, resuming skips to the failed chunk with Seek; otherwise r cannot be resumed.
func FromReader(name string, r io.Reader, size int64) Source {
	return &readerSource{name: name, r: r, size: size}
}

func (s *readerSource) Name() string { return s.name }

func (s *readerSource) Size() (int64, error) { return s.size, nil }

func (s *readerSource) Open() (io.ReadCloser, error) {
	if rs, ok := s.r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return readSeekNopCloser{rs}, nil
	}
	if s.opened {
		return nil, ErrSourceConsumed
	}
	s.opened = true
	return io.NopCloser(s.r), nil
}

type fileSource struct {
	file vfs.File
}

// FromFile uploads a vfs file from any backend (os, mem, s3, gs, azure, ftp, sftp).
func FromFile(file vfs.File) Source {
	return &fileSource{file: file}
}

func (s *fileSource) Name() string { return s.file.Name() }

func (s *fileSource) Size() (int64, error) {
	size, err := s.file.Size()
	if err != nil {
		return 0, err
	}
	return int64(size), nil
}

func (s *fileSource) Open() (io.ReadCloser, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return s.file, nil
}

// FromURI uploads the file at a vfs URI, e.g. s3://bucket/report.pdf or file:///tmp/report.pdf.
func FromURI(uri string) (Source, error) {
	file, err := vfssimple.NewFile(uri)
	if err != nil {
		return nil, err
	}
	return FromFile(file), nil
}

// FromPath uploads a local file. Relative paths are resolved against the working directory.
func FromPath(p string) (Source, error) {
	if p == "" || strings.HasSuffix(p, "/") {
		return nil, errors.New("upload source path must name a file")
	}
	uri, err := utils.PathToURI(p)
	if err != nil {
		return nil, err
	}
	return FromURI(uri)
}
