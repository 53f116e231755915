// Package utils holds path and error helpers shared by the docstore packages.
package utils

import (
	"errors"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	// ErrBadID constant is returned when an id can not be used as a path segment
	ErrBadID = "id is invalid - may not be empty, \".\", \"..\" or contain slashes"
	// ErrBadPath constant is returned when a resource path is not absolute
	ErrBadPath = "resource path is invalid - must include a leading slash"
	// TouchCopyMinBufferSize min buffer size used in TouchCopyBuffered in bytes
	TouchCopyMinBufferSize = 262144
)

// regex to test whether the last character is a '/'
var hasTrailingSlash = regexp.MustCompile("/$")

// regex to test whether the first character is a '/'
var hasLeadingSlash = regexp.MustCompile("^/")

// RemoveTrailingSlash removes trailing slash, if any
func RemoveTrailingSlash(path string) string {
	return strings.TrimRight(path, "/")
}

// RemoveLeadingSlash removes leading slash, if any
func RemoveLeadingSlash(path string) string {
	return strings.TrimLeft(path, "/")
}

// EnsureTrailingSlash adds a trailing slash if needed.
func EnsureTrailingSlash(dir string) string {
	if hasTrailingSlash.MatchString(dir) {
		return dir
	}
	return dir + "/"
}

// ValidateID ensures that an id can be used as a single path segment
func ValidateID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, "/\\") {
		return errors.New(ErrBadID)
	}
	return nil
}

// JoinPath builds an absolute resource path out of segments, percent-encoding each one.
//
//	JoinPath("projects", "p 1", "collections") : /projects/p%201/collections
func JoinPath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// SplitPath is the inverse of JoinPath. It returns the unescaped segments of an absolute resource path.
func SplitPath(p string) ([]string, error) {
	if !hasLeadingSlash.MatchString(p) {
		return nil, errors.New(ErrBadPath)
	}
	p = RemoveTrailingSlash(RemoveLeadingSlash(p))
	if p == "" {
		return []string{}, nil
	}

	parts := strings.Split(p, "/")
	for i := range parts {
		s, err := url.PathUnescape(parts[i])
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return parts, nil
}

// PathToURI takes a relative or absolute path and returns an OS URI.
// We assume non-scheme path is an OS File or Location.
// We assume relative paths are relative to the pwd (program's working directory)
//
// /absolute/path/to/file.txt : file:///absolute/path/to/file.txt
// /some/absolute/path/       : file:///absolute/path/
// relative/path/to/file.txt  : file:///absolute/path/with/relative/path/to/file.txt
func PathToURI(p string) (string, error) {
	if p == "" {
		p = "/"
	}

	u, err := url.Parse(p)
	if err != nil {
		return "", err
	}

	// if scheme is found, it's already a URI
	if u.Scheme != "" {
		return p, nil
	}

	absPath := p
	if p[0] != '/' {
		absPath, err = filepath.Abs(p)
		if err != nil {
			return "", err
		}
		if runtime.GOOS == "windows" {
			absPath = "/" + absPath
		}
	}

	absPath = filepath.ToSlash(absPath)

	// Abs() strips trailing slashes so add back if original path had slash
	if p[len(p)-1:] == "/" {
		absPath = EnsureTrailingSlash(absPath)
	}

	return "file://" + absPath, nil
}

// TouchCopyBuffered is a wrapper around io.CopyBuffer which ensures that even empty sources will get written as an
// empty file. It guarantees a Write() call on the target and returns the number of bytes copied.
// bufferSize is in bytes and if is less than or equal to zero TouchCopyMinBufferSize is used.
func TouchCopyBuffered(writer io.Writer, reader io.Reader, bufferSize int) (int64, error) {
	if bufferSize <= 0 {
		bufferSize = TouchCopyMinBufferSize
	}

	size, err := io.CopyBuffer(writer, reader, make([]byte, bufferSize))
	if err != nil {
		return size, err
	}
	if size == 0 {
		if _, err := writer.Write([]byte{}); err != nil {
			return 0, err
		}
	}
	return size, nil
}
