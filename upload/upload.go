package upload

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/options/newupload"
	"github.com/c2fo/docstore/types"
	"github.com/c2fo/docstore/utils"
)

// sniffLen is how many leading bytes content type detection looks at.
const sniffLen = 3072

// ErrShortRead is returned when a source yields fewer bytes than its declared size.
var ErrShortRead = errors.New("upload source ended before its declared size")

// Doer sends one API request. *dispatch.Dispatcher implements it.
type Doer interface {
	Do(ctx context.Context, req *dispatch.Request) (*dispatch.Response, error)
}

// Uploader sends sources to a bucket, directly or in chunks.
type Uploader struct {
	doer   Doer
	opts   Options
	logger hclog.Logger
}

// New initializer for Uploader.
func New(d Doer, opts ...options.NewClientOption[Uploader]) *Uploader {
	u := &Uploader{
		doer:   d,
		opts:   NewOptions(),
		logger: hclog.NewNullLogger(),
	}
	options.ApplyOptions(u, opts...)
	return u
}

// Options returns the uploader configuration.
func (u *Uploader) Options() Options {
	return u.opts
}

// settings is the parsed form of the per-upload options.
type settings struct {
	fileID      string
	contentType string
	base64      bool
	progress    func(types.UploadProgress)
	resume      *newupload.Resume
}

func parseOptions(opts []options.UploadOption) settings {
	var s settings
	for _, o := range opts {
		switch o := o.(type) {
		case *newupload.FileID:
			s.fileID = string(*o)
		case *newupload.ContentType:
			s.contentType = string(*o)
		case newupload.Base64, *newupload.Base64:
			s.base64 = true
		case newupload.Progress:
			s.progress = o
		case *newupload.Resume:
			s.resume = o
		}
	}
	return s
}

// Upload sends src to the bucket at bucketPath (e.g. /projects/p/buckets/b) and returns the stored file.
//
// Sources of at most ChunkSize bytes are sent in one request. Larger sources are split into ChunkSize chunks
// sent in order; a failing chunk aborts the upload with a *ChunkError.
func (u *Uploader) Upload(ctx context.Context, bucketPath string, src Source, opts ...options.UploadOption) (*types.File, error) {
	s := parseOptions(opts)

	size, err := src.Size()
	if err != nil {
		return nil, fmt.Errorf("unable to determine source size: %w", err)
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid source size %d", size)
	}

	if s.fileID == "" {
		s.fileID = uuid.NewString()
	}
	if err := utils.ValidateID(s.fileID); err != nil {
		return nil, err
	}

	if size <= u.opts.ChunkSize {
		return u.direct(ctx, bucketPath, src, size, s)
	}
	return u.chunked(ctx, bucketPath, src, size, s)
}

func (u *Uploader) direct(ctx context.Context, bucketPath string, src Source, size int64, s settings) (*types.File, error) {
	p, err := openPayload(src, 0, s.contentType)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	data, err := readChunk(p, size)
	if err != nil {
		return nil, err
	}

	var req *dispatch.Request
	if s.base64 {
		req = &dispatch.Request{
			Method: http.MethodPost,
			Path:   bucketPath + "/files/base64",
			Body: map[string]string{
				"fileId":   s.fileID,
				"name":     src.Name(),
				"mimeType": p.contentType,
				"data":     base64.StdEncoding.EncodeToString(data),
			},
		}
	} else {
		req, err = multipartRequest(bucketPath, s.fileID, src.Name(), p.contentType, data)
		if err != nil {
			return nil, err
		}
	}
	req.CachePolicy = dispatch.NetworkOnly

	file, err := u.send(ctx, req)
	if err != nil {
		return nil, err
	}

	u.logger.Debug("uploaded file", "file_id", file.ID, "size", size, "base64", s.base64)
	report(s.progress, types.UploadProgress{
		FileID:         s.fileID,
		UploadID:       file.ID,
		BytesUploaded:  size,
		BytesTotal:     size,
		ChunksUploaded: 1,
		ChunksTotal:    1,
		Percent:        100,
	})
	return file, nil
}

func (u *Uploader) chunked(ctx context.Context, bucketPath string, src Source, size int64, s settings) (*types.File, error) {
	chunkSize := u.opts.ChunkSize
	total := int((size + chunkSize - 1) / chunkSize)

	first := 0
	uploadID := ""
	if s.resume != nil && s.resume.Chunk > 0 && s.resume.Chunk < total && s.resume.UploadID != "" {
		first = s.resume.Chunk
		uploadID = s.resume.UploadID
		u.logger.Debug("resuming upload", "file_id", s.fileID, "upload_id", uploadID, "chunk", first)
	}

	offset := int64(first) * chunkSize
	p, err := openPayload(src, offset, s.contentType)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	var last *types.File
	for i := first; i < total; i++ {
		chunkLen := chunkSize
		if remaining := size - offset; remaining < chunkSize {
			chunkLen = remaining
		}

		fail := func(err error) error {
			return &ChunkError{
				FileID:        s.fileID,
				UploadID:      uploadID,
				Chunk:         i,
				Offset:        offset,
				BytesUploaded: offset,
				Last:          last,
				Err:           err,
			}
		}

		data, err := readChunk(p, chunkLen)
		if err != nil {
			return nil, fail(err)
		}

		req, err := multipartRequest(bucketPath, s.fileID, src.Name(), p.contentType, data)
		if err != nil {
			return nil, fail(err)
		}
		req.CachePolicy = dispatch.NetworkOnly
		req.Header = http.Header{}
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, offset+chunkLen-1, size))
		if uploadID != "" {
			req.Header.Set("X-Upload-ID", uploadID)
		}

		file, err := u.send(ctx, req)
		if err != nil {
			return nil, fail(err)
		}

		last = file
		if uploadID == "" {
			uploadID = file.ID
			if uploadID == "" {
				uploadID = s.fileID
			}
		}
		offset += chunkLen

		u.logger.Trace("uploaded chunk", "file_id", s.fileID, "upload_id", uploadID, "chunk", i+1, "of", total)
		report(s.progress, types.UploadProgress{
			FileID:         s.fileID,
			UploadID:       uploadID,
			BytesUploaded:  offset,
			BytesTotal:     size,
			ChunksUploaded: i + 1,
			ChunksTotal:    total,
			Percent:        float64(offset) / float64(size) * 100,
		})
	}

	u.logger.Debug("uploaded file", "file_id", s.fileID, "upload_id", uploadID, "size", size, "chunks", total)
	return last, nil
}

func (u *Uploader) send(ctx context.Context, req *dispatch.Request) (*types.File, error) {
	resp, err := u.doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	file := &types.File{}
	if err := resp.Decode(file); err != nil {
		return nil, err
	}
	return file, nil
}

func report(fn func(types.UploadProgress), p types.UploadProgress) {
	if fn != nil {
		fn(p)
	}
}

func multipartRequest(bucketPath, fileID, name, contentType string, data []byte) (*dispatch.Request, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if err := w.WriteField("fileId", fileID); err != nil {
		return nil, err
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": "file", "filename": name}))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &dispatch.Request{
		Method:      http.MethodPost,
		Path:        bucketPath + "/files",
		RawBody:     body,
		ContentType: w.FormDataContentType(),
	}, nil
}

// readChunk reads exactly n bytes.
func readChunk(r io.Reader, n int64) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read %d of %d bytes: %w", read, n, ErrShortRead)
		}
		return nil, err
	}
	return buf, nil
}

// payload is an opened source positioned at the first byte to send.
type payload struct {
	io.Reader
	closer      io.Closer
	contentType string
}

func (p *payload) Close() error {
	return p.closer.Close()
}

// openPayload opens src, detects the content type from its first bytes unless one is given, and skips to offset.
// Seekable sources seek; others discard the skipped bytes.
func openPayload(src Source, offset int64, contentType string) (*payload, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open upload source: %w", err)
	}
	p := &payload{Reader: rc, closer: rc, contentType: contentType}

	if seeker, ok := rc.(io.Seeker); ok {
		if p.contentType == "" {
			head := make([]byte, sniffLen)
			n, err := io.ReadFull(rc, head)
			if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				_ = rc.Close()
				return nil, err
			}
			p.contentType = mimetype.Detect(head[:n]).String()
		}
		if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("unable to seek upload source to %d: %w", offset, err)
		}
		return p, nil
	}

	br := bufio.NewReaderSize(rc, sniffLen)
	if p.contentType == "" {
		head, err := br.Peek(sniffLen)
		if err != nil && !errors.Is(err, io.EOF) {
			_ = rc.Close()
			return nil, err
		}
		p.contentType = mimetype.Detect(head).String()
	}
	if offset > 0 {
		if _, err := io.CopyN(io.Discard, br, offset); err != nil {
			_ = rc.Close()
			if errors.Is(err, io.EOF) {
				err = ErrShortRead
			}
			return nil, fmt.Errorf("unable to skip %d bytes of upload source: %w", offset, err)
		}
	}
	p.Reader = br
	return p, nil
}
