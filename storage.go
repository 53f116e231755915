package docstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/c2fo/vfs/v7"
	"github.com/c2fo/vfs/v7/vfssimple"

	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/types"
	"github.com/c2fo/docstore/upload"
	"github.com/c2fo/docstore/utils"
)

// BucketRef references a file bucket. Its path is /projects/{p}/buckets/{id}.
type BucketRef struct {
	project ProjectRef
	id      string
}

// ID returns the bucket id.
func (b BucketRef) ID() string {
	return b.id
}

// Path returns the REST path of the bucket.
func (b BucketRef) Path() string {
	return b.project.Path() + utils.JoinPath("buckets", b.id)
}

func (b BucketRef) String() string {
	return b.Path()
}

// Project returns the parent project.
func (b BucketRef) Project() ProjectRef {
	return b.project
}

// File references a file of the bucket.
func (b BucketRef) File(id string) FileRef {
	return FileRef{bucket: b, id: id}
}

func (b BucketRef) validate() error {
	if err := checkID(b.project.id); err != nil {
		return err
	}
	return checkID(b.id)
}

// Files lists the files of the bucket.
func (b BucketRef) Files(ctx context.Context, q *Query, opts ...options.RequestOption) (*types.FileList, error) {
	if err := b.validate(); err != nil {
		return nil, utils.WrapListError(err)
	}
	query, err := q.Encode()
	if err != nil {
		return nil, utils.WrapListError(err)
	}

	list := &types.FileList{}
	req := &dispatch.Request{Method: http.MethodGet, Path: b.Path() + "/files", Query: query}
	if _, err := b.project.client.do(ctx, req, opts, list); err != nil {
		return nil, utils.WrapListError(err)
	}
	return list, nil
}

// Upload stores src in the bucket. Sources larger than the client's chunk size are uploaded in chunks; see
// package upload for the options and for resuming a failed upload.
func (b BucketRef) Upload(ctx context.Context, src upload.Source, opts ...options.UploadOption) (*types.File, error) {
	if err := b.validate(); err != nil {
		return nil, utils.WrapUploadError(err)
	}
	file, err := b.project.client.uploader.Upload(ctx, b.Path(), src, opts...)
	if err != nil {
		return nil, utils.WrapUploadError(err)
	}
	return file, nil
}

// FileRef references a stored file. Its path is /projects/{p}/buckets/{b}/files/{id}.
type FileRef struct {
	bucket BucketRef
	id     string
}

// ID returns the file id.
func (f FileRef) ID() string {
	return f.id
}

// Path returns the REST path of the file.
func (f FileRef) Path() string {
	return f.bucket.Path() + utils.JoinPath("files", f.id)
}

func (f FileRef) String() string {
	return f.Path()
}

// Bucket returns the parent bucket.
func (f FileRef) Bucket() BucketRef {
	return f.bucket
}

func (f FileRef) validate() error {
	if err := f.bucket.validate(); err != nil {
		return err
	}
	return checkID(f.id)
}

func (f FileRef) client() *Client {
	return f.bucket.project.client
}

// Get fetches the file metadata.
func (f FileRef) Get(ctx context.Context, opts ...options.RequestOption) (*types.File, error) {
	if err := f.validate(); err != nil {
		return nil, utils.WrapGetError(err)
	}

	file := &types.File{}
	req := &dispatch.Request{Method: http.MethodGet, Path: f.Path()}
	if _, err := f.client().do(ctx, req, opts, file); err != nil {
		return nil, utils.WrapGetError(err)
	}
	return file, nil
}

// Delete removes the file.
func (f FileRef) Delete(ctx context.Context, opts ...options.RequestOption) error {
	if err := f.validate(); err != nil {
		return utils.WrapDeleteError(err)
	}

	req := &dispatch.Request{Method: http.MethodDelete, Path: f.Path()}
	_, err := f.client().do(ctx, req, opts, nil)
	return utils.WrapDeleteError(err)
}

// Download streams the file content. Downloads are never cached. The caller must close the reader.
func (f FileRef) Download(ctx context.Context, opts ...options.RequestOption) (io.ReadCloser, error) {
	if err := f.validate(); err != nil {
		return nil, utils.WrapDownloadError(err)
	}

	req := &dispatch.Request{Method: http.MethodGet, Path: f.Path() + "/download"}
	applyRequestOptions(req, opts)
	body, _, err := f.client().dispatcher.Stream(ctx, req)
	if err != nil {
		return nil, utils.WrapDownloadError(err)
	}
	return body, nil
}

// DownloadTo writes the file content to w and returns the number of bytes written.
func (f FileRef) DownloadTo(ctx context.Context, w io.Writer, opts ...options.RequestOption) (int64, error) {
	body, err := f.Download(ctx, opts...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	n, err := utils.TouchCopyBuffered(w, body, 0)
	if err != nil {
		return n, utils.WrapDownloadError(err)
	}
	return n, nil
}

// DownloadToURI writes the file content to a vfs URI, e.g. file:///tmp/report.pdf or s3://bucket/report.pdf,
// and returns the written file.
func (f FileRef) DownloadToURI(ctx context.Context, uri string, opts ...options.RequestOption) (vfs.File, error) {
	target, err := vfssimple.NewFile(uri)
	if err != nil {
		return nil, utils.WrapDownloadError(err)
	}

	if _, err := f.DownloadTo(ctx, target, opts...); err != nil {
		_ = target.Close()
		return nil, err
	}
	if err := target.Close(); err != nil {
		return nil, utils.WrapDownloadError(fmt.Errorf("unable to write %s: %w", target, err))
	}
	return target, nil
}

// DownloadURL returns the absolute URL of the file content, e.g. for a browser. The project is passed as a query
// parameter since such clients cannot set headers.
func (f FileRef) DownloadURL() string {
	return f.client().dispatcher.URL(f.Path()+"/download", url.Values{"project": {f.bucket.project.id}})
}

// ViewURL is like DownloadURL but the service answers with an inline content disposition.
func (f FileRef) ViewURL() string {
	return f.client().dispatcher.URL(f.Path()+"/view", url.Values{"project": {f.bucket.project.id}})
}
