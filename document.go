package docstore

import (
	"context"
	"errors"
	"net/http"

	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/types"
	"github.com/c2fo/docstore/utils"
)

// DocumentRef references a document. Its path is /projects/{p}/collections/{c}/documents/{id}.
type DocumentRef struct {
	collection CollectionRef
	id         string
}

// ID returns the document id.
func (d DocumentRef) ID() string {
	return d.id
}

// Path returns the REST path of the document.
func (d DocumentRef) Path() string {
	return d.collection.Path() + utils.JoinPath("documents", d.id)
}

func (d DocumentRef) String() string {
	return d.Path()
}

// Collection returns the parent collection.
func (d DocumentRef) Collection() CollectionRef {
	return d.collection
}

func (d DocumentRef) validate() error {
	if err := d.collection.validate(); err != nil {
		return err
	}
	return checkID(d.id)
}

func (d DocumentRef) client() *Client {
	return d.collection.project.client
}

// Get fetches the document. With the default policy an unreachable service is answered from the cache.
func (d DocumentRef) Get(ctx context.Context, opts ...options.RequestOption) (*types.Document, error) {
	if err := d.validate(); err != nil {
		return nil, utils.WrapGetError(err)
	}

	doc := &types.Document{}
	req := &dispatch.Request{Method: http.MethodGet, Path: d.Path()}
	if _, err := d.client().do(ctx, req, opts, doc); err != nil {
		return nil, utils.WrapGetError(err)
	}
	return doc, nil
}

// Set replaces the document data, creating the document if needed.
func (d DocumentRef) Set(ctx context.Context, data any, opts ...options.RequestOption) (*types.Document, error) {
	if err := d.validate(); err != nil {
		return nil, utils.WrapSetError(err)
	}

	body := map[string]any{"data": dataOrEmpty(data)}
	if perms := permissionsOf(opts); perms != nil {
		body["permissions"] = perms
	}

	doc := &types.Document{}
	req := &dispatch.Request{Method: http.MethodPut, Path: d.Path(), Body: body}
	if _, err := d.client().do(ctx, req, opts, doc); err != nil {
		return nil, utils.WrapSetError(err)
	}
	return doc, nil
}

// Update merges data into the document. Attributes missing from data are left as they are.
func (d DocumentRef) Update(ctx context.Context, data any, opts ...options.RequestOption) (*types.Document, error) {
	if err := d.validate(); err != nil {
		return nil, utils.WrapUpdateError(err)
	}

	body := map[string]any{"data": dataOrEmpty(data)}
	if perms := permissionsOf(opts); perms != nil {
		body["permissions"] = perms
	}

	doc := &types.Document{}
	req := &dispatch.Request{Method: http.MethodPatch, Path: d.Path(), Body: body}
	if _, err := d.client().do(ctx, req, opts, doc); err != nil {
		return nil, utils.WrapUpdateError(err)
	}
	return doc, nil
}

// Delete removes the document and its cached copy.
func (d DocumentRef) Delete(ctx context.Context, opts ...options.RequestOption) error {
	if err := d.validate(); err != nil {
		return utils.WrapDeleteError(err)
	}

	req := &dispatch.Request{Method: http.MethodDelete, Path: d.Path()}
	_, err := d.client().do(ctx, req, opts, nil)
	return utils.WrapDeleteError(err)
}

// Exists reports whether the document exists. A 404 is not an error.
func (d DocumentRef) Exists(ctx context.Context, opts ...options.RequestOption) (bool, error) {
	if err := d.validate(); err != nil {
		return false, utils.WrapExistsError(err)
	}

	req := &dispatch.Request{Method: http.MethodGet, Path: d.Path()}
	if _, err := d.client().do(ctx, req, opts, nil); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, utils.WrapExistsError(err)
	}
	return true, nil
}
