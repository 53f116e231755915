package docstore

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/types"
	"github.com/c2fo/docstore/utils"
)

// CollectionRef references a collection. Its path is /projects/{p}/collections/{id}.
type CollectionRef struct {
	project ProjectRef
	id      string
}

// ID returns the collection id.
func (c CollectionRef) ID() string {
	return c.id
}

// Path returns the REST path of the collection.
func (c CollectionRef) Path() string {
	return c.project.Path() + utils.JoinPath("collections", c.id)
}

func (c CollectionRef) String() string {
	return c.Path()
}

// Project returns the parent project.
func (c CollectionRef) Project() ProjectRef {
	return c.project
}

// Doc references a document of the collection.
func (c CollectionRef) Doc(id string) DocumentRef {
	return DocumentRef{collection: c, id: id}
}

func (c CollectionRef) validate() error {
	if err := checkID(c.project.id); err != nil {
		return err
	}
	return checkID(c.id)
}

// Get fetches the collection.
func (c CollectionRef) Get(ctx context.Context, opts ...options.RequestOption) (*types.Collection, error) {
	if err := c.validate(); err != nil {
		return nil, utils.WrapGetError(err)
	}

	collection := &types.Collection{}
	req := &dispatch.Request{Method: http.MethodGet, Path: c.Path()}
	if _, err := c.project.client.do(ctx, req, opts, collection); err != nil {
		return nil, utils.WrapGetError(err)
	}
	return collection, nil
}

// List fetches the documents matching q. A nil q lists the first page of all documents.
func (c CollectionRef) List(ctx context.Context, q *Query, opts ...options.RequestOption) (*types.DocumentList, error) {
	if err := c.validate(); err != nil {
		return nil, utils.WrapListError(err)
	}
	query, err := q.Encode()
	if err != nil {
		return nil, utils.WrapListError(err)
	}

	list := &types.DocumentList{}
	req := &dispatch.Request{Method: http.MethodGet, Path: c.Path() + "/documents", Query: query}
	if _, err := c.project.client.do(ctx, req, opts, list); err != nil {
		return nil, utils.WrapListError(err)
	}
	return list, nil
}

// Create adds a document with the given id and data. An empty id creates the document under a random uuid.
// data is anything that encodes to a JSON object. Permissions are set with request.WithPermissions.
//
// The created document is cached under its own path, so it can be read back while offline.
func (c CollectionRef) Create(ctx context.Context, id string, data any, opts ...options.RequestOption) (*types.Document, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := c.validate(); err != nil {
		return nil, utils.WrapCreateError(err)
	}
	if err := checkID(id); err != nil {
		return nil, utils.WrapCreateError(err)
	}

	body := map[string]any{
		"documentId": id,
		"data":       dataOrEmpty(data),
	}
	if perms := permissionsOf(opts); perms != nil {
		body["permissions"] = perms
	}

	doc := &types.Document{}
	req := &dispatch.Request{
		Method:    http.MethodPost,
		Path:      c.Path() + "/documents",
		Body:      body,
		CachePath: c.Doc(id).Path(),
	}
	if _, err := c.project.client.do(ctx, req, opts, doc); err != nil {
		return nil, utils.WrapCreateError(err)
	}
	return doc, nil
}

// dataOrEmpty keeps a nil data from encoding as null.
func dataOrEmpty(data any) any {
	if data == nil {
		return map[string]any{}
	}
	return data
}
