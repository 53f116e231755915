package docstore

import (
	"context"
	"net/http"

	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/types"
	"github.com/c2fo/docstore/utils"
)

// ProjectRef references a project. Its path is /projects/{id}.
type ProjectRef struct {
	client *Client
	id     string
}

// ID returns the project id.
func (p ProjectRef) ID() string {
	return p.id
}

// Path returns the REST path of the project.
func (p ProjectRef) Path() string {
	return utils.JoinPath("projects", p.id)
}

func (p ProjectRef) String() string {
	return p.Path()
}

// Collection references a collection of the project.
func (p ProjectRef) Collection(id string) CollectionRef {
	return CollectionRef{project: p, id: id}
}

// Bucket references a file bucket of the project.
func (p ProjectRef) Bucket(id string) BucketRef {
	return BucketRef{project: p, id: id}
}

// Get fetches the project.
func (p ProjectRef) Get(ctx context.Context, opts ...options.RequestOption) (*types.Project, error) {
	if err := checkID(p.id); err != nil {
		return nil, utils.WrapGetError(err)
	}

	project := &types.Project{}
	_, err := p.client.do(ctx, &dispatch.Request{Method: http.MethodGet, Path: p.Path()}, opts, project)
	if err != nil {
		return nil, utils.WrapGetError(err)
	}
	return project, nil
}

// Collections lists the collections of the project.
func (p ProjectRef) Collections(ctx context.Context, q *Query, opts ...options.RequestOption) (*types.CollectionList, error) {
	if err := checkID(p.id); err != nil {
		return nil, utils.WrapListError(err)
	}
	query, err := q.Encode()
	if err != nil {
		return nil, utils.WrapListError(err)
	}

	list := &types.CollectionList{}
	req := &dispatch.Request{Method: http.MethodGet, Path: p.Path() + "/collections", Query: query}
	if _, err := p.client.do(ctx, req, opts, list); err != nil {
		return nil, utils.WrapListError(err)
	}
	return list, nil
}
