package docstore

import (
	"fmt"

	"github.com/c2fo/docstore/utils"
)

// Ref is implemented by every reference. Path is the REST path of the resource, which String also returns.
type Ref interface {
	fmt.Stringer
	Path() string
}

func validID(value any) error {
	id, _ := value.(string)
	return checkID(id)
}

func checkID(id string) error {
	if err := utils.ValidateID(id); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return nil
}

// ParsePath turns a path as returned by Ref.Path back into a reference:
//
//	/projects/{p}
//	/projects/{p}/collections/{c}
//	/projects/{p}/collections/{c}/documents/{d}
//	/projects/{p}/buckets/{b}
//	/projects/{p}/buckets/{b}/files/{f}
//
// The project need not be the client's own.
func (c *Client) ParsePath(path string) (Ref, error) {
	parts, err := utils.SplitPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, path, err)
	}
	if len(parts) < 2 || len(parts)%2 != 0 || len(parts) > 6 || parts[0] != "projects" {
		return nil, fmt.Errorf("%w %q", ErrInvalidPath, path)
	}
	for i := 1; i < len(parts); i += 2 {
		if err := checkID(parts[i]); err != nil {
			return nil, err
		}
	}

	project := ProjectRef{client: c, id: parts[1]}
	if len(parts) == 2 {
		return project, nil
	}

	switch parts[2] {
	case "collections":
		collection := project.Collection(parts[3])
		if len(parts) == 4 {
			return collection, nil
		}
		if parts[4] == "documents" {
			return collection.Doc(parts[5]), nil
		}
	case "buckets":
		bucket := project.Bucket(parts[3])
		if len(parts) == 4 {
			return bucket, nil
		}
		if parts[4] == "files" {
			return bucket.File(parts[5]), nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrInvalidPath, path)
}
