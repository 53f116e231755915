package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// metadata keys are prefixed with '$' on the wire; every other key is document data
const (
	keyID           = "$id"
	keyCollectionID = "$collectionId"
	keyProjectID    = "$projectId"
	keyCreatedAt    = "$createdAt"
	keyUpdatedAt    = "$updatedAt"
	keyPermissions  = "$permissions"
)

// Document is a single stored document. On the wire it is a flat JSON object whose '$' prefixed keys carry
// metadata:
//
//	{"$id": "d1", "$collectionId": "c1", "$createdAt": "...", "title": "hello", "tags": ["a"]}
type Document struct {
	ID           string
	CollectionID string
	ProjectID    string
	CreatedAt    Timestamp
	UpdatedAt    Timestamp
	Permissions  []string
	Data         map[string]any
}

// UnmarshalJSON splits metadata from data.
func (d *Document) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = Document{Data: map[string]any{}}
	for k, v := range raw {
		var err error
		switch k {
		case keyID:
			err = json.Unmarshal(v, &d.ID)
		case keyCollectionID:
			err = json.Unmarshal(v, &d.CollectionID)
		case keyProjectID:
			err = json.Unmarshal(v, &d.ProjectID)
		case keyCreatedAt:
			err = d.CreatedAt.UnmarshalJSON(v)
		case keyUpdatedAt:
			err = d.UpdatedAt.UnmarshalJSON(v)
		case keyPermissions:
			err = json.Unmarshal(v, &d.Permissions)
		default:
			// unknown metadata is dropped rather than leaking into data
			if strings.HasPrefix(k, "$") {
				continue
			}
			var val any
			err = json.Unmarshal(v, &val)
			d.Data[k] = val
		}
		if err != nil {
			return fmt.Errorf("document field %q: %w", k, err)
		}
	}
	return nil
}

// MarshalJSON writes the flat wire form.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Data)+6)
	for k, v := range d.Data {
		out[k] = v
	}
	if d.ID != "" {
		out[keyID] = d.ID
	}
	if d.CollectionID != "" {
		out[keyCollectionID] = d.CollectionID
	}
	if d.ProjectID != "" {
		out[keyProjectID] = d.ProjectID
	}
	if !d.CreatedAt.IsZero() {
		out[keyCreatedAt] = d.CreatedAt
	}
	if !d.UpdatedAt.IsZero() {
		out[keyUpdatedAt] = d.UpdatedAt
	}
	if d.Permissions != nil {
		out[keyPermissions] = d.Permissions
	}
	return json.Marshal(out)
}

// DataTo decodes the document data into v, usually a pointer to a struct with json tags.
func (d *Document) DataTo(v any) error {
	b, err := json.Marshal(d.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// DocumentList is one page of documents.
type DocumentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}
