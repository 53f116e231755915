package types

// Project describes the project a client is bound to.
type Project struct {
	ID          string    `json:"$id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"$createdAt"`
	UpdatedAt   Timestamp `json:"$updatedAt"`
}

// Collection describes a document collection.
type Collection struct {
	ID          string    `json:"$id"`
	ProjectID   string    `json:"$projectId"`
	Name        string    `json:"name"`
	Enabled     bool      `json:"enabled"`
	Permissions []string  `json:"$permissions,omitempty"`
	CreatedAt   Timestamp `json:"$createdAt"`
	UpdatedAt   Timestamp `json:"$updatedAt"`
}

// CollectionList is one page of collections.
type CollectionList struct {
	Total       int          `json:"total"`
	Collections []Collection `json:"collections"`
}
