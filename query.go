package docstore

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Operator compares a document attribute in a Where clause.
type Operator string

// Operators accepted by Query.Where.
const (
	Equal        Operator = "equal"
	NotEqual     Operator = "notEqual"
	Less         Operator = "lessThan"
	LessEqual    Operator = "lessThanEqual"
	Greater      Operator = "greaterThan"
	GreaterEqual Operator = "greaterThanEqual"
	Search       Operator = "search"
	Contains     Operator = "contains"
)

type clause struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

// Query filters, orders and pages a list request. Each clause is sent as one JSON encoded queries[] parameter,
// in the order it was added. A nil *Query lists everything with the service's defaults.
//
//	q := docstore.NewQuery().
//	    Where("status", docstore.Equal, "published").
//	    OrderDesc("$createdAt").
//	    Limit(25)
type Query struct {
	clauses []clause
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

func (q *Query) add(c clause) *Query {
	q.clauses = append(q.clauses, c)
	return q
}

// Where keeps documents whose field compares to any of values with op.
func (q *Query) Where(field string, op Operator, values ...any) *Query {
	return q.add(clause{Method: string(op), Attribute: field, Values: values})
}

// OrderAsc sorts by field, ascending.
func (q *Query) OrderAsc(field string) *Query {
	return q.add(clause{Method: "orderAsc", Attribute: field})
}

// OrderDesc sorts by field, descending.
func (q *Query) OrderDesc(field string) *Query {
	return q.add(clause{Method: "orderDesc", Attribute: field})
}

// Limit caps the page size.
func (q *Query) Limit(n int) *Query {
	return q.add(clause{Method: "limit", Values: []any{n}})
}

// Offset skips the first n results.
func (q *Query) Offset(n int) *Query {
	return q.add(clause{Method: "offset", Values: []any{n}})
}

// Cursor starts the page after the document with the given id.
func (q *Query) Cursor(id string) *Query {
	return q.add(clause{Method: "cursorAfter", Values: []any{id}})
}

// Encode returns the query parameters of q.
func (q *Query) Encode() (url.Values, error) {
	if q == nil || len(q.clauses) == 0 {
		return nil, nil
	}
	v := url.Values{}
	for _, c := range q.clauses {
		b, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("unable to encode %s query: %w", c.Method, err)
		}
		v.Add("queries[]", string(b))
	}
	return v, nil
}
