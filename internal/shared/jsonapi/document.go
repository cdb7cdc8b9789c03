package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Meta is the top level meta object of a collection document. Count is the number of
// matching resources, Offset and Limit echo the requested page (Limit 0: no limit).
type Meta struct {
	Count  int
	Offset int
	Limit  int
	Extra  map[string]any
}

func (m Meta) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+3)
	for key, value := range m.Extra {
		out[key] = value
	}
	out["count"] = m.Count
	out["offset"] = m.Offset
	out["limit"] = m.Limit
	return json.Marshal(out)
}

func (m *Meta) UnmarshalJSON(raw []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	*m = Meta{}
	for key, value := range payload {
		number, isNumber := value.(float64)
		switch {
		case key == "count" && isNumber:
			m.Count = int(number)
		case key == "offset" && isNumber:
			m.Offset = int(number)
		case key == "limit" && isNumber:
			m.Limit = int(number)
		default:
			if m.Extra == nil {
				m.Extra = map[string]any{}
			}
			m.Extra[key] = value
		}
	}
	return nil
}

// Included is a resource of any type that can be added to the included section.
type Included interface {
	Identifier() ResourceIdentifier
}

// Document is a JSON:API document with primary data of resources with attributes A.
// A document holds one resource or, when it is a collection, a list of resources.
type Document[A any] struct {
	Meta       *Meta
	data       []Resource[A]
	collection bool
	included   []Included
}

// NewDocument creates a document with one resource as primary data.
func NewDocument[A any](resource Resource[A]) Document[A] {
	return Document[A]{data: []Resource[A]{resource}}
}

// NewCollection creates an empty collection document. Resources are added with Merge.
func NewCollection[A any](meta Meta) Document[A] {
	return Document[A]{Meta: &meta, data: []Resource[A]{}, collection: true}
}

// IsCollection reports whether the primary data is a list.
func (d Document[A]) IsCollection() bool {
	return d.collection
}

// Resource returns the first resource of the primary data.
func (d Document[A]) Resource() (Resource[A], bool) {
	if len(d.data) == 0 {
		return Resource[A]{}, false
	}
	return d.data[0], true
}

// Resources returns the primary data.
func (d Document[A]) Resources() []Resource[A] {
	return append([]Resource[A](nil), d.data...)
}

// Included returns the included resources in insertion order.
func (d Document[A]) Included() []Included {
	return append([]Included(nil), d.included...)
}

// Include adds resources to the included section. A resource with the same type and id
// as an already included one is ignored.
func (d *Document[A]) Include(resources ...Included) {
	for _, resource := range resources {
		if resource == nil || d.isIncluded(resource.Identifier()) {
			continue
		}
		d.included = append(d.included, resource)
	}
}

func (d *Document[A]) isIncluded(identifier ResourceIdentifier) bool {
	for _, included := range d.included {
		if included.Identifier() == identifier {
			return true
		}
	}
	return false
}

// Merge appends the primary data of other to this document, which becomes a collection,
// and adds the included resources of other. The meta object of other is ignored.
func (d *Document[A]) Merge(other Document[A]) {
	d.collection = true
	if d.data == nil {
		d.data = []Resource[A]{}
	}
	d.data = append(d.data, other.data...)
	d.Include(other.included...)
}

type documentJSON struct {
	Meta     *Meta           `json:"meta,omitempty"`
	Data     json.RawMessage `json:"data"`
	Included json.RawMessage `json:"included,omitempty"`
}

func (d Document[A]) MarshalJSON() ([]byte, error) {
	var data any
	switch {
	case d.collection:
		data = d.data
	case len(d.data) > 0:
		data = d.data[0]
	}
	return json.Marshal(struct {
		Meta     *Meta      `json:"meta,omitempty"`
		Data     any        `json:"data"`
		Included []Included `json:"included,omitempty"`
	}{Meta: d.Meta, Data: data, Included: d.included})
}

// UnmarshalJSON decodes the primary data and meta. The included section is not decoded.
func (d *Document[A]) UnmarshalJSON(raw []byte) error {
	var payload documentJSON
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	*d = Document[A]{Meta: payload.Meta}
	data := bytes.TrimSpace(payload.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '[':
		d.collection = true
		return json.Unmarshal(data, &d.data)
	case data[0] == '{':
		var resource Resource[A]
		if err := json.Unmarshal(data, &resource); err != nil {
			return err
		}
		d.data = []Resource[A]{resource}
		return nil
	}
	return errors.New("jsonapi: data must be null, an object or an array")
}

// ErrorSource points to the part of the request that caused an error.
type ErrorSource struct {
	Pointer string `json:"pointer,omitempty"`
}

// Error is a JSON:API error object.
type Error struct {
	Status string       `json:"status,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
	Title  string       `json:"title,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

// ErrorDocument is a document with errors instead of primary data.
type ErrorDocument struct {
	Errors []Error `json:"errors"`
}

// Pagination binds the page[offset] and page[limit] query parameters.
type Pagination struct {
	Offset int `form:"page[offset]" binding:"min=0"`
	Limit  int `form:"page[limit]" binding:"min=0"`
}
