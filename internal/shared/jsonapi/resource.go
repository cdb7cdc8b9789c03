// Package jsonapi builds documents following the JSON:API resource object layout:
// {"data": ..., "meta": ..., "included": [...]}.
package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// ResourceIdentifier identifies a resource.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship holds the linkage of a relationship: null, one identifier or a list.
type Relationship struct {
	data []ResourceIdentifier
	many bool
}

// ToOne creates a to-one relationship. A nil identifier results in null data.
func ToOne(identifier *ResourceIdentifier) Relationship {
	if identifier == nil {
		return Relationship{}
	}
	return Relationship{data: []ResourceIdentifier{*identifier}}
}

// ToMany creates a to-many relationship. Without identifiers the data is an empty list.
func ToMany(identifiers ...ResourceIdentifier) Relationship {
	return Relationship{data: append([]ResourceIdentifier{}, identifiers...), many: true}
}

// One returns the identifier of a to-one relationship.
func (r Relationship) One() (ResourceIdentifier, bool) {
	if r.many || len(r.data) == 0 {
		return ResourceIdentifier{}, false
	}
	return r.data[0], true
}

// Many returns the identifiers of a to-many relationship.
func (r Relationship) Many() []ResourceIdentifier {
	return append([]ResourceIdentifier(nil), r.data...)
}

func (r Relationship) IsMany() bool { return r.many }

type relationshipJSON struct {
	Data json.RawMessage `json:"data"`
}

func (r Relationship) MarshalJSON() ([]byte, error) {
	var data any
	switch {
	case r.many:
		data = r.data
	case len(r.data) == 1:
		data = r.data[0]
	}
	return json.Marshal(struct {
		Data any `json:"data"`
	}{Data: data})
}

func (r *Relationship) UnmarshalJSON(raw []byte) error {
	var payload relationshipJSON
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	data := bytes.TrimSpace(payload.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Relationship{}
	case data[0] == '[':
		var identifiers []ResourceIdentifier
		if err := json.Unmarshal(data, &identifiers); err != nil {
			return err
		}
		*r = ToMany(identifiers...)
	case data[0] == '{':
		var identifier ResourceIdentifier
		if err := json.Unmarshal(data, &identifier); err != nil {
			return err
		}
		*r = ToOne(&identifier)
	default:
		return errors.New("jsonapi: relationship data must be null, an object or an array")
	}
	return nil
}

// ResourceMeta carries the timestamps of a resource and optional extra members.
type ResourceMeta struct {
	CreatedAt kernel.Timestamp
	UpdatedAt kernel.Timestamp
	Extra     map[string]any
}

// NewResourceMeta creates the meta object from the traceable time of an entity.
func NewResourceMeta(t kernel.TraceableTime) *ResourceMeta {
	return &ResourceMeta{CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func (m ResourceMeta) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+2)
	for key, value := range m.Extra {
		out[key] = value
	}
	out["created_at"] = m.CreatedAt
	out["updated_at"] = m.UpdatedAt
	return json.Marshal(out)
}

func (m *ResourceMeta) UnmarshalJSON(raw []byte) error {
	var payload struct {
		CreatedAt kernel.Timestamp `json:"created_at"`
		UpdatedAt kernel.Timestamp `json:"updated_at"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	m.CreatedAt, m.UpdatedAt = payload.CreatedAt, payload.UpdatedAt
	return nil
}

// Resource is a resource object with attributes of type A.
type Resource[A any] struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id,omitempty"`
	Attributes    A                       `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Meta          *ResourceMeta           `json:"meta,omitempty"`
}

// Identifier returns the identifier of the resource.
func (r Resource[A]) Identifier() ResourceIdentifier {
	return ResourceIdentifier{Type: r.Type, ID: r.ID}
}

// Ref returns a pointer to the identifier, ready for ToOne.
func (r Resource[A]) Ref() *ResourceIdentifier {
	id := r.Identifier()
	return &id
}

// Relate sets a relationship and returns the resource.
func (r Resource[A]) Relate(name string, relationship Relationship) Resource[A] {
	relationships := make(map[string]Relationship, len(r.Relationships)+1)
	for key, value := range r.Relationships {
		relationships[key] = value
	}
	relationships[name] = relationship
	r.Relationships = relationships
	return r
}

// Relationship returns a relationship by name.
func (r Resource[A]) Relationship(name string) (Relationship, bool) {
	relationship, ok := r.Relationships[name]
	return relationship, ok
}
