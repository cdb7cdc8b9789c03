package kernel

import (
	"fmt"
	"strconv"
	"strings"
)

// Identity is satisfied by every value that can identify an entity.
type Identity interface {
	comparable
	IsEmpty() bool
}

// Identifier wraps the primary key value of an aggregate.
// An identifier holding the zero value is empty: the entity was not persisted yet.
type Identifier[T comparable] struct {
	value T
}

// NewIdentifier wraps value.
func NewIdentifier[T comparable](value T) Identifier[T] {
	return Identifier[T]{value: value}
}

// Value returns the wrapped key.
func (i Identifier[T]) Value() T {
	return i.value
}

// IsEmpty reports whether the identifier was never assigned.
func (i Identifier[T]) IsEmpty() bool {
	var zero T
	return i.value == zero
}

func (i Identifier[T]) String() string {
	return fmt.Sprint(i.value)
}

// IntIdentifier is the identifier used by all auto-increment tables.
type IntIdentifier = Identifier[int64]

// NewIntIdentifier wraps an integer key.
func NewIntIdentifier(value int64) IntIdentifier {
	return NewIdentifier(value)
}

// ParseIntIdentifier converts the string form used in urls and JSON:API documents.
func ParseIntIdentifier(raw string) (IntIdentifier, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 0 {
		return IntIdentifier{}, fmt.Errorf("%w: invalid identifier %q", ErrValidation, raw)
	}
	return NewIntIdentifier(value), nil
}

// Entity is embedded by aggregates. The identifier can only change by replacing
// the embedded value on a copy of the aggregate.
type Entity[ID Identity] struct {
	id ID
}

// NewEntity creates the entity part of an aggregate.
func NewEntity[ID Identity](id ID) Entity[ID] {
	return Entity[ID]{id: id}
}

// ID returns the identifier of the entity.
func (e Entity[ID]) ID() ID {
	return e.id
}

// WithID returns a new entity value carrying id.
func (e Entity[ID]) WithID(id ID) Entity[ID] {
	return Entity[ID]{id: id}
}

// Cloner is implemented by aggregates holding slices or pointers. Clone returns a
// copy that shares no mutable state with the receiver.
type Cloner[E any] interface {
	Clone() E
}

// Replace returns a copy of entity with change applied to the copy. The original is
// left untouched. Without a Clone method the copy is shallow: change may reassign
// slice fields but must not write into their elements.
func Replace[E any](entity E, change func(*E)) E {
	if c, ok := any(entity).(Cloner[E]); ok {
		entity = c.Clone()
	}
	change(&entity)
	return entity
}
