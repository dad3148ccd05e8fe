package entities

import (
	"fmt"
	"reflect"
	"strings"
)

// Entity is anything that can take part in a relationship.
// The pair (EntityType, EntityID) identifies it across heterogeneous tables.
type Entity interface {
	EntityType() string
	EntityID() string
}

// Ref is a polymorphic reference to an entity.
// Example: user:alice
type Ref struct {
	Type string // Entity type (e.g., "user", "post")
	ID   string // Entity ID (e.g., "alice", "42")
}

// RefOf returns the reference of e. A nil entity yields the zero Ref.
func RefOf(e Entity) Ref {
	if IsNil(e) {
		return Ref{}
	}
	return Ref{Type: e.EntityType(), ID: e.EntityID()}
}

// IsNil reports whether e is nil, including a nil pointer stored in the interface
func IsNil(e Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// ParseRef parses a reference in "type:id" form.
func ParseRef(s string) (Ref, error) {
	typ, id, ok := strings.Cut(s, ":")
	if !ok {
		return Ref{}, fmt.Errorf("invalid reference %q: expected type:id", s)
	}
	ref := Ref{Type: typ, ID: id}
	if err := ref.Validate(); err != nil {
		return Ref{}, fmt.Errorf("invalid reference %q: %w", s, err)
	}
	return ref, nil
}

func (r Ref) EntityType() string { return r.Type }

func (r Ref) EntityID() string { return r.ID }

// String returns the reference in "type:id" form
func (r Ref) String() string {
	return r.Type + ":" + r.ID
}

// IsZero reports whether r is the zero reference.
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Validate checks that both halves of the reference are set
func (r Ref) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("type is required")
	}
	if r.ID == "" {
		return fmt.Errorf("ID is required")
	}
	return nil
}
