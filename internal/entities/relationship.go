package entities

import (
	"fmt"
	"time"
)

// Relationship is a persisted directed link between two entities
// Example: user:alice#follow@user:bob
// This means: user "alice" follows user "bob"
type Relationship struct {
	Kind        Kind   // Relationship kind (e.g., "follow")
	SubjectType string // Acting entity type (e.g., "user")
	SubjectID   string // Acting entity ID (e.g., "alice")
	ObjectType  string // Target entity type (e.g., "post")
	ObjectID    string // Target entity ID (e.g., "42")
	CreatedAt   time.Time
}

// NewRelationship builds the relationship of kind from subject to object
func NewRelationship(kind Kind, subject, object Entity) *Relationship {
	s, o := RefOf(subject), RefOf(object)
	return &Relationship{
		Kind:        kind,
		SubjectType: s.Type,
		SubjectID:   s.ID,
		ObjectType:  o.Type,
		ObjectID:    o.ID,
	}
}

// Subject returns the reference of the acting entity
func (r *Relationship) Subject() Ref {
	return Ref{Type: r.SubjectType, ID: r.SubjectID}
}

// Object returns the reference of the target entity
func (r *Relationship) Object() Ref {
	return Ref{Type: r.ObjectType, ID: r.ObjectID}
}

// String returns a string representation of the relationship
// Format: subject_type:subject_id#kind@object_type:object_id
func (r *Relationship) String() string {
	return fmt.Sprintf("%s:%s#%s@%s:%s",
		r.SubjectType, r.SubjectID, r.Kind,
		r.ObjectType, r.ObjectID)
}

// Validate checks if the relationship is valid
func (r *Relationship) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown relationship kind %q", r.Kind)
	}
	if !r.Kind.IsRelationship() {
		return fmt.Errorf("%s is not stored as a relationship", r.Kind)
	}
	if r.SubjectType == "" {
		return fmt.Errorf("subject type is required")
	}
	if r.SubjectID == "" {
		return fmt.Errorf("subject ID is required")
	}
	if r.ObjectType == "" {
		return fmt.Errorf("object type is required")
	}
	if r.ObjectID == "" {
		return fmt.Errorf("object ID is required")
	}
	return nil
}
