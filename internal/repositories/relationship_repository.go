package repositories

import (
	"context"

	"github.com/asakaida/socialization/internal/entities"
)

// Order controls the ordering of listed records by creation time
type Order int

const (
	OrderNewest Order = iota // Most recent first (default)
	OrderOldest              // Oldest first
)

// ListOptions controls pagination and ordering of read operations
type ListOptions struct {
	Limit  int   // Maximum number of records (0 = no limit)
	Offset int   // Number of records to skip
	Order  Order // Ordering by creation time
}

// RelationshipFilter defines filter criteria for querying relationships
type RelationshipFilter struct {
	Kind        entities.Kind // Filter by kind (optional)
	SubjectType string        // Filter by subject type (optional)
	SubjectID   string        // Filter by subject ID (optional)
	ObjectType  string        // Filter by object type (optional)
	ObjectID    string        // Filter by object ID (optional)
}

// RelationshipRepository defines the interface for relationship data access.
// Uniqueness of (kind, subject, object) is enforced by the storage layer.
type RelationshipRepository interface {
	// Create inserts a relationship. Returns ErrDuplicateRelationship if it already exists.
	Create(ctx context.Context, rel *entities.Relationship) error

	// Delete removes a relationship and reports whether a record was deleted
	Delete(ctx context.Context, rel *entities.Relationship) (bool, error)

	// Exists checks if a specific relationship exists
	Exists(ctx context.Context, rel *entities.Relationship) (bool, error)

	// Read retrieves relationships matching the filter
	Read(ctx context.Context, filter *RelationshipFilter, opts *ListOptions) ([]*entities.Relationship, error)

	// Count returns the number of relationships matching the filter
	Count(ctx context.Context, filter *RelationshipFilter) (int64, error)

	// DeleteByEntity removes every relationship of kind in which ref is the subject or the object
	DeleteByEntity(ctx context.Context, kind entities.Kind, ref entities.Ref) (int64, error)
}
