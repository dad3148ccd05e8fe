package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
)

type relationshipKey struct {
	kind        entities.Kind
	subjectType string
	subjectID   string
	objectType  string
	objectID    string
}

func keyOf(rel *entities.Relationship) relationshipKey {
	return relationshipKey{rel.Kind, rel.SubjectType, rel.SubjectID, rel.ObjectType, rel.ObjectID}
}

type storedRelationship struct {
	rel entities.Relationship
	seq uint64
}

// RelationshipRepository implements repositories.RelationshipRepository in process memory.
// The mutex plays the role of the database unique index.
type RelationshipRepository struct {
	mu   sync.RWMutex
	rows map[relationshipKey]*storedRelationship
	seq  uint64
	now  func() time.Time
}

var _ repositories.RelationshipRepository = (*RelationshipRepository)(nil)

// NewRelationshipRepository creates an empty in-memory relationship repository
func NewRelationshipRepository() *RelationshipRepository {
	return &RelationshipRepository{
		rows: make(map[relationshipKey]*storedRelationship),
		now:  time.Now,
	}
}

// Create stores a relationship, failing with ErrDuplicateRelationship if present
func (r *RelationshipRepository) Create(ctx context.Context, rel *entities.Relationship) error {
	if err := rel.Validate(); err != nil {
		return fmt.Errorf("invalid relationship: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(rel)
	if _, exists := r.rows[key]; exists {
		return fmt.Errorf("%w: %s", repositories.ErrDuplicateRelationship, rel)
	}

	r.seq++
	stored := &storedRelationship{rel: *rel, seq: r.seq}
	stored.rel.CreatedAt = r.now()
	r.rows[key] = stored
	rel.CreatedAt = stored.rel.CreatedAt
	return nil
}

// Delete removes a relationship and reports whether it existed
func (r *RelationshipRepository) Delete(ctx context.Context, rel *entities.Relationship) (bool, error) {
	if err := rel.Validate(); err != nil {
		return false, fmt.Errorf("invalid relationship: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(rel)
	if _, exists := r.rows[key]; !exists {
		return false, nil
	}
	delete(r.rows, key)
	return true, nil
}

// Exists checks if a specific relationship exists
func (r *RelationshipRepository) Exists(ctx context.Context, rel *entities.Relationship) (bool, error) {
	if err := rel.Validate(); err != nil {
		return false, fmt.Errorf("invalid relationship: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.rows[keyOf(rel)]
	return exists, nil
}

// Read returns the relationships matching the filter
func (r *RelationshipRepository) Read(ctx context.Context, filter *repositories.RelationshipFilter, opts *repositories.ListOptions) ([]*entities.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]*storedRelationship, 0)
	for _, row := range r.rows {
		if matchRelationship(&row.rel, filter) {
			matched = append(matched, row)
		}
	}
	r.mu.RUnlock()

	newestFirst := opts == nil || opts.Order == repositories.OrderNewest
	sort.Slice(matched, func(i, j int) bool {
		if newestFirst {
			return matched[i].seq > matched[j].seq
		}
		return matched[i].seq < matched[j].seq
	})

	matched = paginate(matched, opts)

	result := make([]*entities.Relationship, 0, len(matched))
	for _, row := range matched {
		rel := row.rel
		result = append(result, &rel)
	}
	return result, nil
}

// Count returns the number of relationships matching the filter
func (r *RelationshipRepository) Count(ctx context.Context, filter *repositories.RelationshipFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, row := range r.rows {
		if matchRelationship(&row.rel, filter) {
			n++
		}
	}
	return n, nil
}

// DeleteByEntity removes every relationship of kind that references ref on either side
func (r *RelationshipRepository) DeleteByEntity(ctx context.Context, kind entities.Kind, ref entities.Ref) (int64, error) {
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("invalid entity reference: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for key, row := range r.rows {
		if row.rel.Kind != kind {
			continue
		}
		if row.rel.Subject() == ref || row.rel.Object() == ref {
			delete(r.rows, key)
			n++
		}
	}
	return n, nil
}

func matchRelationship(rel *entities.Relationship, f *repositories.RelationshipFilter) bool {
	if f == nil {
		return true
	}
	if f.Kind != "" && rel.Kind != f.Kind {
		return false
	}
	if f.SubjectType != "" && rel.SubjectType != f.SubjectType {
		return false
	}
	if f.SubjectID != "" && rel.SubjectID != f.SubjectID {
		return false
	}
	if f.ObjectType != "" && rel.ObjectType != f.ObjectType {
		return false
	}
	if f.ObjectID != "" && rel.ObjectID != f.ObjectID {
		return false
	}
	return true
}

func paginate[T any](rows []T, opts *repositories.ListOptions) []T {
	if opts == nil {
		return rows
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}
	return rows
}
