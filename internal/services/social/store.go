package social

import (
	"context"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
)

// ListOptions controls pagination and ordering of listings
type ListOptions = repositories.ListOptions

// RelationshipStore persists and queries the relationships of a single kind.
// Uniqueness is left to the repository; Create never checks before inserting.
type RelationshipStore struct {
	kind entities.Kind
	repo repositories.RelationshipRepository
}

// NewRelationshipStore creates a store for kind backed by repo
func NewRelationshipStore(kind entities.Kind, repo repositories.RelationshipRepository) *RelationshipStore {
	return &RelationshipStore{
		kind: kind,
		repo: repo,
	}
}

// Kind returns the relationship kind handled by the store
func (s *RelationshipStore) Kind() entities.Kind {
	return s.kind
}

// Create relates subject to object. If the pair already exists the returned
// error wraps repositories.ErrDuplicateRelationship.
func (s *RelationshipStore) Create(ctx context.Context, subject, object entities.Entity) (bool, error) {
	rel := entities.NewRelationship(s.kind, subject, object)
	if err := s.repo.Create(ctx, rel); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the relationship and reports whether one existed
func (s *RelationshipStore) Remove(ctx context.Context, subject, object entities.Entity) (bool, error) {
	return s.repo.Delete(ctx, entities.NewRelationship(s.kind, subject, object))
}

// Exists reports whether subject relates to object
func (s *RelationshipStore) Exists(ctx context.Context, subject, object entities.Entity) (bool, error) {
	return s.repo.Exists(ctx, entities.NewRelationship(s.kind, subject, object))
}

// ListObjectIDs returns the IDs of the objectType entities subject relates to
func (s *RelationshipStore) ListObjectIDs(ctx context.Context, subject entities.Entity, objectType string, opts *ListOptions) ([]string, error) {
	ref := entities.RefOf(subject)
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}

	rels, err := s.repo.Read(ctx, &repositories.RelationshipFilter{
		Kind:        s.kind,
		SubjectType: ref.Type,
		SubjectID:   ref.ID,
		ObjectType:  objectType,
	}, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rels))
	for i, rel := range rels {
		ids[i] = rel.ObjectID
	}
	return ids, nil
}

// ListSubjectIDs returns the IDs of the subjectType entities related to object
func (s *RelationshipStore) ListSubjectIDs(ctx context.Context, object entities.Entity, subjectType string, opts *ListOptions) ([]string, error) {
	ref := entities.RefOf(object)
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("invalid object: %w", err)
	}

	rels, err := s.repo.Read(ctx, &repositories.RelationshipFilter{
		Kind:        s.kind,
		SubjectType: subjectType,
		ObjectType:  ref.Type,
		ObjectID:    ref.ID,
	}, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rels))
	for i, rel := range rels {
		ids[i] = rel.SubjectID
	}
	return ids, nil
}

// CountObjects counts the objectType entities subject relates to
func (s *RelationshipStore) CountObjects(ctx context.Context, subject entities.Entity, objectType string) (int64, error) {
	ref := entities.RefOf(subject)
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("invalid subject: %w", err)
	}
	return s.repo.Count(ctx, &repositories.RelationshipFilter{
		Kind:        s.kind,
		SubjectType: ref.Type,
		SubjectID:   ref.ID,
		ObjectType:  objectType,
	})
}

// CountSubjects counts the subjectType entities related to object
func (s *RelationshipStore) CountSubjects(ctx context.Context, object entities.Entity, subjectType string) (int64, error) {
	ref := entities.RefOf(object)
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("invalid object: %w", err)
	}
	return s.repo.Count(ctx, &repositories.RelationshipFilter{
		Kind:        s.kind,
		SubjectType: subjectType,
		ObjectType:  ref.Type,
		ObjectID:    ref.ID,
	})
}

// RemoveAll deletes every relationship of this kind in which e takes part,
// on either side. Call it when e is destroyed.
func (s *RelationshipStore) RemoveAll(ctx context.Context, e entities.Entity) (int64, error) {
	return s.repo.DeleteByEntity(ctx, s.kind, entities.RefOf(e))
}

// Loader hydrates entities of type T from their IDs. Implementations should
// return the entities in the order of ids and skip IDs that no longer exist.
type Loader[T any] interface {
	Load(ctx context.Context, ids []string) ([]T, error)
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc[T any] func(ctx context.Context, ids []string) ([]T, error)

// Load calls f(ctx, ids)
func (f LoaderFunc[T]) Load(ctx context.Context, ids []string) ([]T, error) {
	return f(ctx, ids)
}

// ListObjects is ListObjectIDs followed by loading the entities through loader
func ListObjects[T any](ctx context.Context, s *RelationshipStore, subject entities.Entity, objectType string, opts *ListOptions, loader Loader[T]) ([]T, error) {
	ids, err := s.ListObjectIDs(ctx, subject, objectType, opts)
	if err != nil {
		return nil, err
	}
	return load(ctx, loader, ids)
}

// ListSubjects is ListSubjectIDs followed by loading the entities through loader
func ListSubjects[T any](ctx context.Context, s *RelationshipStore, object entities.Entity, subjectType string, opts *ListOptions, loader Loader[T]) ([]T, error) {
	ids, err := s.ListSubjectIDs(ctx, object, subjectType, opts)
	if err != nil {
		return nil, err
	}
	return load(ctx, loader, ids)
}

func load[T any](ctx context.Context, loader Loader[T], ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	items, err := loader.Load(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}
	return items, nil
}
