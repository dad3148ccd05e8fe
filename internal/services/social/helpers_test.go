package social

import (
	"context"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
)

type user struct {
	entities.Base
	id string
}

func (u *user) EntityType() string { return "user" }
func (u *user) EntityID() string   { return u.id }
func (u *user) IsFollower() bool   { return true }
func (u *user) IsFollowable() bool { return true }
func (u *user) IsLiker() bool      { return true }

type post struct {
	entities.Base
	id string
}

func (p *post) EntityType() string { return "post" }
func (p *post) EntityID() string   { return p.id }
func (p *post) IsLikeable() bool   { return true }

// tag declares no capability at all
type tag struct {
	entities.Base
	id string
}

func (t *tag) EntityType() string { return "tag" }
func (t *tag) EntityID() string   { return t.id }

// mockRelationshipRepository records every call and delegates to optional funcs
type mockRelationshipRepository struct {
	calls int

	createFunc func(ctx context.Context, rel *entities.Relationship) error
	deleteFunc func(ctx context.Context, rel *entities.Relationship) (bool, error)
	existsFunc func(ctx context.Context, rel *entities.Relationship) (bool, error)
	readFunc   func(ctx context.Context, filter *repositories.RelationshipFilter, opts *repositories.ListOptions) ([]*entities.Relationship, error)
}

func (m *mockRelationshipRepository) Create(ctx context.Context, rel *entities.Relationship) error {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, rel)
	}
	return nil
}

func (m *mockRelationshipRepository) Delete(ctx context.Context, rel *entities.Relationship) (bool, error) {
	m.calls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, rel)
	}
	return false, nil
}

func (m *mockRelationshipRepository) Exists(ctx context.Context, rel *entities.Relationship) (bool, error) {
	m.calls++
	if m.existsFunc != nil {
		return m.existsFunc(ctx, rel)
	}
	return false, nil
}

func (m *mockRelationshipRepository) Read(ctx context.Context, filter *repositories.RelationshipFilter, opts *repositories.ListOptions) ([]*entities.Relationship, error) {
	m.calls++
	if m.readFunc != nil {
		return m.readFunc(ctx, filter, opts)
	}
	return nil, nil
}

func (m *mockRelationshipRepository) Count(ctx context.Context, filter *repositories.RelationshipFilter) (int64, error) {
	m.calls++
	return 0, nil
}

func (m *mockRelationshipRepository) DeleteByEntity(ctx context.Context, kind entities.Kind, ref entities.Ref) (int64, error) {
	m.calls++
	return 0, nil
}
