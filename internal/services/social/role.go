package social

import (
	"context"

	"github.com/asakaida/socialization/internal/entities"
)

// Capabilities names the roles the two ends of a relationship kind must declare
type Capabilities struct {
	Actor      entities.Capability
	ActorNoun  string
	Target     entities.Capability
	TargetNoun string
}

// Built-in capability sets of the follow and like kinds
var (
	FollowCapabilities = Capabilities{
		Actor:      entities.IsFollower,
		ActorNoun:  "a follower",
		Target:     entities.IsFollowable,
		TargetNoun: "followable",
	}
	LikeCapabilities = Capabilities{
		Actor:      entities.IsLiker,
		ActorNoun:  "a liker",
		Target:     entities.IsLikeable,
		TargetNoun: "likeable",
	}
)

func (c Capabilities) checkActor(kind entities.Kind, actor entities.Entity) error {
	if entities.IsNil(actor) || !c.Actor(actor) {
		return &InvalidActorError{Kind: kind, Actor: entities.RefOf(actor), Noun: c.ActorNoun}
	}
	return nil
}

func (c Capabilities) checkTarget(kind entities.Kind, target entities.Entity) error {
	if entities.IsNil(target) || !c.Target(target) {
		return &InvalidTargetError{Kind: kind, Target: entities.RefOf(target), Noun: c.TargetNoun}
	}
	return nil
}

// ActorRole is the subject side of a relationship kind. Every method checks
// capabilities before touching the store.
type ActorRole struct {
	store *RelationshipStore
	caps  Capabilities
}

// NewActorRole creates the actor side of store guarded by caps
func NewActorRole(store *RelationshipStore, caps Capabilities) *ActorRole {
	return &ActorRole{store: store, caps: caps}
}

func (r *ActorRole) guard(actor, target entities.Entity) error {
	if err := r.caps.checkActor(r.store.Kind(), actor); err != nil {
		return err
	}
	return r.caps.checkTarget(r.store.Kind(), target)
}

// Act relates actor to target
func (r *ActorRole) Act(ctx context.Context, actor, target entities.Entity) (bool, error) {
	if err := r.guard(actor, target); err != nil {
		return false, err
	}
	return r.store.Create(ctx, actor, target)
}

// Unact removes the relationship, returning false if there was none
func (r *ActorRole) Unact(ctx context.Context, actor, target entities.Entity) (bool, error) {
	if err := r.guard(actor, target); err != nil {
		return false, err
	}
	return r.store.Remove(ctx, actor, target)
}

// Toggle flips the relationship and returns the new state.
// The read and the write are separate store calls, so concurrent togglers of
// the same pair race; the last writer wins.
func (r *ActorRole) Toggle(ctx context.Context, actor, target entities.Entity) (bool, error) {
	related, err := r.Related(ctx, actor, target)
	if err != nil {
		return false, err
	}
	if related {
		if _, err := r.Unact(ctx, actor, target); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := r.Act(ctx, actor, target); err != nil {
		return false, err
	}
	return true, nil
}

// Related reports whether actor relates to target
func (r *ActorRole) Related(ctx context.Context, actor, target entities.Entity) (bool, error) {
	if err := r.guard(actor, target); err != nil {
		return false, err
	}
	return r.store.Exists(ctx, actor, target)
}

// RelatedObjectIDs returns the IDs of the targetType entities actor relates to
func (r *ActorRole) RelatedObjectIDs(ctx context.Context, actor entities.Entity, targetType string, opts *ListOptions) ([]string, error) {
	if err := r.caps.checkActor(r.store.Kind(), actor); err != nil {
		return nil, err
	}
	return r.store.ListObjectIDs(ctx, actor, targetType, opts)
}

// CountRelatedObjects counts the targetType entities actor relates to
func (r *ActorRole) CountRelatedObjects(ctx context.Context, actor entities.Entity, targetType string) (int64, error) {
	if err := r.caps.checkActor(r.store.Kind(), actor); err != nil {
		return 0, err
	}
	return r.store.CountObjects(ctx, actor, targetType)
}

// TargetRole is the object side of a relationship kind
type TargetRole struct {
	store *RelationshipStore
	caps  Capabilities
}

// NewTargetRole creates the target side of store guarded by caps
func NewTargetRole(store *RelationshipStore, caps Capabilities) *TargetRole {
	return &TargetRole{store: store, caps: caps}
}

// RelatedBy reports whether actor relates to target
func (r *TargetRole) RelatedBy(ctx context.Context, target, actor entities.Entity) (bool, error) {
	if err := r.caps.checkTarget(r.store.Kind(), target); err != nil {
		return false, err
	}
	if err := r.caps.checkActor(r.store.Kind(), actor); err != nil {
		return false, err
	}
	return r.store.Exists(ctx, actor, target)
}

// ActorIDs returns the IDs of the actorType entities related to target
func (r *TargetRole) ActorIDs(ctx context.Context, target entities.Entity, actorType string, opts *ListOptions) ([]string, error) {
	if err := r.caps.checkTarget(r.store.Kind(), target); err != nil {
		return nil, err
	}
	return r.store.ListSubjectIDs(ctx, target, actorType, opts)
}

// CountActors counts the actorType entities related to target
func (r *TargetRole) CountActors(ctx context.Context, target entities.Entity, actorType string) (int64, error) {
	if err := r.caps.checkTarget(r.store.Kind(), target); err != nil {
		return 0, err
	}
	return r.store.CountSubjects(ctx, target, actorType)
}
