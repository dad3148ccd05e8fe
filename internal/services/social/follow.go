package social

import (
	"context"

	"github.com/asakaida/socialization/internal/entities"
)

// FollowService is the follow relationship seen from both ends
type FollowService struct {
	store     *RelationshipStore
	followers *ActorRole
	followees *TargetRole
}

// NewFollowService creates a follow service over a follow store
func NewFollowService(store *RelationshipStore) *FollowService {
	return &FollowService{
		store:     store,
		followers: NewActorRole(store, FollowCapabilities),
		followees: NewTargetRole(store, FollowCapabilities),
	}
}

// Follow makes follower follow followable
func (s *FollowService) Follow(ctx context.Context, follower entities.Follower, followable entities.Entity) (bool, error) {
	return s.followers.Act(ctx, follower, followable)
}

// Unfollow removes the follow and reports whether there was one
func (s *FollowService) Unfollow(ctx context.Context, follower entities.Follower, followable entities.Entity) (bool, error) {
	return s.followers.Unact(ctx, follower, followable)
}

// ToggleFollow follows or unfollows and returns whether follower now follows followable
func (s *FollowService) ToggleFollow(ctx context.Context, follower entities.Follower, followable entities.Entity) (bool, error) {
	return s.followers.Toggle(ctx, follower, followable)
}

// Follows reports whether follower follows followable
func (s *FollowService) Follows(ctx context.Context, follower entities.Follower, followable entities.Entity) (bool, error) {
	return s.followers.Related(ctx, follower, followable)
}

// FollowableIDs returns the IDs of the followableType entities follower follows
func (s *FollowService) FollowableIDs(ctx context.Context, follower entities.Follower, followableType string, opts *ListOptions) ([]string, error) {
	return s.followers.RelatedObjectIDs(ctx, follower, followableType, opts)
}

// FollowablesCount counts the followableType entities follower follows
func (s *FollowService) FollowablesCount(ctx context.Context, follower entities.Follower, followableType string) (int64, error) {
	return s.followers.CountRelatedObjects(ctx, follower, followableType)
}

// FollowedBy reports whether followable is followed by follower
func (s *FollowService) FollowedBy(ctx context.Context, followable entities.Followable, follower entities.Entity) (bool, error) {
	return s.followees.RelatedBy(ctx, followable, follower)
}

// FollowerIDs returns the IDs of the followerType entities following followable
func (s *FollowService) FollowerIDs(ctx context.Context, followable entities.Followable, followerType string, opts *ListOptions) ([]string, error) {
	return s.followees.ActorIDs(ctx, followable, followerType, opts)
}

// FollowersCount counts the followerType entities following followable
func (s *FollowService) FollowersCount(ctx context.Context, followable entities.Followable, followerType string) (int64, error) {
	return s.followees.CountActors(ctx, followable, followerType)
}

// RemoveFollows deletes every follow e takes part in, as follower or followee
func (s *FollowService) RemoveFollows(ctx context.Context, e entities.Entity) (int64, error) {
	return s.store.RemoveAll(ctx, e)
}

// Followables returns the followableType entities follower follows, loaded through loader.
// gormstore.FollowablesScope gives the same set as a gorm query that can be refined further.
func Followables[T any](ctx context.Context, s *FollowService, follower entities.Follower, followableType string, opts *ListOptions, loader Loader[T]) ([]T, error) {
	ids, err := s.FollowableIDs(ctx, follower, followableType, opts)
	if err != nil {
		return nil, err
	}
	return load(ctx, loader, ids)
}

// Followers returns the followerType entities following followable, loaded through loader.
// See gormstore.FollowersScope for the chainable form.
func Followers[T any](ctx context.Context, s *FollowService, followable entities.Followable, followerType string, opts *ListOptions, loader Loader[T]) ([]T, error) {
	ids, err := s.FollowerIDs(ctx, followable, followerType, opts)
	if err != nil {
		return nil, err
	}
	return load(ctx, loader, ids)
}
