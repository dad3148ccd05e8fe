package social

import (
	"context"

	"github.com/asakaida/socialization/internal/entities"
)

// LikeService is the like relationship seen from both ends
type LikeService struct {
	store  *RelationshipStore
	likers *ActorRole
	likees *TargetRole
}

// NewLikeService creates a like service over a like store
func NewLikeService(store *RelationshipStore) *LikeService {
	return &LikeService{
		store:  store,
		likers: NewActorRole(store, LikeCapabilities),
		likees: NewTargetRole(store, LikeCapabilities),
	}
}

// Like makes liker like likeable
func (s *LikeService) Like(ctx context.Context, liker entities.Liker, likeable entities.Entity) (bool, error) {
	return s.likers.Act(ctx, liker, likeable)
}

// Unlike removes the like and reports whether there was one
func (s *LikeService) Unlike(ctx context.Context, liker entities.Liker, likeable entities.Entity) (bool, error) {
	return s.likers.Unact(ctx, liker, likeable)
}

// ToggleLike likes or unlikes and returns whether liker now likes likeable
func (s *LikeService) ToggleLike(ctx context.Context, liker entities.Liker, likeable entities.Entity) (bool, error) {
	return s.likers.Toggle(ctx, liker, likeable)
}

// Likes reports whether liker likes likeable
func (s *LikeService) Likes(ctx context.Context, liker entities.Liker, likeable entities.Entity) (bool, error) {
	return s.likers.Related(ctx, liker, likeable)
}

// LikeableIDs returns the IDs of the likeableType entities liker likes
func (s *LikeService) LikeableIDs(ctx context.Context, liker entities.Liker, likeableType string, opts *ListOptions) ([]string, error) {
	return s.likers.RelatedObjectIDs(ctx, liker, likeableType, opts)
}

// LikeablesCount counts the likeableType entities liker likes
func (s *LikeService) LikeablesCount(ctx context.Context, liker entities.Liker, likeableType string) (int64, error) {
	return s.likers.CountRelatedObjects(ctx, liker, likeableType)
}

// LikedBy reports whether likeable is liked by liker
func (s *LikeService) LikedBy(ctx context.Context, likeable entities.Likeable, liker entities.Entity) (bool, error) {
	return s.likees.RelatedBy(ctx, likeable, liker)
}

// LikerIDs returns the IDs of the likerType entities liking likeable
func (s *LikeService) LikerIDs(ctx context.Context, likeable entities.Likeable, likerType string, opts *ListOptions) ([]string, error) {
	return s.likees.ActorIDs(ctx, likeable, likerType, opts)
}

// LikersCount counts the likerType entities liking likeable
func (s *LikeService) LikersCount(ctx context.Context, likeable entities.Likeable, likerType string) (int64, error) {
	return s.likees.CountActors(ctx, likeable, likerType)
}

// RemoveLikes deletes every like e takes part in, as liker or likee
func (s *LikeService) RemoveLikes(ctx context.Context, e entities.Entity) (int64, error) {
	return s.store.RemoveAll(ctx, e)
}

// Likeables returns the likeableType entities liker likes, loaded through loader.
// gormstore.LikeablesScope and LikersScope are the chainable gorm forms.
func Likeables[T any](ctx context.Context, s *LikeService, liker entities.Liker, likeableType string, opts *ListOptions, loader Loader[T]) ([]T, error) {
	ids, err := s.LikeableIDs(ctx, liker, likeableType, opts)
	if err != nil {
		return nil, err
	}
	return load(ctx, loader, ids)
}

// Likers returns the likerType entities liking likeable, loaded through loader
func Likers[T any](ctx context.Context, s *LikeService, likeable entities.Likeable, likerType string, opts *ListOptions, loader Loader[T]) ([]T, error) {
	ids, err := s.LikerIDs(ctx, likeable, likerType, opts)
	if err != nil {
		return nil, err
	}
	return load(ctx, loader, ids)
}
