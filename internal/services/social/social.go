// Package social gives application entities follow, like and mention
// relationships on top of a polymorphic relationship repository.
package social

import (
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
)

// Service bundles the relationship services that share one repository
type Service struct {
	stores   map[entities.Kind]*RelationshipStore
	follows  *FollowService
	likes    *LikeService
	mentions *MentionService
}

// New creates the social services on top of the given repositories
func New(relationships repositories.RelationshipRepository, mentions repositories.MentionRepository) *Service {
	stores := make(map[entities.Kind]*RelationshipStore, len(entities.RelationshipKinds))
	for _, kind := range entities.RelationshipKinds {
		stores[kind] = NewRelationshipStore(kind, relationships)
	}

	return &Service{
		stores:   stores,
		follows:  NewFollowService(stores[entities.KindFollow]),
		likes:    NewLikeService(stores[entities.KindLike]),
		mentions: NewMentionService(mentions),
	}
}

// Follows returns the follow service
func (s *Service) Follows() *FollowService {
	return s.follows
}

// Likes returns the like service
func (s *Service) Likes() *LikeService {
	return s.likes
}

// Mentions returns the mention service
func (s *Service) Mentions() *MentionService {
	return s.mentions
}

// Store returns the relationship store of kind. Mentions have no store;
// they are written and read through Mentions.
func (s *Service) Store(kind entities.Kind) (*RelationshipStore, error) {
	if kind == entities.KindMention {
		return nil, fmt.Errorf("mentions are not stored as relationships, use the mention service")
	}
	store, ok := s.stores[kind]
	if !ok {
		return nil, fmt.Errorf("unknown relationship kind %q", kind)
	}
	return store, nil
}

// Roles returns both role views of kind. Only kinds with actor and target
// capabilities have roles; mentions do not.
func (s *Service) Roles(kind entities.Kind) (*ActorRole, *TargetRole, error) {
	var caps Capabilities
	switch kind {
	case entities.KindFollow:
		caps = FollowCapabilities
	case entities.KindLike:
		caps = LikeCapabilities
	default:
		return nil, nil, fmt.Errorf("relationship kind %q has no roles", kind)
	}

	store, err := s.Store(kind)
	if err != nil {
		return nil, nil, err
	}
	return NewActorRole(store, caps), NewTargetRole(store, caps), nil
}
