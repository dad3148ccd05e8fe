package social

import (
	"context"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
)

// MentionService writes mention records. Mentions have no toggle and no role
// API; readers query them with List.
type MentionService struct {
	repo repositories.MentionRepository
}

// NewMentionService creates a mention service backed by repo
func NewMentionService(repo repositories.MentionRepository) *MentionService {
	return &MentionService{repo: repo}
}

// Record stores that mentioner mentioned mentionable. Mentioning the same
// thing twice from the same object fails with repositories.ErrDuplicateMention.
func (s *MentionService) Record(ctx context.Context, mentioner, mentionable entities.Entity) (*entities.Mention, error) {
	mention := entities.NewMention(mentioner, mentionable)
	if err := mention.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mention: %w", err)
	}

	if err := s.repo.Create(ctx, mention); err != nil {
		return nil, err
	}
	return mention, nil
}

// List returns the mentions matching filter
func (s *MentionService) List(ctx context.Context, filter *repositories.MentionFilter, opts *ListOptions) ([]*entities.Mention, error) {
	return s.repo.Read(ctx, filter, opts)
}
