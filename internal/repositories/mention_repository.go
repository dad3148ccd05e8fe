package repositories

import (
	"context"

	"github.com/asakaida/socialization/internal/entities"
)

// MentionFilter defines filter criteria for querying mentions
type MentionFilter struct {
	MentionerType   string
	MentionerID     string
	MentionableType string
	MentionableID   string
}

// MentionRepository defines the interface for mention data access
type MentionRepository interface {
	// Create inserts a mention, assigning its ID and creation time.
	// Returns ErrDuplicateMention if the pair was already recorded.
	Create(ctx context.Context, mention *entities.Mention) error

	// Read retrieves mentions matching the filter
	Read(ctx context.Context, filter *MentionFilter, opts *ListOptions) ([]*entities.Mention, error)
}
