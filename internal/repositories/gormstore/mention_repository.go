package gormstore

import (
	"context"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"gorm.io/gorm"
)

// GormMentionRepository implements MentionRepository on top of gorm
type GormMentionRepository struct {
	db *gorm.DB
}

// NewGormMentionRepository creates a new gorm mention repository
func NewGormMentionRepository(db *gorm.DB) repositories.MentionRepository {
	return &GormMentionRepository{db: db}
}

// Create inserts a mention; the unique index rejects duplicates
func (r *GormMentionRepository) Create(ctx context.Context, mention *entities.Mention) error {
	if err := mention.Validate(); err != nil {
		return fmt.Errorf("invalid mention: %w", err)
	}

	model := mentionModel(mention)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicate(r.db, err) {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateMention, mention)
		}
		return fmt.Errorf("failed to create mention: %w", err)
	}

	mention.ID = model.ID
	mention.CreatedAt = model.CreatedAt
	return nil
}

// Read retrieves mentions matching the filter
func (r *GormMentionRepository) Read(ctx context.Context, filter *repositories.MentionFilter, opts *repositories.ListOptions) ([]*entities.Mention, error) {
	var models []Mention
	q := applyListOptions(where(r.db.WithContext(ctx), mentionConditions(filter)), opts)
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to read mentions: %w", err)
	}

	mentions := make([]*entities.Mention, 0, len(models))
	for i := range models {
		mentions = append(mentions, models[i].toEntity())
	}
	return mentions, nil
}

func mentionConditions(filter *repositories.MentionFilter) map[string]interface{} {
	conds := map[string]interface{}{}
	if filter == nil {
		return conds
	}
	if filter.MentionerType != "" {
		conds["mentioner_type"] = filter.MentionerType
	}
	if filter.MentionerID != "" {
		conds["mentioner_id"] = filter.MentionerID
	}
	if filter.MentionableType != "" {
		conds["mentionable_type"] = filter.MentionableType
	}
	if filter.MentionableID != "" {
		conds["mentionable_id"] = filter.MentionableID
	}
	return conds
}
