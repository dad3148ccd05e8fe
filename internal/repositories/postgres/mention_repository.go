package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/google/uuid"
)

// PostgresMentionRepository implements MentionRepository using PostgreSQL
type PostgresMentionRepository struct {
	db *sql.DB
}

// NewPostgresMentionRepository creates a new PostgreSQL mention repository
func NewPostgresMentionRepository(db *sql.DB) repositories.MentionRepository {
	return &PostgresMentionRepository{db: db}
}

// Create inserts a mention, relying on idx_mentions_unique for deduplication
func (r *PostgresMentionRepository) Create(ctx context.Context, mention *entities.Mention) error {
	if err := mention.Validate(); err != nil {
		return fmt.Errorf("invalid mention: %w", err)
	}

	id := mention.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO mentions (id, mentioner_type, mentioner_id, mentionable_type, mentionable_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		id, mention.MentionerType, mention.MentionerID,
		mention.MentionableType, mention.MentionableID,
	).Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateMention, mention)
		}
		return fmt.Errorf("failed to create mention: %w", err)
	}

	mention.ID = id
	mention.CreatedAt = createdAt
	return nil
}

// Read retrieves mentions matching the filter
func (r *PostgresMentionRepository) Read(ctx context.Context, filter *repositories.MentionFilter, opts *repositories.ListOptions) ([]*entities.Mention, error) {
	w := mentionWhere(filter)
	query := `SELECT id, mentioner_type, mentioner_id, mentionable_type, mentionable_id, created_at FROM mentions` +
		w.String()
	query += w.paginate(opts)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read mentions: %w", err)
	}
	defer rows.Close()

	mentions := make([]*entities.Mention, 0)
	for rows.Next() {
		var m entities.Mention
		err := rows.Scan(&m.ID, &m.MentionerType, &m.MentionerID, &m.MentionableType, &m.MentionableID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mention: %w", err)
		}
		mentions = append(mentions, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mentions: %w", err)
	}

	return mentions, nil
}
