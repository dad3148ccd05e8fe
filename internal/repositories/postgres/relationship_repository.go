package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/google/uuid"
)

// PostgresRelationshipRepository implements RelationshipRepository using PostgreSQL
type PostgresRelationshipRepository struct {
	db *sql.DB
}

// NewPostgresRelationshipRepository creates a new PostgreSQL relationship repository
func NewPostgresRelationshipRepository(db *sql.DB) repositories.RelationshipRepository {
	return &PostgresRelationshipRepository{db: db}
}

// Create inserts a relationship. The unique index arbitrates concurrent writers.
func (r *PostgresRelationshipRepository) Create(ctx context.Context, rel *entities.Relationship) error {
	if err := rel.Validate(); err != nil {
		return fmt.Errorf("invalid relationship: %w", err)
	}

	query := `
		INSERT INTO relationships (id, kind, subject_type, subject_id, object_type, object_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(), string(rel.Kind),
		rel.SubjectType, rel.SubjectID, rel.ObjectType, rel.ObjectID,
	).Scan(&rel.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateRelationship, rel)
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	return nil
}

// Delete removes a relationship and reports whether a row was deleted
func (r *PostgresRelationshipRepository) Delete(ctx context.Context, rel *entities.Relationship) (bool, error) {
	if err := rel.Validate(); err != nil {
		return false, fmt.Errorf("invalid relationship: %w", err)
	}

	query := `
		DELETE FROM relationships
		WHERE kind = $1
			AND subject_type = $2
			AND subject_id = $3
			AND object_type = $4
			AND object_id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		string(rel.Kind), rel.SubjectType, rel.SubjectID, rel.ObjectType, rel.ObjectID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete relationship: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}

// Exists checks if a specific relationship exists
func (r *PostgresRelationshipRepository) Exists(ctx context.Context, rel *entities.Relationship) (bool, error) {
	if err := rel.Validate(); err != nil {
		return false, fmt.Errorf("invalid relationship: %w", err)
	}

	query := `
		SELECT EXISTS(
			SELECT 1 FROM relationships
			WHERE kind = $1
				AND subject_type = $2
				AND subject_id = $3
				AND object_type = $4
				AND object_id = $5
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query,
		string(rel.Kind), rel.SubjectType, rel.SubjectID, rel.ObjectType, rel.ObjectID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check relationship existence: %w", err)
	}

	return exists, nil
}

// Read retrieves relationships matching the filter
func (r *PostgresRelationshipRepository) Read(ctx context.Context, filter *repositories.RelationshipFilter, opts *repositories.ListOptions) ([]*entities.Relationship, error) {
	w := relationshipWhere(filter)
	query := `SELECT kind, subject_type, subject_id, object_type, object_id, created_at FROM relationships` +
		w.String()
	query += w.paginate(opts)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read relationships: %w", err)
	}
	defer rows.Close()

	rels := make([]*entities.Relationship, 0)
	for rows.Next() {
		var rel entities.Relationship
		var kind string

		err := rows.Scan(&kind, &rel.SubjectType, &rel.SubjectID, &rel.ObjectType, &rel.ObjectID, &rel.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rel.Kind = entities.Kind(kind)

		rels = append(rels, &rel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relationships: %w", err)
	}

	return rels, nil
}

// Count returns the number of relationships matching the filter
func (r *PostgresRelationshipRepository) Count(ctx context.Context, filter *repositories.RelationshipFilter) (int64, error) {
	w := relationshipWhere(filter)
	query := `SELECT COUNT(*) FROM relationships` + w.String()

	var n int64
	if err := r.db.QueryRowContext(ctx, query, w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count relationships: %w", err)
	}

	return n, nil
}

// DeleteByEntity removes every relationship of kind that references ref on either side
func (r *PostgresRelationshipRepository) DeleteByEntity(ctx context.Context, kind entities.Kind, ref entities.Ref) (int64, error) {
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("invalid entity reference: %w", err)
	}

	query := `
		DELETE FROM relationships
		WHERE kind = $1
			AND ((subject_type = $2 AND subject_id = $3)
				OR (object_type = $2 AND object_id = $3))
	`
	result, err := r.db.ExecContext(ctx, query, string(kind), ref.Type, ref.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete relationships by entity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected, nil
}
