package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate creates or updates the relationships and mentions tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Relationship{}, &Mention{})
}

// GormRelationshipRepository implements RelationshipRepository on top of gorm
type GormRelationshipRepository struct {
	db *gorm.DB
}

// NewGormRelationshipRepository creates a new gorm relationship repository
func NewGormRelationshipRepository(db *gorm.DB) repositories.RelationshipRepository {
	return &GormRelationshipRepository{db: db}
}

// Create inserts a relationship. A violation of idx_relationships_unique is
// reported as ErrDuplicateRelationship.
func (r *GormRelationshipRepository) Create(ctx context.Context, rel *entities.Relationship) error {
	if err := rel.Validate(); err != nil {
		return fmt.Errorf("invalid relationship: %w", err)
	}

	model := relationshipModel(rel)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicate(r.db, err) {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateRelationship, rel)
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	rel.CreatedAt = model.CreatedAt
	return nil
}

// Delete removes a relationship and reports whether a row was deleted
func (r *GormRelationshipRepository) Delete(ctx context.Context, rel *entities.Relationship) (bool, error) {
	if err := rel.Validate(); err != nil {
		return false, fmt.Errorf("invalid relationship: %w", err)
	}

	result := r.db.WithContext(ctx).
		Where(exactRelationship(rel)).
		Delete(&Relationship{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete relationship: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Exists checks if a specific relationship exists
func (r *GormRelationshipRepository) Exists(ctx context.Context, rel *entities.Relationship) (bool, error) {
	if err := rel.Validate(); err != nil {
		return false, fmt.Errorf("invalid relationship: %w", err)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&Relationship{}).
		Where(exactRelationship(rel)).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check relationship existence: %w", err)
	}

	return count > 0, nil
}

// Read retrieves relationships matching the filter
func (r *GormRelationshipRepository) Read(ctx context.Context, filter *repositories.RelationshipFilter, opts *repositories.ListOptions) ([]*entities.Relationship, error) {
	var models []Relationship
	q := applyListOptions(where(r.db.WithContext(ctx), relationshipConditions(filter)), opts)
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to read relationships: %w", err)
	}

	rels := make([]*entities.Relationship, 0, len(models))
	for i := range models {
		rels = append(rels, models[i].toEntity())
	}
	return rels, nil
}

// Count returns the number of relationships matching the filter
func (r *GormRelationshipRepository) Count(ctx context.Context, filter *repositories.RelationshipFilter) (int64, error) {
	var count int64
	err := where(r.db.WithContext(ctx).Model(&Relationship{}), relationshipConditions(filter)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count relationships: %w", err)
	}
	return count, nil
}

// DeleteByEntity removes every relationship of kind that references ref on either side
func (r *GormRelationshipRepository) DeleteByEntity(ctx context.Context, kind entities.Kind, ref entities.Ref) (int64, error) {
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("invalid entity reference: %w", err)
	}

	db := r.db.WithContext(ctx)
	result := db.
		Where("kind = ?", string(kind)).
		Where(db.Where("subject_type = ? AND subject_id = ?", ref.Type, ref.ID).
			Or("object_type = ? AND object_id = ?", ref.Type, ref.ID)).
		Delete(&Relationship{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete relationships by entity: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func exactRelationship(rel *entities.Relationship) map[string]interface{} {
	return map[string]interface{}{
		"kind":         string(rel.Kind),
		"subject_type": rel.SubjectType,
		"subject_id":   rel.SubjectID,
		"object_type":  rel.ObjectType,
		"object_id":    rel.ObjectID,
	}
}

// relationshipConditions turns the set fields of filter into an equality map
func relationshipConditions(filter *repositories.RelationshipFilter) map[string]interface{} {
	conds := map[string]interface{}{}
	if filter == nil {
		return conds
	}
	if filter.Kind != "" {
		conds["kind"] = string(filter.Kind)
	}
	if filter.SubjectType != "" {
		conds["subject_type"] = filter.SubjectType
	}
	if filter.SubjectID != "" {
		conds["subject_id"] = filter.SubjectID
	}
	if filter.ObjectType != "" {
		conds["object_type"] = filter.ObjectType
	}
	if filter.ObjectID != "" {
		conds["object_id"] = filter.ObjectID
	}
	return conds
}

// where applies conds unless empty; an empty filter selects every row
func where(q *gorm.DB, conds map[string]interface{}) *gorm.DB {
	if len(conds) == 0 {
		return q
	}
	return q.Where(conds)
}

// orderBy returns the creation-time ordering for opts, ties broken by id
func orderBy(opts *repositories.ListOptions) clause.OrderBy {
	desc := opts == nil || opts.Order == repositories.OrderNewest
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "created_at"}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}}
}

func applyListOptions(q *gorm.DB, opts *repositories.ListOptions) *gorm.DB {
	q = q.Order(orderBy(opts))
	if opts == nil {
		return q
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	return q
}

// isDuplicate reports whether err is a unique-constraint violation. Errors are
// translated through the dialector so this works whether or not the session
// was opened with TranslateError.
func isDuplicate(db *gorm.DB, err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		return errors.Is(translator.Translate(err), gorm.ErrDuplicatedKey)
	}
	return false
}
