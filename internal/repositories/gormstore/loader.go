package gormstore

import (
	"context"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Loader hydrates application models of type T from their IDs.
// It satisfies social.Loader[T], so relationship listings can return records
// instead of bare identifiers.
type Loader[T entities.Entity] struct {
	db *gorm.DB
}

// NewLoader creates a loader that looks models up by their "id" column
func NewLoader[T entities.Entity](db *gorm.DB) *Loader[T] {
	return &Loader[T]{db: db}
}

// Load fetches the models for ids, returned in the order of ids.
// IDs without a matching row are skipped.
func (l *Loader[T]) Load(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	var rows []T
	err := l.db.WithContext(ctx).
		Where(clause.IN{Column: clause.Column{Name: "id"}, Values: values}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}

	return orderByIDs(rows, ids), nil
}

func orderByIDs[T entities.Entity](rows []T, ids []string) []T {
	byID := make(map[string]T, len(rows))
	for _, row := range rows {
		byID[row.EntityID()] = row
	}

	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered
}
