package gormstore

import (
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"gorm.io/gorm"
)

// Scopes restrict a query over an application model table to the rows that
// take part in a relationship. Unlike Loader they return a query, so callers
// can keep chaining conditions, ordering and pagination:
//
//	db.Scopes(gormstore.FollowablesScope(alice, "post")).
//		Where("published = ?", true).
//		Find(&posts)
//
// The model table is matched on its "id" column.

// FollowablesScope selects the followableType rows follower follows
func FollowablesScope(follower entities.Follower, followableType string) func(*gorm.DB) *gorm.DB {
	return ObjectsScope(entities.KindFollow, follower, followableType)
}

// FollowersScope selects the followerType rows following followable
func FollowersScope(followable entities.Followable, followerType string) func(*gorm.DB) *gorm.DB {
	return SubjectsScope(entities.KindFollow, followable, followerType)
}

// LikeablesScope selects the likeableType rows liker likes
func LikeablesScope(liker entities.Liker, likeableType string) func(*gorm.DB) *gorm.DB {
	return ObjectsScope(entities.KindLike, liker, likeableType)
}

// LikersScope selects the likerType rows liking likeable
func LikersScope(likeable entities.Likeable, likerType string) func(*gorm.DB) *gorm.DB {
	return SubjectsScope(entities.KindLike, likeable, likerType)
}

// ObjectsScope selects the objectType rows subject relates to through kind
func ObjectsScope(kind entities.Kind, subject entities.Entity, objectType string) func(*gorm.DB) *gorm.DB {
	ref := entities.RefOf(subject)
	return relatedScope(kind, ref, "object_id", &repositories.RelationshipFilter{
		Kind:        kind,
		SubjectType: ref.Type,
		SubjectID:   ref.ID,
		ObjectType:  objectType,
	})
}

// SubjectsScope selects the subjectType rows related to object through kind
func SubjectsScope(kind entities.Kind, object entities.Entity, subjectType string) func(*gorm.DB) *gorm.DB {
	ref := entities.RefOf(object)
	return relatedScope(kind, ref, "subject_id", &repositories.RelationshipFilter{
		Kind:        kind,
		SubjectType: subjectType,
		ObjectType:  ref.Type,
		ObjectID:    ref.ID,
	})
}

func relatedScope(kind entities.Kind, ref entities.Ref, column string, filter *repositories.RelationshipFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !kind.IsRelationship() {
			db.AddError(fmt.Errorf("%s is not stored as a relationship", kind))
			return db
		}
		if err := ref.Validate(); err != nil {
			db.AddError(fmt.Errorf("invalid entity reference: %w", err))
			return db
		}

		ids := db.Session(&gorm.Session{NewDB: true}).
			Model(&Relationship{}).
			Select(column).
			Where(relationshipConditions(filter))
		return db.Where("id IN (?)", ids)
	}
}
