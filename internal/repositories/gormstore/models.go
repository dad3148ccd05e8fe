package gormstore

import (
	"time"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/google/uuid"
)

// Relationship is the gorm model of the relationships table
type Relationship struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind        string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_relationships_unique,priority:1"`
	SubjectType string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_relationships_unique,priority:2"`
	SubjectID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_relationships_unique,priority:3"`
	ObjectType  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_relationships_unique,priority:4"`
	ObjectID    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_relationships_unique,priority:5"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Relationship) TableName() string {
	return "relationships"
}

func relationshipModel(rel *entities.Relationship) *Relationship {
	return &Relationship{
		ID:          uuid.New(),
		Kind:        string(rel.Kind),
		SubjectType: rel.SubjectType,
		SubjectID:   rel.SubjectID,
		ObjectType:  rel.ObjectType,
		ObjectID:    rel.ObjectID,
	}
}

func (m *Relationship) toEntity() *entities.Relationship {
	return &entities.Relationship{
		Kind:        entities.Kind(m.Kind),
		SubjectType: m.SubjectType,
		SubjectID:   m.SubjectID,
		ObjectType:  m.ObjectType,
		ObjectID:    m.ObjectID,
		CreatedAt:   m.CreatedAt,
	}
}

// Mention is the gorm model of the mentions table
type Mention struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MentionerType   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_mentions_unique,priority:3"`
	MentionerID     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_mentions_unique,priority:4"`
	MentionableType string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_mentions_unique,priority:1"`
	MentionableID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_mentions_unique,priority:2"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Mention) TableName() string {
	return "mentions"
}

func mentionModel(m *entities.Mention) *Mention {
	id := m.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Mention{
		ID:              id,
		MentionerType:   m.MentionerType,
		MentionerID:     m.MentionerID,
		MentionableType: m.MentionableType,
		MentionableID:   m.MentionableID,
	}
}

func (m *Mention) toEntity() *entities.Mention {
	return &entities.Mention{
		ID:              m.ID,
		MentionerType:   m.MentionerType,
		MentionerID:     m.MentionerID,
		MentionableType: m.MentionableType,
		MentionableID:   m.MentionableID,
		CreatedAt:       m.CreatedAt,
	}
}
