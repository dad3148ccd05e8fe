package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mention records that one entity mentioned another, e.g. a comment mentioning a user.
// It has no reverse-query API; readers filter the mentions collection directly.
type Mention struct {
	ID              uuid.UUID
	MentionerType   string // e.g., "comment"
	MentionerID     string
	MentionableType string // e.g., "user"
	MentionableID   string
	CreatedAt       time.Time
}

// NewMention builds an unsaved mention of mentionable by mentioner
func NewMention(mentioner, mentionable Entity) *Mention {
	m, t := RefOf(mentioner), RefOf(mentionable)
	return &Mention{
		MentionerType:   m.Type,
		MentionerID:     m.ID,
		MentionableType: t.Type,
		MentionableID:   t.ID,
	}
}

func (m *Mention) Mentioner() Ref {
	return Ref{Type: m.MentionerType, ID: m.MentionerID}
}

func (m *Mention) Mentionable() Ref {
	return Ref{Type: m.MentionableType, ID: m.MentionableID}
}

// String returns the mention in mentioner_type:mentioner_id#mention@mentionable_type:mentionable_id form
func (m *Mention) String() string {
	return fmt.Sprintf("%s:%s#%s@%s:%s",
		m.MentionerType, m.MentionerID, KindMention,
		m.MentionableType, m.MentionableID)
}

// Validate checks if the mention is valid
func (m *Mention) Validate() error {
	if m.MentionerType == "" {
		return fmt.Errorf("mentioner type is required")
	}
	if m.MentionerID == "" {
		return fmt.Errorf("mentioner ID is required")
	}
	if m.MentionableType == "" {
		return fmt.Errorf("mentionable type is required")
	}
	if m.MentionableID == "" {
		return fmt.Errorf("mentionable ID is required")
	}
	return nil
}
