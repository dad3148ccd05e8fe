package entities

import "fmt"

// Kind is the category of a directed relationship between two entities.
type Kind string

const (
	KindFollow  Kind = "follow"
	KindLike    Kind = "like"
	KindMention Kind = "mention"
)

// RelationshipKinds lists the kinds stored as relationships. Mentions are
// kept as Mention records in their own table.
var RelationshipKinds = []Kind{KindFollow, KindLike}

// Valid reports whether k is a supported relationship kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFollow, KindLike, KindMention:
		return true
	}
	return false
}

// IsRelationship reports whether k is stored as a Relationship
func (k Kind) IsRelationship() bool {
	return k == KindFollow || k == KindLike
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a string such as "follow" into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown relationship kind %q", s)
	}
	return k, nil
}
