package repositories

import "errors"

var (
	// ErrDuplicateRelationship is returned by Create when the relationship already exists.
	// Callers may treat it as "already related".
	ErrDuplicateRelationship = errors.New("relationship already exists")

	// ErrDuplicateMention is returned by Create when the mention already exists.
	ErrDuplicateMention = errors.New("cannot mention the same thing twice in a given object")
)
