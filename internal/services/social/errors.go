package social

import (
	"errors"
	"fmt"

	"github.com/asakaida/socialization/internal/entities"
)

// ErrInvalidCapability matches every InvalidTargetError and InvalidActorError
var ErrInvalidCapability = errors.New("entity lacks the required capability")

// InvalidTargetError is returned when the target of a relationship does not
// declare the capability the relationship kind requires.
type InvalidTargetError struct {
	Kind   entities.Kind
	Target entities.Ref
	Noun   string // e.g., "followable"
}

func (e *InvalidTargetError) Error() string {
	if e.Target.IsZero() {
		return fmt.Sprintf("nil target is not %s", e.Noun)
	}
	return fmt.Sprintf("%s is not %s", e.Target, e.Noun)
}

func (e *InvalidTargetError) Is(target error) bool {
	return target == ErrInvalidCapability
}

// InvalidActorError is returned when the acting entity does not declare the
// actor capability of the relationship kind.
type InvalidActorError struct {
	Kind  entities.Kind
	Actor entities.Ref
	Noun  string // e.g., "a follower"
}

func (e *InvalidActorError) Error() string {
	if e.Actor.IsZero() {
		return fmt.Sprintf("nil actor is not %s", e.Noun)
	}
	return fmt.Sprintf("%s is not %s", e.Actor, e.Noun)
}

func (e *InvalidActorError) Is(target error) bool {
	return target == ErrInvalidCapability
}
