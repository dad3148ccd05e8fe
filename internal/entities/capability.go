package entities

// Capability markers. An entity type opts into a role by implementing the
// matching method and returning true. Types that embed Base get false for
// every role they do not override.
//
// Mentions have no markers: any entity may mention or be mentioned.

type Follower interface {
	Entity
	IsFollower() bool
}

type Followable interface {
	Entity
	IsFollowable() bool
}

type Liker interface {
	Entity
	IsLiker() bool
}

type Likeable interface {
	Entity
	IsLikeable() bool
}

// Base declares every capability as absent. Embed it in application models
// and override only the roles the model supports:
//
//	type User struct {
//		entities.Base
//		ID string
//	}
//
//	func (u *User) IsFollower() bool { return true }
type Base struct{}

func (Base) IsFollower() bool   { return false }
func (Base) IsFollowable() bool { return false }
func (Base) IsLiker() bool      { return false }
func (Base) IsLikeable() bool   { return false }

// Capability reports whether an entity supports a role.
// Every predicate below returns false for nil entities, typed nils included.
type Capability func(e Entity) bool

// IsFollower reports whether e may follow
func IsFollower(e Entity) bool {
	f, ok := e.(Follower)
	return ok && !IsNil(e) && f.IsFollower()
}

// IsFollowable reports whether e may be followed
func IsFollowable(e Entity) bool {
	f, ok := e.(Followable)
	return ok && !IsNil(e) && f.IsFollowable()
}

// IsLiker reports whether e may like
func IsLiker(e Entity) bool {
	l, ok := e.(Liker)
	return ok && !IsNil(e) && l.IsLiker()
}

// IsLikeable reports whether e may be liked
func IsLikeable(e Entity) bool {
	l, ok := e.(Likeable)
	return ok && !IsNil(e) && l.IsLikeable()
}
