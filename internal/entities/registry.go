package entities

import (
	"fmt"
	"sort"
	"strings"
)

// Role names a capability an entity type can declare.
type Role string

const (
	RoleFollower   Role = "follower"
	RoleFollowable Role = "followable"
	RoleLiker      Role = "liker"
	RoleLikeable   Role = "likeable"
)

var knownRoles = map[Role]bool{
	RoleFollower:   true,
	RoleFollowable: true,
	RoleLiker:      true,
	RoleLikeable:   true,
}

// Registry records which roles each entity type supports, for callers that
// only hold references and have no model types to attach methods to.
type Registry struct {
	roles map[string]map[Role]bool
}

// NewRegistry creates an empty registry. Every type has no roles until declared.
func NewRegistry() *Registry {
	return &Registry{roles: make(map[string]map[Role]bool)}
}

// ParseRegistry builds a registry from "type:role,role;type:role" notation.
// Example: "user:follower,followable,liker;post:likeable"
func ParseRegistry(def string) (*Registry, error) {
	r := NewRegistry()
	for _, part := range strings.Split(def, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		typ, list, ok := strings.Cut(part, ":")
		typ = strings.TrimSpace(typ)
		if !ok || typ == "" {
			return nil, fmt.Errorf("invalid capability declaration %q: expected type:role[,role]", part)
		}
		var roles []Role
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			roles = append(roles, Role(name))
		}
		if err := r.Declare(typ, roles...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Declare adds roles to an entity type
func (r *Registry) Declare(entityType string, roles ...Role) error {
	if entityType == "" {
		return fmt.Errorf("entity type is required")
	}
	for _, role := range roles {
		if !knownRoles[role] {
			return fmt.Errorf("unknown role %q for type %q", role, entityType)
		}
	}
	set, ok := r.roles[entityType]
	if !ok {
		set = make(map[Role]bool)
		r.roles[entityType] = set
	}
	for _, role := range roles {
		set[role] = true
	}
	return nil
}

// Has reports whether the entity type declared the role
func (r *Registry) Has(entityType string, role Role) bool {
	return r.roles[entityType][role]
}

// Roles returns the declared roles of an entity type in sorted order
func (r *Registry) Roles(entityType string) []Role {
	roles := make([]Role, 0, len(r.roles[entityType]))
	for role := range r.roles[entityType] {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Resolve returns an Entity for ref whose capability markers are answered by the registry.
func (r *Registry) Resolve(ref Ref) Entity {
	return registeredEntity{Ref: ref, registry: r}
}

type registeredEntity struct {
	Ref
	registry *Registry
}

func (e registeredEntity) IsFollower() bool   { return e.registry.Has(e.Type, RoleFollower) }
func (e registeredEntity) IsFollowable() bool { return e.registry.Has(e.Type, RoleFollowable) }
func (e registeredEntity) IsLiker() bool      { return e.registry.Has(e.Type, RoleLiker) }
func (e registeredEntity) IsLikeable() bool   { return e.registry.Has(e.Type, RoleLikeable) }
