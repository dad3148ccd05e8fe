package entities

import (
	"reflect"
	"testing"
)

func TestParseRegistry(t *testing.T) {
	r, err := ParseRegistry("user: follower, followable, liker ; post:likeable;")
	if err != nil {
		t.Fatalf("ParseRegistry() error = %v", err)
	}

	want := []Role{RoleFollowable, RoleFollower, RoleLiker}
	if got := r.Roles("user"); !reflect.DeepEqual(got, want) {
		t.Errorf("Roles(user) = %v, want %v", got, want)
	}
	if !r.Has("post", RoleLikeable) {
		t.Error("expected post to be likeable")
	}
	if r.Has("post", RoleFollower) {
		t.Error("post should not be a follower")
	}
	if got := r.Roles("comment"); len(got) != 0 {
		t.Errorf("Roles(comment) = %v, want none", got)
	}
}

func TestParseRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{name: "missing roles separator", def: "user"},
		{name: "empty type", def: ":follower"},
		{name: "unknown role", def: "user:blocker"},
		{name: "mentions carry no roles", def: "comment:mentioner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRegistry(tt.def); err == nil {
				t.Errorf("ParseRegistry(%q) expected error", tt.def)
			}
		})
	}
}

func TestParseRegistry_Empty(t *testing.T) {
	r, err := ParseRegistry("")
	if err != nil {
		t.Fatalf("ParseRegistry(\"\") error = %v", err)
	}
	if r.Has("user", RoleFollower) {
		t.Error("empty registry should not grant roles")
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Declare("user", RoleFollower, RoleLiker); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	if err := r.Declare("post", RoleLikeable, RoleFollowable); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	user := r.Resolve(Ref{Type: "user", ID: "alice"})
	post := r.Resolve(Ref{Type: "post", ID: "1"})

	if user.EntityType() != "user" || user.EntityID() != "alice" {
		t.Errorf("Resolve() = %v:%v, want user:alice", user.EntityType(), user.EntityID())
	}
	if !IsFollower(user) || !IsLiker(user) {
		t.Error("resolved user should be follower and liker")
	}
	if IsFollowable(user) {
		t.Error("resolved user should not be followable")
	}
	if !IsLikeable(post) || !IsFollowable(post) {
		t.Error("resolved post should be likeable and followable")
	}
	if IsFollower(post) {
		t.Error("resolved post should not be a follower")
	}
}

func TestRegistry_DeclareErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.Declare("", RoleFollower); err == nil {
		t.Error("Declare with empty type should fail")
	}
	if err := r.Declare("user", Role("admin")); err == nil {
		t.Error("Declare with unknown role should fail")
	}
}
