package social

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/asakaida/socialization/internal/repositories/memory"
)

func TestRelationshipStore_CreateExistsRemove(t *testing.T) {
	ctx := context.Background()
	store := NewRelationshipStore(entities.KindFollow, memory.NewRelationshipRepository())
	alice, bob := &user{id: "alice"}, &user{id: "bob"}

	created, err := store.Create(ctx, alice, bob)
	if err != nil || !created {
		t.Fatalf("Create() = %v, %v, want true, nil", created, err)
	}

	exists, err := store.Exists(ctx, alice, bob)
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v, want true, nil", exists, err)
	}

	// Direction matters
	exists, err = store.Exists(ctx, bob, alice)
	if err != nil || exists {
		t.Errorf("Exists(reverse) = %v, %v, want false, nil", exists, err)
	}

	removed, err := store.Remove(ctx, alice, bob)
	if err != nil || !removed {
		t.Fatalf("Remove() = %v, %v, want true, nil", removed, err)
	}

	removed, err = store.Remove(ctx, alice, bob)
	if err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
	if removed {
		t.Error("second Remove() = true, want false")
	}
}

func TestRelationshipStore_Duplicate(t *testing.T) {
	ctx := context.Background()
	store := NewRelationshipStore(entities.KindLike, memory.NewRelationshipRepository())
	alice, p := &user{id: "alice"}, &post{id: "1"}

	if _, err := store.Create(ctx, alice, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	created, err := store.Create(ctx, alice, p)
	if !errors.Is(err, repositories.ErrDuplicateRelationship) {
		t.Fatalf("second Create() error = %v, want ErrDuplicateRelationship", err)
	}
	if created {
		t.Error("second Create() = true, want false")
	}
}

func TestRelationshipStore_KindsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRelationshipRepository()
	follows := NewRelationshipStore(entities.KindFollow, repo)
	likes := NewRelationshipStore(entities.KindLike, repo)
	alice, bob := &user{id: "alice"}, &user{id: "bob"}

	if _, err := follows.Create(ctx, alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exists, err := likes.Exists(ctx, alice, bob)
	if err != nil || exists {
		t.Errorf("likes.Exists() = %v, %v, want false, nil", exists, err)
	}
}

func TestRelationshipStore_Listing(t *testing.T) {
	ctx := context.Background()
	store := NewRelationshipStore(entities.KindLike, memory.NewRelationshipRepository())
	alice := &user{id: "alice"}

	for _, target := range []entities.Entity{&post{id: "1"}, &user{id: "bob"}, &post{id: "2"}, &post{id: "3"}} {
		if _, err := store.Create(ctx, alice, target); err != nil {
			t.Fatalf("Create(%s) error = %v", entities.RefOf(target), err)
		}
	}
	if _, err := store.Create(ctx, &user{id: "carol"}, &post{id: "2"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name       string
		objectType string
		opts       *ListOptions
		want       []string
	}{
		{name: "newest first by default", objectType: "post", opts: nil, want: []string{"3", "2", "1"}},
		{name: "oldest first", objectType: "post", opts: &ListOptions{Order: repositories.OrderOldest}, want: []string{"1", "2", "3"}},
		{name: "limit and offset", objectType: "post", opts: &ListOptions{Limit: 1, Offset: 1}, want: []string{"2"}},
		{name: "other type", objectType: "user", opts: nil, want: []string{"bob"}},
		{name: "no matches", objectType: "comment", opts: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListObjectIDs(ctx, alice, tt.objectType, tt.opts)
			if err != nil {
				t.Fatalf("ListObjectIDs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListObjectIDs() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("subjects", func(t *testing.T) {
		got, err := store.ListSubjectIDs(ctx, &post{id: "2"}, "user", &ListOptions{Order: repositories.OrderOldest})
		if err != nil {
			t.Fatalf("ListSubjectIDs() error = %v", err)
		}
		if want := []string{"alice", "carol"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ListSubjectIDs() = %v, want %v", got, want)
		}
	})

	t.Run("counts", func(t *testing.T) {
		n, err := store.CountObjects(ctx, alice, "post")
		if err != nil || n != 3 {
			t.Errorf("CountObjects() = %d, %v, want 3", n, err)
		}
		n, err = store.CountSubjects(ctx, &post{id: "2"}, "user")
		if err != nil || n != 2 {
			t.Errorf("CountSubjects() = %d, %v, want 2", n, err)
		}
	})

	t.Run("invalid subject", func(t *testing.T) {
		if _, err := store.ListObjectIDs(ctx, nil, "post", nil); err == nil {
			t.Error("ListObjectIDs(nil) expected error")
		}
		if _, err := store.CountSubjects(ctx, &post{}, "user"); err == nil {
			t.Error("CountSubjects(empty ID) expected error")
		}
	})
}

func TestRelationshipStore_RemoveAll(t *testing.T) {
	ctx := context.Background()
	store := NewRelationshipStore(entities.KindFollow, memory.NewRelationshipRepository())
	alice, bob, carol := &user{id: "alice"}, &user{id: "bob"}, &user{id: "carol"}

	for _, pair := range [][2]*user{{alice, bob}, {bob, alice}, {bob, carol}, {carol, alice}} {
		if _, err := store.Create(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	n, err := store.RemoveAll(ctx, bob)
	if err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RemoveAll() = %d, want 3", n)
	}

	exists, _ := store.Exists(ctx, carol, alice)
	if !exists {
		t.Error("relationship not involving bob was removed")
	}
}

func TestListObjects_Hydration(t *testing.T) {
	ctx := context.Background()
	store := NewRelationshipStore(entities.KindLike, memory.NewRelationshipRepository())
	alice := &user{id: "alice"}
	posts := map[string]*post{"1": {id: "1"}, "2": {id: "2"}, "3": {id: "3"}}

	for _, id := range []string{"1", "2", "3"} {
		if _, err := store.Create(ctx, alice, posts[id]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	loader := LoaderFunc[*post](func(ctx context.Context, ids []string) ([]*post, error) {
		result := make([]*post, 0, len(ids))
		for _, id := range ids {
			if p, ok := posts[id]; ok {
				result = append(result, p)
			}
		}
		return result, nil
	})

	got, err := ListObjects[*post](ctx, store, alice, "post", nil, loader)
	if err != nil {
		t.Fatalf("ListObjects() error = %v", err)
	}
	if len(got) != 3 || got[0].id != "3" || got[1].id != "2" || got[2].id != "1" {
		t.Errorf("ListObjects() returned %v, want posts 3, 2, 1", got)
	}

	subjects, err := ListSubjects[*post](ctx, store, posts["1"], "user", nil, LoaderFunc[*post](func(ctx context.Context, ids []string) ([]*post, error) {
		return nil, errors.New("boom")
	}))
	if err == nil || subjects != nil {
		t.Errorf("ListSubjects() = %v, %v, want loader error", subjects, err)
	}
}

func TestListObjects_SkipsLoaderWhenEmpty(t *testing.T) {
	store := NewRelationshipStore(entities.KindLike, memory.NewRelationshipRepository())
	called := false
	loader := LoaderFunc[*post](func(ctx context.Context, ids []string) ([]*post, error) {
		called = true
		return nil, nil
	})

	got, err := ListObjects[*post](context.Background(), store, &user{id: "alice"}, "post", nil, loader)
	if err != nil {
		t.Fatalf("ListObjects() error = %v", err)
	}
	if called {
		t.Error("loader called for an empty ID list")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListObjects() = %v, want empty non-nil slice", got)
	}
}

func TestRelationshipStore_PropagatesStorageErrors(t *testing.T) {
	storageErr := errors.New("connection reset")
	repo := &mockRelationshipRepository{
		createFunc: func(ctx context.Context, rel *entities.Relationship) error { return storageErr },
		deleteFunc: func(ctx context.Context, rel *entities.Relationship) (bool, error) { return false, storageErr },
	}
	store := NewRelationshipStore(entities.KindFollow, repo)
	ctx := context.Background()

	if _, err := store.Create(ctx, &user{id: "a"}, &user{id: "b"}); !errors.Is(err, storageErr) {
		t.Errorf("Create() error = %v, want %v", err, storageErr)
	}
	if _, err := store.Remove(ctx, &user{id: "a"}, &user{id: "b"}); !errors.Is(err, storageErr) {
		t.Errorf("Remove() error = %v, want %v", err, storageErr)
	}
}
