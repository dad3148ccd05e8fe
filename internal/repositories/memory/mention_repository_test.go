package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/google/uuid"
)

func TestMentionRepository(t *testing.T) {
	repo := NewMentionRepository()
	ctx := context.Background()

	comment := entities.Ref{Type: "comment", ID: "1"}
	bob := entities.Ref{Type: "user", ID: "bob"}
	carol := entities.Ref{Type: "user", ID: "carol"}

	first := entities.NewMention(comment, bob)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID == uuid.Nil {
		t.Error("Create() should assign an ID")
	}

	if err := repo.Create(ctx, entities.NewMention(comment, bob)); !errors.Is(err, repositories.ErrDuplicateMention) {
		t.Fatalf("duplicate Create() error = %v, want ErrDuplicateMention", err)
	}

	if err := repo.Create(ctx, entities.NewMention(comment, carol)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, &entities.Mention{}); err == nil {
		t.Error("Create() with empty mention should fail")
	}

	all, err := repo.Read(ctx, &repositories.MentionFilter{MentionerType: "comment", MentionerID: "1"}, nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(all) != 2 || all[0].MentionableID != "carol" || all[1].MentionableID != "bob" {
		t.Errorf("Read() = %v, want carol then bob", all)
	}

	forBob, err := repo.Read(ctx, &repositories.MentionFilter{MentionableType: "user", MentionableID: "bob"}, &repositories.ListOptions{Limit: 10})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(forBob) != 1 || forBob[0].ID != first.ID {
		t.Errorf("Read(bob) = %v, want the first mention", forBob)
	}
}
