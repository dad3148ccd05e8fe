package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/asakaida/socialization/internal/repositories/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func follow(subject, object string) *entities.Relationship {
	return entities.NewRelationship(entities.KindFollow,
		entities.Ref{Type: "user", ID: subject},
		entities.Ref{Type: "user", ID: object})
}

func TestInstrumentRelationships_CountsOperations(t *testing.T) {
	ctx := context.Background()
	collector := NewCollector()
	repo := InstrumentRelationships(memory.NewRelationshipRepository(), collector, nil)

	if err := repo.Create(ctx, follow("a", "b")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, follow("a", "b")); !errors.Is(err, repositories.ErrDuplicateRelationship) {
		t.Fatalf("second Create() error = %v, want ErrDuplicateRelationship", err)
	}
	if _, err := repo.Exists(ctx, follow("a", "b")); err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if _, err := repo.Read(ctx, nil, nil); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	snapshot := collector.Snapshot()
	tests := []struct {
		key        string
		wantCount  uint64
		wantErrors uint64
	}{
		{Key(OpCreate, "follow"), 2, 1},
		{Key(OpExists, "follow"), 1, 0},
		{Key(OpRead, "any"), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := snapshot.OperationCounts[tt.key]; got != tt.wantCount {
				t.Errorf("OperationCounts = %d, want %d", got, tt.wantCount)
			}
			if got := snapshot.ErrorCounts[tt.key]; got != tt.wantErrors {
				t.Errorf("ErrorCounts = %d, want %d", got, tt.wantErrors)
			}
		})
	}
}

func TestInstrumentRelationships_Prometheus(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	exporter := NewPrometheusExporter(reg, "test")
	repo := InstrumentRelationships(memory.NewRelationshipRepository(), NewCollector(), exporter)

	for _, id := range []string{"b", "c"} {
		if err := repo.Create(ctx, follow("a", id)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := repo.DeleteByEntity(ctx, entities.KindFollow, entities.Ref{Type: "user"}); err == nil {
		t.Fatal("DeleteByEntity() with empty ID expected error")
	}

	if got := testutil.ToFloat64(exporter.operations.WithLabelValues(OpCreate, "follow")); got != 2 {
		t.Errorf("create operations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(exporter.errors.WithLabelValues(OpDeleteByEntity, "follow")); got != 1 {
		t.Errorf("delete_by_entity errors = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `test_relationship_operations_total{kind="follow",operation="create"} 2`) {
		t.Errorf("metrics output missing create counter:\n%s", body)
	}
}

func TestInstrumentMentions(t *testing.T) {
	ctx := context.Background()
	collector := NewCollector()
	repo := InstrumentMentions(memory.NewMentionRepository(), collector, NewPrometheusExporter(prometheus.NewRegistry(), "test"))

	m := entities.NewMention(entities.Ref{Type: "comment", ID: "1"}, entities.Ref{Type: "user", ID: "2"})
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Read(ctx, nil, nil); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	snapshot := collector.Snapshot()
	if got := snapshot.OperationCounts[Key(OpCreate, "mention")]; got != 1 {
		t.Errorf("mention creates = %d, want 1", got)
	}
	if got := snapshot.OperationCounts[Key(OpRead, "mention")]; got != 1 {
		t.Errorf("mention reads = %d, want 1", got)
	}
}
