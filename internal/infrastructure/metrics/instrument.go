package metrics

import (
	"context"
	"time"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
)

// Operation labels
const (
	OpCreate         = "create"
	OpDelete         = "delete"
	OpExists         = "exists"
	OpRead           = "read"
	OpCount          = "count"
	OpDeleteByEntity = "delete_by_entity"
)

// recorder feeds one call into the collector and, when set, the exporter
type recorder struct {
	collector *Collector
	exporter  *PrometheusExporter
}

func (r recorder) observe(operation, kind string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	key := Key(operation, kind)

	r.collector.RecordOperation(key)
	r.collector.RecordDuration(key, duration)
	if r.exporter != nil {
		r.exporter.RecordOperation(operation, kind)
		r.exporter.RecordDuration(operation, kind, duration)
	}

	if err != nil {
		r.collector.RecordError(key)
		if r.exporter != nil {
			r.exporter.RecordError(operation, kind)
		}
	}
}

type instrumentedRelationships struct {
	next repositories.RelationshipRepository
	recorder
}

// InstrumentRelationships wraps repo so every call is counted and timed.
// exporter may be nil.
func InstrumentRelationships(repo repositories.RelationshipRepository, collector *Collector, exporter *PrometheusExporter) repositories.RelationshipRepository {
	return &instrumentedRelationships{
		next:     repo,
		recorder: recorder{collector: collector, exporter: exporter},
	}
}

func filterKind(filter *repositories.RelationshipFilter) string {
	if filter == nil || filter.Kind == "" {
		return "any"
	}
	return string(filter.Kind)
}

func (r *instrumentedRelationships) Create(ctx context.Context, rel *entities.Relationship) error {
	start := time.Now()
	err := r.next.Create(ctx, rel)
	r.observe(OpCreate, string(rel.Kind), start, err)
	return err
}

func (r *instrumentedRelationships) Delete(ctx context.Context, rel *entities.Relationship) (bool, error) {
	start := time.Now()
	deleted, err := r.next.Delete(ctx, rel)
	r.observe(OpDelete, string(rel.Kind), start, err)
	return deleted, err
}

func (r *instrumentedRelationships) Exists(ctx context.Context, rel *entities.Relationship) (bool, error) {
	start := time.Now()
	exists, err := r.next.Exists(ctx, rel)
	r.observe(OpExists, string(rel.Kind), start, err)
	return exists, err
}

func (r *instrumentedRelationships) Read(ctx context.Context, filter *repositories.RelationshipFilter, opts *repositories.ListOptions) ([]*entities.Relationship, error) {
	start := time.Now()
	rels, err := r.next.Read(ctx, filter, opts)
	r.observe(OpRead, filterKind(filter), start, err)
	return rels, err
}

func (r *instrumentedRelationships) Count(ctx context.Context, filter *repositories.RelationshipFilter) (int64, error) {
	start := time.Now()
	n, err := r.next.Count(ctx, filter)
	r.observe(OpCount, filterKind(filter), start, err)
	return n, err
}

func (r *instrumentedRelationships) DeleteByEntity(ctx context.Context, kind entities.Kind, ref entities.Ref) (int64, error) {
	start := time.Now()
	n, err := r.next.DeleteByEntity(ctx, kind, ref)
	r.observe(OpDeleteByEntity, string(kind), start, err)
	return n, err
}

type instrumentedMentions struct {
	next repositories.MentionRepository
	recorder
}

// InstrumentMentions wraps repo so every call is counted and timed under kind "mention".
func InstrumentMentions(repo repositories.MentionRepository, collector *Collector, exporter *PrometheusExporter) repositories.MentionRepository {
	return &instrumentedMentions{
		next:     repo,
		recorder: recorder{collector: collector, exporter: exporter},
	}
}

func (r *instrumentedMentions) Create(ctx context.Context, mention *entities.Mention) error {
	start := time.Now()
	err := r.next.Create(ctx, mention)
	r.observe(OpCreate, string(entities.KindMention), start, err)
	return err
}

func (r *instrumentedMentions) Read(ctx context.Context, filter *repositories.MentionFilter, opts *repositories.ListOptions) ([]*entities.Mention, error) {
	start := time.Now()
	mentions, err := r.next.Read(ctx, filter, opts)
	r.observe(OpRead, string(entities.KindMention), start, err)
	return mentions, err
}
