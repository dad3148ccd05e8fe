package postgres

import (
	"fmt"
	"strings"

	"github.com/asakaida/socialization/internal/repositories"
)

// whereBuilder accumulates "column = $n" conditions for dynamic filters
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) eq(column string, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// paginate appends ORDER BY, LIMIT and OFFSET clauses for opts
func (w *whereBuilder) paginate(opts *repositories.ListOptions) string {
	clause := " ORDER BY created_at DESC, id DESC"
	if opts == nil {
		return clause
	}
	if opts.Order == repositories.OrderOldest {
		clause = " ORDER BY created_at ASC, id ASC"
	}
	if opts.Limit > 0 {
		w.args = append(w.args, opts.Limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(w.args))
	}
	if opts.Offset > 0 {
		w.args = append(w.args, opts.Offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(w.args))
	}
	return clause
}

func relationshipWhere(filter *repositories.RelationshipFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter == nil {
		return w
	}
	w.eq("kind", string(filter.Kind))
	w.eq("subject_type", filter.SubjectType)
	w.eq("subject_id", filter.SubjectID)
	w.eq("object_type", filter.ObjectType)
	w.eq("object_id", filter.ObjectID)
	return w
}

func mentionWhere(filter *repositories.MentionFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter == nil {
		return w
	}
	w.eq("mentioner_type", filter.MentionerType)
	w.eq("mentioner_id", filter.MentionerID)
	w.eq("mentionable_type", filter.MentionableType)
	w.eq("mentionable_id", filter.MentionableID)
	return w
}
