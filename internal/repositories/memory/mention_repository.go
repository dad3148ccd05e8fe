package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/google/uuid"
)

type mentionKey struct {
	mentionerType   string
	mentionerID     string
	mentionableType string
	mentionableID   string
}

// MentionRepository implements repositories.MentionRepository in process memory
type MentionRepository struct {
	mu    sync.RWMutex
	keys  map[mentionKey]bool
	order []entities.Mention // insertion order
	now   func() time.Time
}

var _ repositories.MentionRepository = (*MentionRepository)(nil)

// NewMentionRepository creates an empty in-memory mention repository
func NewMentionRepository() *MentionRepository {
	return &MentionRepository{
		keys: make(map[mentionKey]bool),
		now:  time.Now,
	}
}

// Create stores a mention unless the same pair was already recorded
func (r *MentionRepository) Create(ctx context.Context, mention *entities.Mention) error {
	if err := mention.Validate(); err != nil {
		return fmt.Errorf("invalid mention: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := mentionKey{mention.MentionerType, mention.MentionerID, mention.MentionableType, mention.MentionableID}
	if r.keys[key] {
		return fmt.Errorf("%w: %s", repositories.ErrDuplicateMention, mention)
	}

	if mention.ID == uuid.Nil {
		mention.ID = uuid.New()
	}
	mention.CreatedAt = r.now()
	r.keys[key] = true
	r.order = append(r.order, *mention)
	return nil
}

// Read returns the mentions matching the filter
func (r *MentionRepository) Read(ctx context.Context, filter *repositories.MentionFilter, opts *repositories.ListOptions) ([]*entities.Mention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]*entities.Mention, 0)
	for i := range r.order {
		m := r.order[i]
		if matchMention(&m, filter) {
			matched = append(matched, &m)
		}
	}
	r.mu.RUnlock()

	if opts == nil || opts.Order == repositories.OrderNewest {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	return paginate(matched, opts), nil
}

func matchMention(m *entities.Mention, f *repositories.MentionFilter) bool {
	if f == nil {
		return true
	}
	if f.MentionerType != "" && m.MentionerType != f.MentionerType {
		return false
	}
	if f.MentionerID != "" && m.MentionerID != f.MentionerID {
		return false
	}
	if f.MentionableType != "" && m.MentionableType != f.MentionableType {
		return false
	}
	if f.MentionableID != "" && m.MentionableID != f.MentionableID {
		return false
	}
	return true
}
