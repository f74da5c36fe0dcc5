package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

// MemContactRepository keeps contacts in a map keyed by identifier. One
// RWMutex guards both the map and the identifier counter.
type MemContactRepository struct {
	mu       sync.RWMutex
	contacts map[int64]*domain.Contact
	nextID   int64
	logger   *slog.Logger
}

func NewMemContactRepository(logger *slog.Logger) *MemContactRepository {
	return &MemContactRepository{
		contacts: make(map[int64]*domain.Contact),
		nextID:   1,
		logger:   logger,
	}
}

func (r *MemContactRepository) Create(ctx context.Context, draft domain.ContactDraft) (*domain.Contact, error) {
	r.mu.Lock()
	ct := &domain.Contact{
		ID:       r.nextID,
		Name:     draft.Name,
		Phones:   append([]domain.Phone(nil), draft.Phones...),
		Category: draft.Category,
	}
	r.contacts[ct.ID] = ct
	r.nextID++
	out := ct.Clone()
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "Contact stored", "contact_id", out.ID)
	return out, nil
}

func (r *MemContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	r.mu.RLock()
	ct, ok := r.contacts[id]
	if ok {
		ct = ct.Clone()
	}
	r.mu.RUnlock()

	if !ok {
		r.logger.WarnContext(ctx, "Contact not found", "contact_id", id)
		return nil, domain.ErrNotFound
	}
	return ct, nil
}

func (r *MemContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	return r.filter(func(*domain.Contact) bool { return true }), nil
}

func (r *MemContactRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Contact, error) {
	return r.filter(func(ct *domain.Contact) bool { return ct.Category == category }), nil
}

func (r *MemContactRepository) SearchByName(ctx context.Context, query string) ([]*domain.Contact, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return r.filter(func(ct *domain.Contact) bool {
		return strings.Contains(strings.ToLower(ct.Name), q)
	}), nil
}

func (r *MemContactRepository) Update(ctx context.Context, id int64, patch domain.ContactPatch) (*domain.Contact, error) {
	r.mu.Lock()
	ct, ok := r.contacts[id]
	if ok {
		patch.ApplyTo(ct)
		ct = ct.Clone()
	}
	r.mu.Unlock()

	if !ok {
		r.logger.WarnContext(ctx, "Contact not found for update", "contact_id", id)
		return nil, domain.ErrNotFound
	}
	r.logger.DebugContext(ctx, "Contact updated", "contact_id", id)
	return ct, nil
}

func (r *MemContactRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	_, ok := r.contacts[id]
	delete(r.contacts, id)
	r.mu.Unlock()

	if !ok {
		r.logger.WarnContext(ctx, "Contact not found for delete", "contact_id", id)
	}
	return ok, nil
}

func (r *MemContactRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contacts), nil
}

// filter returns copies of the matching contacts ordered by identifier,
// which is also the order they were created in.
func (r *MemContactRepository) filter(keep func(*domain.Contact) bool) []*domain.Contact {
	r.mu.RLock()
	out := make([]*domain.Contact, 0, len(r.contacts))
	for _, ct := range r.contacts {
		if keep(ct) {
			out = append(out, ct.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
