package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

// SearchMinQueryLength is the shortest accepted name search, after trimming.
const SearchMinQueryLength = 2

// EventPublisher delivers serialized contact events. *messagebroker.NATSClient satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Application provides the contact management operations.
type Application struct {
	contactRepo domain.ContactRepository
	publisher   EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewApplication creates a new Application instance. publisher may be nil,
// in which case no events are emitted.
func NewApplication(cRepo domain.ContactRepository, publisher EventPublisher, logger *slog.Logger) *Application {
	return &Application{
		contactRepo: cRepo,
		publisher:   publisher,
		logger:      logger.With("component", "contacts_app"),
		now:         time.Now,
	}
}

// CreateContact normalizes in and stores it under a new identifier.
func (a *Application) CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	draft, err := domain.NewContactDraft(in)
	if err != nil {
		observeOperation("create", err)
		return nil, err
	}

	ct, err := a.contactRepo.Create(ctx, draft)
	observeOperation("create", err)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to create contact", "error", err)
		return nil, fmt.Errorf("create contact: %w", err)
	}
	contactsStoredGauge.Inc()
	a.logger.InfoContext(ctx, "Contact created", "contact_id", ct.ID, "category", ct.Category.String())

	a.publish(ctx, domain.SubjectContactCreated, ct.ID, ct)
	return ct, nil
}

// GetContact returns domain.ErrNotFound when id is unknown.
func (a *Application) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	ct, err := a.contactRepo.GetByID(ctx, id)
	observeOperation("get", err)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// ListContacts returns every contact in insertion order.
func (a *Application) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := a.contactRepo.List(ctx)
	observeOperation("list", err)
	return contacts, err
}

// ListContactsByCategory filters by a category token such as "pessoal". An
// empty result is not an error here.
func (a *Application) ListContactsByCategory(ctx context.Context, token string) ([]*domain.Contact, error) {
	category, err := domain.ParseCategory(token)
	if err != nil {
		observeOperation("list_by_category", err)
		return nil, err
	}
	contacts, err := a.contactRepo.ListByCategory(ctx, category)
	observeOperation("list_by_category", err)
	return contacts, err
}

// SearchContacts matches query as a case-insensitive substring of contact names.
func (a *Application) SearchContacts(ctx context.Context, query string) ([]*domain.Contact, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < SearchMinQueryLength {
		err := &domain.ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("search query must have at least %d characters", SearchMinQueryLength),
		}
		observeOperation("search", err)
		return nil, err
	}
	contacts, err := a.contactRepo.SearchByName(ctx, q)
	observeOperation("search", err)
	return contacts, err
}

// UpdateContact normalizes every supplied field before touching the store,
// so invalid input is reported even for unknown identifiers.
func (a *Application) UpdateContact(ctx context.Context, id int64, in domain.ContactPatchInput) (*domain.Contact, error) {
	patch, err := domain.NewContactPatch(in)
	if err != nil {
		observeOperation("update", err)
		return nil, err
	}

	ct, err := a.contactRepo.Update(ctx, id, patch)
	observeOperation("update", err)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.logger.ErrorContext(ctx, "Failed to update contact", "error", err, "contact_id", id)
		}
		return nil, err
	}
	a.logger.InfoContext(ctx, "Contact updated", "contact_id", id, "empty_patch", patch.IsEmpty())

	a.publish(ctx, domain.SubjectContactUpdated, ct.ID, ct)
	return ct, nil
}

// DeleteContact reports whether the contact existed. Deleting an unknown or
// already deleted identifier is not an error.
func (a *Application) DeleteContact(ctx context.Context, id int64) (bool, error) {
	found, err := a.contactRepo.Delete(ctx, id)
	if err == nil && !found {
		observeOperation("delete", domain.ErrNotFound)
	} else {
		observeOperation("delete", err)
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to delete contact", "error", err, "contact_id", id)
		return false, fmt.Errorf("delete contact %d: %w", id, err)
	}
	if !found {
		return false, nil
	}
	contactsStoredGauge.Dec()
	a.logger.InfoContext(ctx, "Contact deleted", "contact_id", id)

	a.publish(ctx, domain.SubjectContactDeleted, id, nil)
	return true, nil
}

// Statistics scans every contact and aggregates the counters.
func (a *Application) Statistics(ctx context.Context) (*domain.Statistics, error) {
	contacts, err := a.contactRepo.List(ctx)
	observeOperation("statistics", err)
	if err != nil {
		return nil, fmt.Errorf("list contacts for statistics: %w", err)
	}
	stats := domain.ComputeStatistics(contacts, a.now().UTC())
	return &stats, nil
}

// Export returns a snapshot of every contact.
func (a *Application) Export(ctx context.Context) (*domain.Export, error) {
	contacts, err := a.contactRepo.List(ctx)
	observeOperation("export", err)
	if err != nil {
		return nil, fmt.Errorf("list contacts for export: %w", err)
	}
	return &domain.Export{
		ExportedAt:    a.now().UTC(),
		TotalContacts: len(contacts),
		Contacts:      contacts,
	}, nil
}

// CountContacts returns the number of stored contacts.
func (a *Application) CountContacts(ctx context.Context) (int, error) {
	return a.contactRepo.Count(ctx)
}

// publish never fails the calling operation; delivery problems are only logged.
func (a *Application) publish(ctx context.Context, subject string, contactID int64, ct *domain.Contact) {
	if a.publisher == nil {
		return
	}
	event := domain.NewContactEvent(subject, contactID, ct, a.now())
	data, err := json.Marshal(event)
	if err != nil {
		eventsPublishedCounter.WithLabelValues(subject, "error").Inc()
		a.logger.ErrorContext(ctx, "Failed to marshal contact event", "error", err, "subject", subject)
		return
	}
	if err := a.publisher.Publish(ctx, subject, data); err != nil {
		eventsPublishedCounter.WithLabelValues(subject, "error").Inc()
		a.logger.WarnContext(ctx, "Failed to publish contact event", "error", err, "subject", subject, "contact_id", contactID)
		return
	}
	eventsPublishedCounter.WithLabelValues(subject, "success").Inc()
}
