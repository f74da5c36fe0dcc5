package domain

import (
	"time"

	"github.com/google/uuid"
)

// NATS subjects for contact lifecycle events.
const (
	SubjectContactCreated = "contacts.created"
	SubjectContactUpdated = "contacts.updated"
	SubjectContactDeleted = "contacts.deleted"
)

// ContactEvent is published after a contact was created, updated or deleted.
// Contact is nil for deletions.
type ContactEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	ContactID  int64     `json:"contact_id"`
	Contact    *Contact  `json:"contact,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewContactEvent stamps a new event with a random id.
func NewContactEvent(subject string, contactID int64, contact *Contact, at time.Time) ContactEvent {
	return ContactEvent{
		EventID:    uuid.New(),
		EventType:  subject,
		ContactID:  contactID,
		Contact:    contact.Clone(),
		OccurredAt: at.UTC(),
	}
}
