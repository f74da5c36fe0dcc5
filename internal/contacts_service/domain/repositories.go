package domain

import "context"

// ContactRepository defines the interface for managing Contact data.
// Implementations must return copies, never the stored records themselves.
type ContactRepository interface {
	// Create assigns the next identifier to draft and stores it.
	Create(ctx context.Context, draft ContactDraft) (*Contact, error)
	// GetByID returns ErrNotFound when id is unknown.
	GetByID(ctx context.Context, id int64) (*Contact, error)
	// List returns every contact in insertion order.
	List(ctx context.Context) ([]*Contact, error)
	ListByCategory(ctx context.Context, category Category) ([]*Contact, error)
	// SearchByName matches a case-insensitive substring of the stored name.
	SearchByName(ctx context.Context, query string) ([]*Contact, error)
	// Update applies patch atomically and returns ErrNotFound when id is unknown.
	Update(ctx context.Context, id int64, patch ContactPatch) (*Contact, error)
	// Delete reports whether a contact was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}
