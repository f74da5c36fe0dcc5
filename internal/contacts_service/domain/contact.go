package domain

import (
	"errors"
	"fmt"
)

const (
	MinPhonesPerContact = 1
	MaxPhonesPerContact = 5
)

// Phone is one normalized phone entry of a contact.
type Phone struct {
	Number string    `json:"number"`
	Kind   PhoneKind `json:"type"`
}

// Contact is a stored address book record.
type Contact struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Phones   []Phone  `json:"phones"`
	Category Category `json:"category"`
}

// Clone returns a deep copy so stored records are never shared with callers.
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Phones = append([]Phone(nil), c.Phones...)
	return &cp
}

// PhoneInput is a phone entry as received from a caller, before normalization.
type PhoneInput struct {
	Number string
	Type   string
}

// ContactInput holds the raw fields of a contact to be created.
type ContactInput struct {
	Name     string
	Phones   []PhoneInput
	Category string
}

// ContactDraft is a validated, normalized contact without an identifier yet.
type ContactDraft struct {
	Name     string
	Phones   []Phone
	Category Category
}

// NewContactDraft validates and normalizes every field of in.
func NewContactDraft(in ContactInput) (ContactDraft, error) {
	name, err := NormalizeName(in.Name)
	if err != nil {
		return ContactDraft{}, err
	}
	phones, err := NormalizePhones(in.Phones)
	if err != nil {
		return ContactDraft{}, err
	}
	category, err := ParseCategory(in.Category)
	if err != nil {
		return ContactDraft{}, err
	}
	return ContactDraft{Name: name, Phones: phones, Category: category}, nil
}

// NormalizePhones validates the list size and normalizes each entry.
func NormalizePhones(in []PhoneInput) ([]Phone, error) {
	if len(in) < MinPhonesPerContact || len(in) > MaxPhonesPerContact {
		return nil, newValidationError("phones",
			fmt.Sprintf("a contact must have between %d and %d phones", MinPhonesPerContact, MaxPhonesPerContact))
	}
	phones := make([]Phone, 0, len(in))
	for i, p := range in {
		number, err := NormalizePhoneNumber(p.Number)
		if err != nil {
			return nil, prefixField(err, fmt.Sprintf("phones[%d]", i))
		}
		kind, err := ParsePhoneKind(p.Type)
		if err != nil {
			return nil, prefixField(err, fmt.Sprintf("phones[%d]", i))
		}
		phones = append(phones, Phone{Number: number, Kind: kind})
	}
	return phones, nil
}

func prefixField(err error, prefix string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return newValidationError(prefix+"."+ve.Field, ve.Reason)
	}
	return err
}

// ContactPatchInput carries the raw fields of a partial update. A nil field
// (or a nil Phones slice) was not supplied by the caller.
type ContactPatchInput struct {
	Name     *string
	Phones   []PhoneInput
	Category *string
}

// ContactPatch is a normalized partial update. Only non-nil fields are applied.
type ContactPatch struct {
	Name     *string
	Phones   []Phone
	Category *Category
}

// NewContactPatch normalizes every supplied field of in. A supplied but
// empty phone list is rejected like on create.
func NewContactPatch(in ContactPatchInput) (ContactPatch, error) {
	var patch ContactPatch
	if in.Name != nil {
		name, err := NormalizeName(*in.Name)
		if err != nil {
			return ContactPatch{}, err
		}
		patch.Name = &name
	}
	if in.Phones != nil {
		phones, err := NormalizePhones(in.Phones)
		if err != nil {
			return ContactPatch{}, err
		}
		patch.Phones = phones
	}
	if in.Category != nil {
		category, err := ParseCategory(*in.Category)
		if err != nil {
			return ContactPatch{}, err
		}
		patch.Category = &category
	}
	return patch, nil
}

// IsEmpty reports whether the patch carries no field at all.
func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.Phones == nil && p.Category == nil
}

// ApplyTo overwrites the fields of c that are present in the patch.
func (p ContactPatch) ApplyTo(c *Contact) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phones != nil {
		c.Phones = append([]Phone(nil), p.Phones...)
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
}
