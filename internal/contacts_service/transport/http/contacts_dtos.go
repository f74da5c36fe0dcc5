package http

import (
	"time"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

// PhoneDTO is one phone entry in requests and responses.
type PhoneDTO struct {
	Number string `json:"number" validate:"required"`
	Type   string `json:"type" validate:"required,phone_kind"`
}

// CreateContactRequestDTO is used for creating a new contact.
type CreateContactRequestDTO struct {
	Name     string     `json:"name" validate:"required"`
	Phones   []PhoneDTO `json:"phones" validate:"required,min=1,max=5,dive"`
	Category string     `json:"category" validate:"required,contact_category"`
}

// UpdateContactRequestDTO is used for a partial update. Omitted (or null)
// fields keep their stored value.
type UpdateContactRequestDTO struct {
	Name     *string    `json:"name,omitempty"`
	Phones   []PhoneDTO `json:"phones,omitempty" validate:"omitempty,min=1,max=5,dive"`
	Category *string    `json:"category,omitempty" validate:"omitempty,contact_category"`
}

// ContactResponseDTO represents a contact in HTTP responses.
type ContactResponseDTO struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Phones   []PhoneDTO `json:"phones"`
	Category string     `json:"category"`
}

// StatisticsResponseDTO keeps the field names the address book clients already consume.
type StatisticsResponseDTO struct {
	TotalContacts         int            `json:"total_contatos"`
	ByCategory            map[string]int `json:"por_categoria"`
	ByPhoneType           map[string]int `json:"tipos_telefone"`
	MultiplePhoneContacts int            `json:"contatos_multiplos_telefones"`
	LastUpdated           string         `json:"ultima_atualizacao"`
}

// ExportResponseDTO is the backup document.
type ExportResponseDTO struct {
	ExportTimestamp string               `json:"export_timestamp"`
	TotalContacts   int                  `json:"total_contacts"`
	Contacts        []ContactResponseDTO `json:"contacts"`
}

// GenericErrorResponse for API errors
type GenericErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func phoneInputs(dtos []PhoneDTO) []domain.PhoneInput {
	if dtos == nil {
		return nil
	}
	phones := make([]domain.PhoneInput, 0, len(dtos))
	for _, p := range dtos {
		phones = append(phones, domain.PhoneInput{Number: p.Number, Type: p.Type})
	}
	return phones
}

func (dto CreateContactRequestDTO) toInput() domain.ContactInput {
	return domain.ContactInput{
		Name:     dto.Name,
		Phones:   phoneInputs(dto.Phones),
		Category: dto.Category,
	}
}

func (dto UpdateContactRequestDTO) toInput() domain.ContactPatchInput {
	return domain.ContactPatchInput{
		Name:     dto.Name,
		Phones:   phoneInputs(dto.Phones),
		Category: dto.Category,
	}
}

func contactToResponseDTO(ct *domain.Contact) ContactResponseDTO {
	if ct == nil {
		return ContactResponseDTO{}
	}
	phones := make([]PhoneDTO, 0, len(ct.Phones))
	for _, p := range ct.Phones {
		phones = append(phones, PhoneDTO{Number: p.Number, Type: p.Kind.String()})
	}
	return ContactResponseDTO{
		ID:       ct.ID,
		Name:     ct.Name,
		Phones:   phones,
		Category: ct.Category.String(),
	}
}

func contactsToResponseDTOs(contacts []*domain.Contact) []ContactResponseDTO {
	out := make([]ContactResponseDTO, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, contactToResponseDTO(ct))
	}
	return out
}

func statisticsToResponseDTO(stats *domain.Statistics) StatisticsResponseDTO {
	byCategory := make(map[string]int, len(stats.ByCategory))
	for c, n := range stats.ByCategory {
		byCategory[c.String()] = n
	}
	byPhoneType := make(map[string]int, len(stats.ByPhoneKind))
	for k, n := range stats.ByPhoneKind {
		byPhoneType[k.String()] = n
	}
	return StatisticsResponseDTO{
		TotalContacts:         stats.TotalContacts,
		ByCategory:            byCategory,
		ByPhoneType:           byPhoneType,
		MultiplePhoneContacts: stats.MultiplePhoneContacts,
		LastUpdated:           formatTimestamp(stats.ComputedAt),
	}
}

func exportToResponseDTO(export *domain.Export) ExportResponseDTO {
	return ExportResponseDTO{
		ExportTimestamp: formatTimestamp(export.ExportedAt),
		TotalContacts:   export.TotalContacts,
		Contacts:        contactsToResponseDTOs(export.Contacts),
	}
}
