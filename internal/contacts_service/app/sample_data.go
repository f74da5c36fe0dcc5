package app

import (
	"context"
	"fmt"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

var sampleContacts = []domain.ContactInput{
	{
		Name: "João Arantes",
		Phones: []domain.PhoneInput{
			{Number: "(19) 99230-7095", Type: "celular"},
			{Number: "(19) 3324-8418", Type: "fixo"},
		},
		Category: "familiar",
	},
	{
		Name: "Arantes LTDA",
		Phones: []domain.PhoneInput{
			{Number: "(19) 99330-7093", Type: "comercial"},
			{Number: "(19) 3424-8414", Type: "comercial"},
		},
		Category: "comercial",
	},
	{
		Name:     "Vera Bagnara",
		Phones:   []domain.PhoneInput{{Number: "(19) 99330-7092", Type: "celular"}},
		Category: "pessoal",
	},
	{
		Name: "Carlos Silva",
		Phones: []domain.PhoneInput{
			{Number: "(19) 99440-7094", Type: "celular"},
			{Number: "(19) 3524-8415", Type: "fixo"},
		},
		Category: "familiar",
	},
	{
		Name:     "Bagnara Brasil",
		Phones:   []domain.PhoneInput{{Number: "(19) 99554-7095", Type: "comercial"}},
		Category: "comercial",
	},
	{
		Name:     "Andreize Cristina",
		Phones:   []domain.PhoneInput{{Number: "(19) 99556-7096", Type: "celular"}},
		Category: "pessoal",
	},
}

// SeedSampleContacts creates the demo contacts through CreateContact, so they
// are normalized like any other input. It returns how many were created.
func (a *Application) SeedSampleContacts(ctx context.Context) (int, error) {
	for i, in := range sampleContacts {
		if _, err := a.CreateContact(ctx, in); err != nil {
			return i, fmt.Errorf("seed sample contact %q: %w", in.Name, err)
		}
	}
	a.logger.InfoContext(ctx, "Sample contacts loaded", "count", len(sampleContacts))
	return len(sampleContacts), nil
}
