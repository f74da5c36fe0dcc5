package domain

import "fmt"

// Category classifies a contact's relationship to the owner of the address book.
type Category uint8

const (
	CategoryFamily Category = iota + 1
	CategoryPersonal
	CategoryCommercial
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFamily, CategoryPersonal, CategoryCommercial}

var categoryTokens = map[Category]string{
	CategoryFamily:     "familiar",
	CategoryPersonal:   "pessoal",
	CategoryCommercial: "comercial",
}

var categoriesByToken = map[string]Category{
	"familiar":  CategoryFamily,
	"pessoal":   CategoryPersonal,
	"comercial": CategoryCommercial,
}

// ParseCategory decodes a wire token such as "familiar".
func ParseCategory(token string) (Category, error) {
	c, ok := categoriesByToken[token]
	if !ok {
		return 0, newValidationError("category", fmt.Sprintf("unknown category %q", token))
	}
	return c, nil
}

// String returns the wire token, or an empty string for the zero value.
func (c Category) String() string {
	return categoryTokens[c]
}

func (c Category) Valid() bool {
	_, ok := categoryTokens[c]
	return ok
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category value %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// PhoneKind classifies a single phone number.
type PhoneKind uint8

const (
	PhoneKindMobile PhoneKind = iota + 1
	PhoneKindLandline
	PhoneKindCommercial
)

// PhoneKinds lists every phone kind in display order.
var PhoneKinds = []PhoneKind{PhoneKindMobile, PhoneKindLandline, PhoneKindCommercial}

var phoneKindTokens = map[PhoneKind]string{
	PhoneKindMobile:     "celular",
	PhoneKindLandline:   "fixo",
	PhoneKindCommercial: "comercial",
}

var phoneKindsByToken = map[string]PhoneKind{
	"celular":   PhoneKindMobile,
	"fixo":      PhoneKindLandline,
	"comercial": PhoneKindCommercial,
}

// ParsePhoneKind decodes a wire token such as "celular".
func ParsePhoneKind(token string) (PhoneKind, error) {
	k, ok := phoneKindsByToken[token]
	if !ok {
		return 0, newValidationError("type", fmt.Sprintf("unknown phone type %q", token))
	}
	return k, nil
}

func (k PhoneKind) String() string {
	return phoneKindTokens[k]
}

func (k PhoneKind) Valid() bool {
	_, ok := phoneKindTokens[k]
	return ok
}

func (k PhoneKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid phone kind value %d", k)
	}
	return []byte(k.String()), nil
}

func (k *PhoneKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePhoneKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
