package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase with preposition", "ana de souza", "Ana de Souza"},
		{"collapses whitespace", "  maria   DA  silva ", "Maria da Silva"},
		{"preposition first word is capitalized", "de souza", "De Souza"},
		{"single word preposition", "do", "Do"},
		{"conjunction in the middle", "josé E maria", "José e Maria"},
		{"every preposition", "ana das dores dos santos do carmo", "Ana das Dores dos Santos do Carmo"},
		{"accented uppercase", "JOÃO ARANTES", "João Arantes"},
		{"accented first letter", "érica", "Érica"},
		{"hyphenated word", "ana-maria BRAGA", "Ana-maria Braga"},
		{"period", "dr. house", "Dr. House"},
		{"tabs and newlines", "carlos\t\nsilva", "Carlos Silva"},
		{"y with diaeresis", "ÿvonne silva", "Ÿvonne Silva"},
		{"capital y with diaeresis stays valid", "Ÿvonne Silva", "Ÿvonne Silva"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"ana de souza", "JOÃO ARANTES", "de souza", "Vera Bagnara", "arantes ltda",
		"maria e josé dos anjos", "ana-maria", "dr. house", "çá éí",
		"ÿvonne silva", "YVES ÿ", "þóra",
	}
	for _, in := range inputs {
		once, err := NormalizeName(in)
		require.NoError(t, err, in)
		twice, err := NormalizeName(once)
		require.NoError(t, err, in)
		assert.Equal(t, once, twice, in)
	}
}

func TestNormalizeName_PrepositionPosition(t *testing.T) {
	for word := range lowercaseWords {
		if len(word) < NameMinLength {
			continue
		}
		got, err := NormalizeName(strings.ToUpper(word))
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(word[:1])+word[1:], got)
	}
	for word := range lowercaseWords {
		got, err := NormalizeName("Ana " + strings.ToUpper(word) + " Silva")
		require.NoError(t, err)
		assert.Equal(t, "Ana "+word+" Silva", got)
	}
}

func TestNormalizeName_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too short", "a"},
		{"only spaces", "   "},
		{"too long", strings.Repeat("a", NameMaxLength+1)},
		{"digits", "John3"},
		{"symbol", "ana@souza"},
		{"multiplication sign", "ana × souza"},
		{"apostrophe", "o'neil"},
		{"non latin letters", "Иван"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeName(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "name", ve.Field)
		})
	}
}

func TestNormalizeName_LengthCountsCharacters(t *testing.T) {
	got, err := NormalizeName(strings.Repeat("é", NameMaxLength))
	require.NoError(t, err)
	assert.Equal(t, "É"+strings.Repeat("é", NameMaxLength-1), got)
}

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"85888887777", "(85) 88888-7777"},
		{"11999998888", "(11) 99999-8888"},
		{"(19) 99230-7095", "(19) 99230-7095"},
		{"1933248418", "(19) 3324-8418"},
		{"(19) 3324-8418", "(19) 3324-8418"},
		{"999998888", "99999-8888"},
		{"33334444", "3333-4444"},
		{"3333 4444", "3333-4444"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneNumber_Rejects(t *testing.T) {
	for _, in := range []string{"", "123", "1234567", "123456789012", "+5511999999999", "abc"} {
		t.Run(in, func(t *testing.T) {
			_, err := NormalizePhoneNumber(in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "number", ve.Field)
		})
	}
}

func TestNormalizePhoneNumber_EveryValidLength(t *testing.T) {
	digits := "12345678901"
	for n := PhoneMinDigits; n <= PhoneMaxDigits; n++ {
		got, err := NormalizePhoneNumber(digits[:n])
		require.NoError(t, err)
		assert.Equal(t, digits[:n], PhoneDigits(got), "formatting must keep every digit")
		again, err := NormalizePhoneNumber(got)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestFormatPhoneDigits_Fallback(t *testing.T) {
	assert.Equal(t, "1234567", FormatPhoneDigits("1234567"))
	assert.Equal(t, "", FormatPhoneDigits(""))
}
