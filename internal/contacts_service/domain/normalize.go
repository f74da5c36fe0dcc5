package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	NameMinLength = 2
	NameMaxLength = 100

	PhoneMinDigits = 8
	PhoneMaxDigits = 11
)

// Letters (ASCII and Latin-1 accented, without × and ÷), space, hyphen and period.
// Ÿ is the capital of ÿ and the only one outside Latin-1, so it is accepted too.
var nameCharset = regexp.MustCompile(`^[a-zA-ZÀ-ÖØ-öø-ÿŸ .\-]+$`)

// lowercaseWords stay lowercase unless they open the name.
var lowercaseWords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {}, "e": {},
}

// NormalizeName collapses whitespace, validates the character set and
// rewrites the name into display form ("ana DE souza" -> "Ana de Souza").
func NormalizeName(raw string) (string, error) {
	words := strings.Fields(raw)
	collapsed := strings.Join(words, " ")

	n := utf8.RuneCountInString(collapsed)
	if n < NameMinLength || n > NameMaxLength {
		return "", newValidationError("name",
			fmt.Sprintf("name must have between %d and %d characters", NameMinLength, NameMaxLength))
	}
	if !nameCharset.MatchString(collapsed) {
		return "", newValidationError("name", "name may only contain letters, spaces, hyphens and periods")
	}

	for i, w := range words {
		w = strings.ToLower(w)
		if _, ok := lowercaseWords[w]; ok && i > 0 {
			words[i] = w
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " "), nil
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToTitle(r)) + word[size:]
}

// PhoneDigits strips every character that is not an ASCII digit.
func PhoneDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// NormalizePhoneNumber validates the digit count of raw and returns the
// canonical display form for it.
func NormalizePhoneNumber(raw string) (string, error) {
	d := PhoneDigits(raw)
	if len(d) < PhoneMinDigits || len(d) > PhoneMaxDigits {
		return "", newValidationError("number",
			fmt.Sprintf("phone number must have between %d and %d digits", PhoneMinDigits, PhoneMaxDigits))
	}
	return FormatPhoneDigits(d), nil
}

// FormatPhoneDigits formats an already stripped digit string. Lengths outside
// the supported table are returned unchanged.
func FormatPhoneDigits(d string) string {
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 9:
		return d[:5] + "-" + d[5:]
	case 8:
		return d[:4] + "-" + d[4:]
	default:
		return d
	}
}
