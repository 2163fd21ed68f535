package roster

import (
	"strings"
	"unicode/utf8"
)

const (
	fallbackGiven   = "N"
	fallbackSurname = "APELLIDOS"
)

// Name is a roster full name split into surname and given part.
// Given is a single letter for "SURNAME, Given" names and the leading token
// (dots stripped) for "I. Surname" names.
type Name struct {
	Surname string `json:"surname"`
	Given   string `json:"given"`
}

// ParseName splits a roster full name.
//
//	"ALMENARA SANABRIAS, ALVARO" -> {ALMENARA SANABRIAS, A}
//	"D. ALMENARA SANABRIAS"      -> {ALMENARA SANABRIAS, D}
//	"PEPE"                       -> {PE, P}
func ParseName(full string) Name {
	full = strings.TrimSpace(full)

	if surname, given, ok := strings.Cut(full, ","); ok {
		fields := strings.Fields(given)
		initial := fallbackGiven
		if len(fields) > 0 {
			initial = firstRune(fields[0])
		}
		return Name{
			Surname: strings.TrimSpace(surname),
			Given:   strings.ToUpper(initial),
		}
	}

	if first, rest, ok := strings.Cut(full, " "); ok {
		return Name{
			Surname: strings.TrimSpace(rest),
			Given:   strings.TrimSpace(strings.ReplaceAll(first, ".", "")),
		}
	}

	given := fallbackGiven
	if full != "" {
		given = firstRune(full)
	}
	surname := fallbackSurname
	if runes := []rune(full); len(runes) > 2 {
		surname = string(runes[2:])
	}
	return Name{Surname: surname, Given: given}
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return fallbackGiven
	}
	return string(r)
}
