// Package phone validates and normalizes customer phone numbers per country.
package phone

import (
	"strings"

	"dogohouse/internal/domain"
)

// Result carries the outcome of a validation attempt. Err holds a
// human-readable hint for the customer; Validate never panics.
type Result struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Err        string `json:"error,omitempty"`
}

type countrySpec struct {
	callingCode string
	hint        string
}

var specs = map[domain.Country]countrySpec{
	domain.CountryMexico: {
		callingCode: "52",
		hint:        "Ingresa un número mexicano de 10 dígitos, ej. 81 1234 5678",
	},
	domain.CountryUSA: {
		callingCode: "1",
		hint:        "Enter a 10-digit US number, e.g. 415 555 0123",
	},
}

// CallingCode returns the dialing prefix for a supported country.
func CallingCode(country domain.Country) (string, bool) {
	spec, ok := specs[country]
	if !ok {
		return "", false
	}
	return spec.callingCode, true
}

// Validate strips separators, checks for exactly 10 significant digits
// (optionally prefixed by the country calling code, with or without a
// leading +) and returns the normalized +<code><digits> form.
func Validate(raw string, country domain.Country) Result {
	spec, ok := specs[country]
	if !ok {
		return Result{Err: "unsupported country"}
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "+")

	var digits strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// separators are tolerated and dropped
		default:
			return Result{Err: spec.hint}
		}
	}

	local := digits.String()
	if strings.HasPrefix(local, spec.callingCode) && len(local) == len(spec.callingCode)+10 {
		local = local[len(spec.callingCode):]
	}
	if len(local) != 10 {
		return Result{Err: spec.hint}
	}

	return Result{Valid: true, Normalized: "+" + spec.callingCode + local}
}
