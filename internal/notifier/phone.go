package notifier

import (
	"errors"
	"strings"
)

// ErrInvalidAddress is returned when a phone number cannot be normalized to
// a known international shape.
var ErrInvalidAddress = errors.New("invalid phone number format")

// Known placeholder/test numbers. These must never be used as a send target;
// callers substitute the account's on-file number when a delivery form
// carries one of these.
var placeholderNumbers = map[string]struct{}{
	"0123456789":  {},
	"1234567890":  {},
	"123456789":   {},
	"01234567890": {},
}

// IsPlaceholder reports whether number is one of the known fake numbers.
func IsPlaceholder(number string) bool {
	if number == "" {
		return false
	}
	if _, ok := placeholderNumbers[strings.TrimSpace(number)]; ok {
		return true
	}
	_, ok := placeholderNumbers[digitsOnly(number)]
	return ok
}

func digitsOnly(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeNumber canonicalizes a phone number to digits with a country
// prefix. Recognized prefixes are 91 (India) and 977 (Nepal); a redundant
// leading zero on the subscriber part is stripped and the remaining length
// validated. Numbers with a bare leading zero, and bare 10-digit numbers
// with no prefix, default to Nepal.
func NormalizeNumber(number string) (string, error) {
	digits := digitsOnly(number)
	if digits == "" {
		return "", ErrInvalidAddress
	}

	digits = strings.TrimPrefix(digits, "00")

	if strings.HasPrefix(digits, "91") {
		local := strings.TrimPrefix(digits[2:], "0")
		if len(local) != 10 {
			return "", ErrInvalidAddress
		}
		return "91" + local, nil
	}

	if strings.HasPrefix(digits, "977") {
		local := strings.TrimPrefix(digits[3:], "0")
		if len(local) != 10 {
			return "", ErrInvalidAddress
		}
		return "977" + local, nil
	}

	if strings.HasPrefix(digits, "0") {
		local := digits[1:]
		if len(local) == 9 || len(local) == 10 {
			return "977" + local, nil
		}
	}

	if len(digits) == 10 {
		return "977" + digits, nil
	}

	return "", ErrInvalidAddress
}
