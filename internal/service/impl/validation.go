package impl

import (
	"strings"
	"unicode/utf8"

	"clubhub/internal/domain"
)

const minPasswordLen = 6

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func required(field, value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, msg)
	}
	return nil
}

func validEmail(field, email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return domain.Invalid(field, "A valid email address is required.")
	}
	return nil
}

func validPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return domain.Invalid("password", "Password must be at least 6 characters")
	}
	return nil
}

// firstErr returns the first non-nil error, in argument order.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
