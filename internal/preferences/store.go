// Package preferences persists per-user display preferences. Only the
// currency label is stored; the calculators receive it as an input field.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/format"
)

var (
	// ErrNotFound is returned when a user has no stored preference.
	ErrNotFound = errors.New("preference not found")
	// ErrInvalidCurrency is returned when storing an unsupported currency code.
	ErrInvalidCurrency = errors.New("invalid currency")
)

// AnonymousUser keys the preferences of callers that do not identify themselves.
const AnonymousUser = "anonymous"

// Store reads and writes currency preferences.
type Store interface {
	Currency(ctx context.Context, user string) (string, error)
	SetCurrency(ctx context.Context, user, code string) error
}

// Resolve returns the user's currency, falling back to the default currency
// when none is stored.
func Resolve(ctx context.Context, s Store, user string) (string, error) {
	code, err := s.Currency(ctx, userKey(user))
	if errors.Is(err, ErrNotFound) {
		return constants.DefaultCurrency, nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// normalizeCurrency upper-cases a code and checks it is supported.
func normalizeCurrency(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !format.IsSupported(normalized) {
		return "", fmt.Errorf("%w %q, expected one of %s", ErrInvalidCurrency, code, strings.Join(format.Codes(), ", "))
	}
	return normalized, nil
}

func userKey(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return AnonymousUser
	}
	return user
}
