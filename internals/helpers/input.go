package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"t-convert/internals/core/domain"
)

// Menu choices shared by the main menu and the post-conversion menu.
const (
	MinChoice = 1
	MaxChoice = 3
)

// ParseAmount accepts digits with at most one decimal point ("12.50", ".5",
// "12.") and a strictly positive value.
func ParseAmount(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", domain.ErrInvalidAmount)
	}

	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case r < '0' || r > '9':
			return 0, fmt.Errorf("%w: %q contains invalid characters", domain.ErrInvalidAmount, s)
		}
	}
	if dots > 1 {
		return 0, fmt.Errorf("%w: %q is not a decimal number", domain.ErrInvalidAmount, s)
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal number", domain.ErrInvalidAmount, s)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return amount, nil
}

// ParseMenuChoice accepts exactly "1", "2" or "3".
func ParseMenuChoice(input string) (int, error) {
	s := strings.TrimSpace(input)
	if len(s) != 1 || s[0] < '0'+MinChoice || s[0] > '0'+MaxChoice {
		return 0, fmt.Errorf("%w: please enter a valid choice (%d-%d)", domain.ErrInvalidChoice, MinChoice, MaxChoice)
	}
	return int(s[0] - '0'), nil
}

// ParseConfirmation maps Y/N (either case) to true/false.
func ParseConfirmation(input string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "Y", "YES":
		return true, nil
	case "N", "NO":
		return false, nil
	}
	return false, fmt.Errorf("%w: please enter 'Y' or 'N'", domain.ErrInvalidChoice)
}

// ParseCurrencyCode trims surrounding whitespace. Case is preserved: catalog
// lookups are exact.
func ParseCurrencyCode(input string) domain.Currency {
	return domain.Currency(strings.TrimSpace(input))
}
