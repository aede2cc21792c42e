package helpers

import (
	"fmt"
	"strings"
	"time"

	"t-convert/internals/core/domain"
)

// TodayToken is accepted in place of a date and resolves to the local date.
const TodayToken = "today"

// IsValidDateFormat checks the YYYY-MM-DD shape only: ten characters, '-' at
// positions 4 and 7, ASCII digits elsewhere. Month and day ranges are not
// checked, so "2024-13-32" passes.
func IsValidDateFormat(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Today formats now as a calendar date in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(domain.DateLayout)
}

// NormalizeFutureDate returns nowUTC when requested lies after it. Both values
// are YYYY-MM-DD, so string order is date order.
func NormalizeFutureDate(requested, nowUTC string) string {
	if requested > nowUTC {
		return nowUTC
	}
	return requested
}

// ResolveDateInput accepts the literal "today" (any case), resolved to the local
// date, or a string that passes IsValidDateFormat.
func ResolveDateInput(input string, now time.Time) (string, error) {
	s := strings.TrimSpace(input)
	if strings.EqualFold(s, TodayToken) {
		return Today(now, time.Local), nil
	}
	if !IsValidDateFormat(s) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, s)
	}
	return s, nil
}
