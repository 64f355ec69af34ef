// Package validate provides the stateless cross-field business rules
// shared by the order, count, and transaction workflows. All functions
// are pure predicates: they inspect a value and return an error
// describing the violation, leaving it to the caller to decide whether
// the violation is a hard rejection.
package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var (
	phonePattern  = regexp.MustCompile(`^(\+\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
	phoneDigits   = regexp.MustCompile(`\D`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	minPhoneDigit = 7
	maxPhoneDigit = 15
)

// truncateToDay drops the time-of-day component. Date comparisons in
// this package are at day granularity.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NoFutureDate rejects any date strictly after the current day.
func NoFutureDate(value time.Time) error {
	if value.IsZero() {
		return nil
	}
	today := truncateToDay(time.Now())
	if truncateToDay(value).After(today) {
		return fmt.Errorf("%s is in the future; this field cannot accept future dates", value.Format("2006-01-02"))
	}
	return nil
}

// DateNotBefore rejects value strictly earlier than reference.
func DateNotBefore(value, reference time.Time) error {
	if value.IsZero() || reference.IsZero() {
		return nil
	}
	if truncateToDay(value).Before(truncateToDay(reference)) {
		return fmt.Errorf("%s cannot be before %s", value.Format("2006-01-02"), reference.Format("2006-01-02"))
	}
	return nil
}

// NonNegative rejects negative decimal magnitudes.
func NonNegative(value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%s cannot be negative", value.String())
	}
	return nil
}

// CurrencyRange rejects amounts below min or, when max is non-nil,
// above max.
func CurrencyRange(value, min decimal.Decimal, max *decimal.Decimal) error {
	if value.LessThan(min) {
		return fmt.Errorf("value cannot be less than %s", min.String())
	}
	if max != nil && value.GreaterThan(*max) {
		return fmt.Errorf("value cannot be greater than %s", max.String())
	}
	return nil
}

// PhoneNumber validates a phone number: 7 to 15 digits plus a
// recognized punctuation pattern (optional country code, parentheses,
// hyphens, dots, or spaces).
func PhoneNumber(value string) error {
	if value == "" {
		return nil
	}
	digits := phoneDigits.ReplaceAllString(value, "")
	if len(digits) < minPhoneDigit || len(digits) > maxPhoneDigit {
		return fmt.Errorf("%q is not a valid phone number: must have between %d and %d digits", value, minPhoneDigit, maxPhoneDigit)
	}
	if !phonePattern.MatchString(value) {
		return fmt.Errorf("%q is not a valid phone number format", value)
	}
	return nil
}

// Email validates a standard email address shape.
func Email(value string) error {
	if value == "" {
		return nil
	}
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("%q is not a valid email address", value)
	}
	return nil
}
