// Package validate implements declarative validation of untrusted input.
// A Collector accumulates every field problem before failing so the caller
// can fix all of them in one round-trip. Validation never performs I/O.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
)

// Pagination bounds. The effective limit is clamped to [1, MaxLimit]
// regardless of what the caller requests.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the all-or-nothing validation failure carrying every field error.
type Errors struct {
	Fields []FieldError `json:"fields"`
}

func (e *Errors) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

// Collector accumulates field errors across checks.
type Collector struct {
	fields []FieldError
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) add(field, msg string) {
	c.fields = append(c.fields, FieldError{Field: field, Message: msg})
}

// Require records an error when value is empty or blank.
func (c *Collector) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, "is required")
	}
}

// Length checks that value, when present, is between min and max runes.
// A missing optional value should be guarded by Require separately.
func (c *Collector) Length(field, value string, min, max int) {
	n := len([]rune(value))
	if n < min {
		c.add(field, fmt.Sprintf("must be at least %d characters", min))
	} else if n > max {
		c.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// Email records an error when value is not a valid address. Empty values
// are reported as invalid; use Require first for a clearer message.
func (c *Collector) Email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		c.add(field, "must be a valid email address")
	}
}

// URL records an error when a non-empty value is not an absolute http(s) URL.
func (c *Collector) URL(field, value string) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.add(field, "must be a valid URL")
	}
}

// Range checks a numeric bound.
func (c *Collector) Range(field string, value, min, max float64) {
	if value < min {
		c.add(field, fmt.Sprintf("must be at least %v", min))
	} else if value > max {
		c.add(field, fmt.Sprintf("must be at most %v", max))
	}
}

// OneOf checks enum membership for a non-empty value.
func (c *Collector) OneOf(field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.add(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}

// Err returns the accumulated *Errors, or nil when everything passed.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Errors{Fields: c.fields}
}

// Pagination parses page/limit query values defensively: page defaults to 1
// and is forced ≥ 1; limit defaults to DefaultLimit and is clamped to
// [1, MaxLimit] no matter what the caller sends. Unparseable values fall
// back to the defaults rather than failing the request.
func Pagination(pageStr, limitStr string) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(pageStr); err == nil && v > 1 {
		page = v
	}

	limit = DefaultLimit
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// PositiveFloat parses an optional non-negative number from a query value.
// It returns nil when the value is absent and a field error when malformed.
func (c *Collector) PositiveFloat(field, value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		c.add(field, "must be a non-negative number")
		return nil
	}
	return &f
}
