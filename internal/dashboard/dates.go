package dashboard

import (
	"fmt"
	"time"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

const (
	dateOnly = "2006-01-02"
	// zoneless timestamps, optional fractional seconds; read as UTC
	naiveDateTime = "2006-01-02T15:04:05.999999999"
)

// ParseStart parses a lower date bound. Accepts RFC 3339, a zoneless
// timestamp (UTC) or YYYY-MM-DD (midnight UTC). Blank means unbounded.
func ParseStart(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, _, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseEnd parses an upper date bound. A bare date covers that whole day.
func ParseEnd(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, dayOnly, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	if dayOnly {
		// stored dates have millisecond precision
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(naiveDateTime, s); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: invalid date %q, expected RFC 3339 or YYYY-MM-DD", models.ErrValidation, s)
}
