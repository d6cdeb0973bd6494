package tenant

import (
	"strings"
	"time"
)

// NoExpirySentinel is the date prefix the API uses for "no expiry".
const NoExpirySentinel = "0001-01-01"

// Placeholder is rendered for absent values.
const Placeholder = "—"

// apiTimeLayouts are the timestamp shapes the API is known to emit.
// Zone-less values are read as UTC.
var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseAPITime parses an API timestamp. The bool is false for empty or
// unparsable input.
func ParseAPITime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// HasNoExpiry reports whether validUpto carries the no-expiry sentinel or is empty.
func HasNoExpiry(validUpto string) bool {
	return validUpto == "" || strings.HasPrefix(validUpto, NoExpirySentinel)
}

// ExpiresDisplay renders validUpto as yyyy-mm-dd, or Placeholder for the
// sentinel, empty or unparsable values.
func ExpiresDisplay(validUpto string) string {
	if HasNoExpiry(validUpto) {
		return Placeholder
	}
	t, ok := ParseAPITime(validUpto)
	if !ok {
		return Placeholder
	}
	return t.Format(time.DateOnly)
}

// DatePart returns the portion of an ISO timestamp before "T", or
// Placeholder when empty.
func DatePart(iso string) string {
	if iso == "" {
		return Placeholder
	}
	if i := strings.Index(iso, "T"); i > 0 {
		return iso[:i]
	}
	return iso
}
