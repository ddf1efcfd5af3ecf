package services

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Clock supplies "now" for date defaults.
type Clock func() time.Time

// SystemClock returns a Clock reading wall time in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// Today is the current date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c().Format(dayLayout)
}

// parseDay validates an optional YYYY-MM-DD value. Blank input returns "".
func parseDay(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(dayLayout, s); err != nil {
		return "", invalid(field)
	}
	return s, nil
}

// DateRange is an inclusive range of YYYY-MM-DD dates. An empty bound is open.
type DateRange struct {
	From string
	To   string
}

// reportRange applies the report defaults: missing lower bound is today,
// missing upper bound is the lower bound.
func reportRange(from, to string, today string) (DateRange, error) {
	f, err := parseDay("desde", from)
	if err != nil {
		return DateRange{}, err
	}
	u, err := parseDay("hasta", to)
	if err != nil {
		return DateRange{}, err
	}
	if f == "" {
		f = today
	}
	if u == "" {
		u = f
	}
	return DateRange{From: f, To: u}, nil
}

// listingRange applies the assignment listing defaults: no bounds at all is
// today..today; a single bound leaves the other side open.
func listingRange(from, to string, today string) (DateRange, error) {
	f, err := parseDay("desde", from)
	if err != nil {
		return DateRange{}, err
	}
	u, err := parseDay("hasta", to)
	if err != nil {
		return DateRange{}, err
	}
	if f == "" && u == "" {
		return DateRange{From: today, To: today}, nil
	}
	return DateRange{From: f, To: u}, nil
}

// ParseActive maps the permissive truthy-token set {1, true, t, yes}
// (case-insensitive) to true. JSON booleans and non-zero numbers are true;
// anything else, including nil, is false.
func ParseActive(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "t", "yes":
			return true
		}
	}
	return false
}
