package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeAmount coerces heterogeneous amount representations into a
// canonical decimal. Strings are stripped of everything except digits and
// the decimal point, so "₹1,50,000", "Rs. 1,50,000" and "$1,500.00" all
// parse the same way. Returns 0 for nil, empty or unparseable input -
// callers must treat 0 as "amount unknown", never as a valid donation.
func NormalizeAmount(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return NormalizeAmount(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		// Keep a decimal point only when it follows a digit, so the dot in
		// currency prefixes like "Rs." never lands in the numeric token
		var b strings.Builder
		digitSeen := false
		for _, r := range n {
			switch {
			case r >= '0' && r <= '9':
				b.WriteRune(r)
				digitSeen = true
			case r == '.' && digitSeen:
				b.WriteRune(r)
				digitSeen = false
			}
		}
		cleaned := b.String()
		if cleaned == "" {
			return 0
		}
		amount, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return 0
		}
		return amount
	default:
		return 0
	}
}

// NormalizePhone ensures bare Indian numbers carry the +91 country code.
// Numbers already carrying a "+" prefix pass through unchanged.
func NormalizePhone(phone string) string {
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+91" + strings.TrimPrefix(phone, "91")
}

// timeAccessor matches persistence-layer timestamp wrappers that expose
// a native time value through a zero-argument accessor
type timeAccessor interface {
	Time() time.Time
}

// dateLayouts tried in order for string timestamps
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02 Jan 2006, 3:04 PM",
}

// NormalizeDate coerces the timestamp shapes seen across the store and the
// extraction service into a single *time.Time: time.Time values, ISO/common
// layout strings, {seconds}/{_seconds} epoch wrapper maps, and any value
// with a zero-argument Time() accessor. Returns nil for anything
// unrecognized or producing an invalid date - it never panics. No other
// component should branch on timestamp shape.
func NormalizeDate(v interface{}) *time.Time {
	switch d := v.(type) {
	case nil:
		return nil
	case time.Time:
		if d.IsZero() {
			return nil
		}
		return &d
	case *time.Time:
		if d == nil || d.IsZero() {
			return nil
		}
		return d
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return &parsed
			}
		}
		return nil
	case map[string]interface{}:
		for _, key := range []string{"seconds", "_seconds"} {
			if raw, ok := d[key]; ok {
				if secs := NormalizeAmount(raw); secs > 0 {
					parsed := time.Unix(int64(secs), 0)
					return &parsed
				}
			}
		}
		return nil
	case timeAccessor:
		parsed := d.Time()
		if parsed.IsZero() {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}
