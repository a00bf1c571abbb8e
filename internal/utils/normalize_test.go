package utils

import (
	"fmt"
	"math"
	"testing"
	"time"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"plain number", 500.0, 500},
		{"integer", 3000, 3000},
		{"plain numeric string", "500", 500},
		{"rupee symbol", "₹500", 500},
		{"indian grouping", "₹1,50,000", 150000},
		{"western grouping with decimals", "$1,500.00", 1500},
		{"rs prefix", "Rs. 3,000", 3000},
		{"rs prefix with decimals", "Rs. 3,000.50", 3000.5},
		{"inr prefix", "INR 750", 750},
		{"decimal string", "499.50", 499.5},
		{"leading dot only", ".", 0},
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"symbols only", "₹,", 0},
		{"nan", math.NaN(), 0},
		{"unsupported type", []string{"500"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAmount(tt.input)
			if got != tt.want {
				t.Fatalf("NormalizeAmount(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAmountIdempotent(t *testing.T) {
	inputs := []string{"₹500", "1,50,000", "Rs 2,000.50", "42"}
	for _, input := range inputs {
		once := NormalizeAmount(input)
		twice := NormalizeAmount(fmt.Sprintf("%v", once))
		if once != twice {
			t.Fatalf("not idempotent for %q: first=%v second=%v", input, once, twice)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare ten digit", "9876543210", "+919876543210"},
		{"country code without plus", "919876543210", "+919876543210"},
		{"already normalized", "+919876543210", "+919876543210"},
		{"foreign number kept", "+14155550123", "+14155550123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

type fakeTimestamp struct {
	t time.Time
}

func (f fakeTimestamp) Time() time.Time {
	return f.t
}

func TestNormalizeDate(t *testing.T) {
	ref := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input interface{}
		want  *time.Time
	}{
		{"time value", ref, &ref},
		{"rfc3339 string", "2025-03-14T10:30:00Z", &ref},
		{"date only string", "2025-03-14", timePtr(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))},
		{"seconds wrapper", map[string]interface{}{"seconds": float64(ref.Unix())}, &ref},
		{"underscore seconds wrapper", map[string]interface{}{"_seconds": float64(ref.Unix())}, &ref},
		{"time accessor", fakeTimestamp{t: ref}, &ref},
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"garbage string", "not a date", nil},
		{"empty map", map[string]interface{}{}, nil},
		{"zero time", time.Time{}, nil},
		{"unsupported type", 12345, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NormalizeDate(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Fatalf("NormalizeDate(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
