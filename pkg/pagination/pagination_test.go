package pagination

import (
	"testing"
	"time"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name     string
		limit    int
		fallback int
		want     int
	}{
		{"zero uses default", 0, 0, DefaultLimit},
		{"negative uses configured fallback", -4, 50, 50},
		{"within bounds", 25, 0, 25},
		{"clamped", 2000, 0, MaxLimit},
		{"fallback clamped", 0, 9000, MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.limit, tc.fallback); got != tc.want {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.want, got)
		}
	}
}

func TestRangeFromMillis(t *testing.T) {
	r := RangeFromMillis(1700000000000, 1700000060000)
	if r.From.Location() != time.UTC || r.To.Sub(r.From) != time.Minute {
		t.Fatalf("unexpected range %+v", r)
	}
	if !r.Valid() {
		t.Fatal("expected range to be valid")
	}
	if RangeFromMillis(10, 5).Valid() {
		t.Fatal("expected inverted range to be invalid")
	}
}
