package pagination

import "time"

const (
	// DefaultLimit is the page size used when a listing gives no limit.
	DefaultLimit = 100
	// MaxLimit caps how many rows a single listing may request.
	MaxLimit = 500
)

// NormalizeLimit applies fallback as the default and clamps to MaxLimit.
// A non-positive fallback means DefaultLimit.
func NormalizeLimit(limit, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultLimit
	}
	if fallback > MaxLimit {
		fallback = MaxLimit
	}
	if limit <= 0 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// TimeRange is an inclusive creation-time window.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// RangeFromMillis converts epoch-millisecond bounds into a UTC TimeRange.
func RangeFromMillis(from, to int64) TimeRange {
	return TimeRange{
		From: time.UnixMilli(from).UTC(),
		To:   time.UnixMilli(to).UTC(),
	}
}

// Valid reports whether the range is non-inverted.
func (r TimeRange) Valid() bool {
	return !r.To.Before(r.From)
}
