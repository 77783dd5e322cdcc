// Package schedule classifies show start times relative to a reference
// instant.  Callers take one snapshot of "now" per operation and pass it
// to every call so a single listing never splits across the boundary.
package schedule

import "time"

// Phase is the position of a show relative to a reference instant.
type Phase int

const (
	Past Phase = iota
	Upcoming
)

func (p Phase) String() string {
	if p == Upcoming {
		return "upcoming"
	}
	return "past"
}

// Classify returns Upcoming when start is not before ref.
func Classify(start, ref time.Time) Phase {
	if start.Before(ref) {
		return Past
	}
	return Upcoming
}

// CountUpcoming counts the start times classified as Upcoming.
func CountUpcoming(starts []time.Time, ref time.Time) int {
	n := 0
	for _, s := range starts {
		if Classify(s, ref) == Upcoming {
			n++
		}
	}
	return n
}

// Partition splits items into past and upcoming buckets, preserving the
// input order inside each bucket.  start extracts an item's start time.
func Partition[T any](items []T, ref time.Time, start func(T) time.Time) (past, upcoming []T) {
	past = make([]T, 0)
	upcoming = make([]T, 0)
	for _, it := range items {
		if Classify(start(it), ref) == Upcoming {
			upcoming = append(upcoming, it)
		} else {
			past = append(past, it)
		}
	}
	return past, upcoming
}
