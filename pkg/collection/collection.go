// Package collection holds the pure editing operations for sequences and
// membership sets embedded inside a persisted aggregate (a profile's
// experience and education, a post's comments and likes). Callers load the
// aggregate, apply one of these functions to the embedded slice, and persist
// the whole aggregate back.
package collection

import "errors"

var (
	// ErrDuplicate is returned by Add when the member is already present.
	ErrDuplicate = errors.New("member already present")
	// ErrAbsent is returned by Remove when the member is not present.
	ErrAbsent = errors.New("member not present")
)

// InsertFront prepends entry, keeping the sequence newest-first.
func InsertFront[T any](seq []T, entry T) []T {
	out := make([]T, 0, len(seq)+1)
	out = append(out, entry)
	return append(out, seq...)
}

// RemoveFirst removes the first element matched by match. When nothing
// matches, the sequence comes back unchanged and removed is false; the
// caller decides whether that is an error.
func RemoveFirst[T any](seq []T, match func(T) bool) (out []T, removed bool) {
	for i, item := range seq {
		if match(item) {
			out = append(out, seq[:i]...)
			return append(out, seq[i+1:]...), true
		}
	}
	return seq, false
}

// Find returns the first element matched by match.
func Find[T any](seq []T, match func(T) bool) (entry T, ok bool) {
	for _, item := range seq {
		if match(item) {
			return item, true
		}
	}
	return entry, false
}

// Add inserts entry at the front of a membership set. An already-present
// member is a state-already-achieved condition, not an upsert.
func Add[T any](set []T, present func(T) bool, entry T) ([]T, error) {
	if _, ok := Find(set, present); ok {
		return set, ErrDuplicate
	}
	return InsertFront(set, entry), nil
}

// Remove takes a single member out of a membership set, failing when the
// member was never added.
func Remove[T any](set []T, present func(T) bool) ([]T, error) {
	out, removed := RemoveFirst(set, present)
	if !removed {
		return set, ErrAbsent
	}
	return out, nil
}
