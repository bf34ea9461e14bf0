// Package window evaluates optional, inclusive time windows. Every gating
// decision in the competition lifecycle reduces to one of these checks
// against the wall clock at request time.
package window

import "time"

// Position locates an instant relative to a Window.
type Position int

const (
	Inside Position = iota
	// Before means the window has an open bound and now is earlier than it.
	Before
	// After means the window has a close bound and now is later than it.
	After
)

func (p Position) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "inside"
	}
}

// Window is a closed interval with optional bounds. A nil bound is unbounded
// on that side.
type Window struct {
	OpenAt  *time.Time
	CloseAt *time.Time
}

func New(openAt, closeAt *time.Time) Window {
	return Window{OpenAt: openAt, CloseAt: closeAt}
}

// Position reports where now falls. Both bounds are inclusive, so an instant
// equal to either bound is Inside.
func (w Window) Position(now time.Time) Position {
	if w.OpenAt != nil && now.Before(*w.OpenAt) {
		return Before
	}
	if w.CloseAt != nil && now.After(*w.CloseAt) {
		return After
	}
	return Inside
}

func (w Window) Contains(now time.Time) bool {
	return w.Position(now) == Inside
}

// IsWithin reports whether now lies within [openAt, closeAt]. Absent bounds
// always pass.
func IsWithin(now time.Time, openAt, closeAt *time.Time) bool {
	return New(openAt, closeAt).Contains(now)
}

// FirstSet returns the first non-nil candidate, or nil.
func FirstSet(candidates ...*time.Time) *time.Time {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
