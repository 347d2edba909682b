package palette

import "time"

// DefaultLockWindow is how long a keyboard navigation keeps pointer hover
// from moving the highlight.
const DefaultLockWindow = 600 * time.Millisecond

const noHover = -1

// Clock provides the current time. Use RealClock outside tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the wall clock time.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// Modality is the input class that currently owns the highlight.
type Modality int

const (
	// ModalityPointer is also the post-reset state: pointer events are honored immediately.
	ModalityPointer Modality = iota
	ModalityKeyboard
)

func (m Modality) String() string {
	if m == ModalityKeyboard {
		return "keyboard"
	}
	return "pointer"
}

// Selection is a read-only copy of the arbiter state.
type Selection struct {
	Active    int
	Hovered   int // -1 when nothing is hovered
	Modality  Modality
	LockUntil time.Time // zero when no lock was ever taken
}

// HasHover reports whether a pointer is over some item.
func (s Selection) HasHover() bool {
	return s.Hovered != noHover
}

// Arbiter owns the active index and decides which modality may move it.
//
// The keyboard lock is lazy: expiry is detected by comparing the clock with
// lockUntil when a pointer event arrives. Nothing runs when the lock lapses.
type Arbiter struct {
	clock  Clock
	window time.Duration

	active    int
	hovered   int
	modality  Modality
	lockUntil time.Time
}

// NewArbiter creates an arbiter in the reset state.
func NewArbiter(clock Clock, window time.Duration) *Arbiter {
	if clock == nil {
		clock = RealClock{}
	}
	if window <= 0 {
		window = DefaultLockWindow
	}
	a := &Arbiter{clock: clock, window: window}
	a.Reset()
	return a
}

// Reset returns to (0, none, pointer, none). Called on open and on every query edit.
func (a *Arbiter) Reset() {
	a.active = 0
	a.hovered = noHover
	a.modality = ModalityPointer
	a.lockUntil = time.Time{}
}

// Move applies an arrow key over a view of n items. The keyboard takes the
// highlight and the lock restarts from now, even when the index is clamped.
// It reports whether the active index changed.
func (a *Arbiter) Move(delta, n int) bool {
	if n <= 0 {
		return false
	}
	prev := a.active
	a.active = clamp(a.active+delta, 0, n-1)
	a.hovered = noHover
	a.modality = ModalityKeyboard
	a.lockUntil = a.clock.Now().Add(a.window)
	return a.active != prev
}

// PointerEnter handles the pointer entering item i of an n-item view. While
// the keyboard lock holds, only the hover bookkeeping changes. It reports
// whether the pointer took the highlight.
func (a *Arbiter) PointerEnter(i, n int) bool {
	if i < 0 || i >= n {
		return false
	}
	if a.Locked() {
		a.hovered = i
		return false
	}
	a.active = i
	a.hovered = i
	a.modality = ModalityPointer
	return true
}

// PointerLeave clears the hover when the pointer leaves the hovered item.
func (a *Arbiter) PointerLeave(i int) {
	if a.hovered == i {
		a.hovered = noHover
	}
}

// Locked reports whether the keyboard lock is still running.
func (a *Arbiter) Locked() bool {
	return a.lockedAt(a.clock.Now())
}

func (a *Arbiter) lockedAt(now time.Time) bool {
	return a.modality == ModalityKeyboard && !a.lockUntil.IsZero() && now.Before(a.lockUntil)
}

// Active returns the active global index.
func (a *Arbiter) Active() int { return a.active }

// Hovered returns the hovered global index, if any.
func (a *Arbiter) Hovered() (int, bool) {
	return a.hovered, a.hovered != noHover
}

// Modality returns the modality owning the highlight.
func (a *Arbiter) Modality() Modality { return a.modality }

// LockRemaining returns how long the keyboard lock still holds.
func (a *Arbiter) LockRemaining() time.Duration {
	now := a.clock.Now()
	if !a.lockedAt(now) {
		return 0
	}
	return a.lockUntil.Sub(now)
}

// IsActive reports whether item i is drawn as selected.
func (a *Arbiter) IsActive(i int) bool {
	return i == a.active
}

// IsHoverOnly reports whether item i is drawn with hover styling: the pointer
// rests on it, it is not the active item, and the keyboard lock is not holding.
func (a *Arbiter) IsHoverOnly(i int) bool {
	return a.hovered == i && i != a.active && !a.Locked()
}

// State returns a copy of the current state.
func (a *Arbiter) State() Selection {
	return Selection{
		Active:    a.active,
		Hovered:   a.hovered,
		Modality:  a.modality,
		LockUntil: a.lockUntil,
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
