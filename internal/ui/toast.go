// Package ui holds the toast and modal widgets as plain state machines.
// Rendering is left to the caller; the terminal UI draws them with lipgloss.
package ui

import (
	"sync"
	"time"

	"github.com/krcglobal/gbms/internal/format"
)

// Toast timing.
const (
	DefaultToastDuration = 3 * time.Second
	EnterDuration        = 300 * time.Millisecond
	LeaveDuration        = 300 * time.Millisecond
)

// Phase is the lifecycle stage of a toast.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseVisible
	PhaseLeaving
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}

// Toast is one notification.
type Toast struct {
	ID       string
	Message  string
	Kind     string
	Icon     string
	Phase    Phase
	ShownAt  time.Time
	Duration time.Duration
}

func (t Toast) leaveAt() time.Time  { return t.ShownAt.Add(t.Duration) }
func (t Toast) removeAt() time.Time { return t.leaveAt().Add(LeaveDuration) }

// ToastQueue holds the active toasts. The container exists only while at
// least one toast is active.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
	newID  func() string
}

// NewToastQueue creates an empty queue. A nil clock uses time.Now.
func NewToastQueue(now func() time.Time) *ToastQueue {
	if now == nil {
		now = time.Now
	}
	return &ToastQueue{now: now, newID: format.GenerateID}
}

// Show enqueues a toast and returns its id. A non-positive duration uses
// DefaultToastDuration.
func (q *ToastQueue) Show(message, kind string, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	if kind == "" {
		kind = format.KindInfo
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	t := Toast{
		ID:       q.newID(),
		Message:  message,
		Kind:     kind,
		Icon:     format.ToastIcon(kind),
		Phase:    PhaseEntering,
		ShownAt:  q.now(),
		Duration: duration,
	}
	q.toasts = append(q.toasts, t)
	return t.ID
}

// Success shows a success toast with the default duration.
func (q *ToastQueue) Success(message string) string {
	return q.Show(message, format.KindSuccess, 0)
}

// Error shows an error toast with the default duration.
func (q *ToastQueue) Error(message string) string {
	return q.Show(message, format.KindError, 0)
}

// Warning shows a warning toast with the default duration.
func (q *ToastQueue) Warning(message string) string {
	return q.Show(message, format.KindWarning, 0)
}

// Info shows an info toast with the default duration.
func (q *ToastQueue) Info(message string) string {
	return q.Show(message, format.KindInfo, 0)
}

// Advance moves every toast to its phase at now and drops the ones whose
// leave phase has ended. It reports whether anything changed.
func (q *ToastQueue) Advance(now time.Time) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	changed := false
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if !now.Before(t.removeAt()) {
			changed = true
			continue
		}

		phase := PhaseVisible
		switch {
		case !now.Before(t.leaveAt()):
			phase = PhaseLeaving
		case now.Before(t.ShownAt.Add(EnterDuration)):
			phase = PhaseEntering
		}
		if phase != t.Phase {
			t.Phase = phase
			changed = true
		}
		kept = append(kept, t)
	}
	q.toasts = kept
	if len(q.toasts) == 0 {
		q.toasts = nil
	}
	return changed
}

// Dismiss starts the leave phase of a toast immediately.
func (q *ToastQueue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	for i := range q.toasts {
		if q.toasts[i].ID == id && q.toasts[i].Phase != PhaseLeaving {
			q.toasts[i].Duration = now.Sub(q.toasts[i].ShownAt)
			q.toasts[i].Phase = PhaseLeaving
			return true
		}
	}
	return false
}

// Toasts returns a copy of the active toasts, oldest first.
func (q *ToastQueue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.toasts) == 0 {
		return nil
	}
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// HasContainer reports whether the toast container exists.
func (q *ToastQueue) HasContainer() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts) > 0
}

// Len returns the number of active toasts.
func (q *ToastQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}
