package ui

import "sync"

// Key is a key event delivered to an open modal.
type Key int

const (
	KeyTab Key = iota
	KeyShiftTab
	KeyEscape
	KeyEnter
)

// Modal is a dialog with an overlay. While open it traps focus among its
// focusable elements and locks page scrolling.
type Modal struct {
	mu sync.Mutex

	// OnClose runs once per close of an open modal.
	OnClose func()

	open       bool
	title      string
	focusables []string
	focus      int
	prevFocus  string
	scrollWas  bool
	scroll     bool
	overlays   int
}

// NewModal creates a closed modal.
func NewModal(onClose func()) *Modal {
	return &Modal{OnClose: onClose}
}

// Open shows the modal and focuses its first focusable element. prevFocus
// is restored on close. Opening an open modal does nothing and returns
// false.
func (m *Modal) Open(title string, focusables []string, prevFocus string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return false
	}
	m.open = true
	m.title = title
	m.focusables = append([]string(nil), focusables...)
	m.focus = 0
	m.prevFocus = prevFocus
	m.scrollWas = m.scroll
	m.scroll = true
	m.overlays++
	return true
}

// HandleKey applies a key event. Tab and Shift+Tab wrap around the
// focusable elements; Escape closes. It reports whether the key was
// consumed.
func (m *Modal) HandleKey(k Key) bool {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return false
	}

	n := len(m.focusables)
	switch k {
	case KeyTab:
		if n > 0 {
			m.focus = (m.focus + 1) % n
		}
		m.mu.Unlock()
		return true
	case KeyShiftTab:
		if n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}
		m.mu.Unlock()
		return true
	case KeyEscape:
		m.mu.Unlock()
		m.Close()
		return true
	default:
		m.mu.Unlock()
		return false
	}
}

// ClickOverlay closes the modal, as a click outside the dialog does.
func (m *Modal) ClickOverlay() { m.Close() }

// ClickClose closes the modal from its close button.
func (m *Modal) ClickClose() { m.Close() }

// Close hides the modal, restores scrolling and returns the element that
// had focus before Open. Closing a closed modal returns "" and does not
// run OnClose.
func (m *Modal) Close() string {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return ""
	}
	m.open = false
	m.overlays--
	m.scroll = m.scrollWas
	prev := m.prevFocus
	m.focusables = nil
	onClose := m.OnClose
	m.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return prev
}

// IsOpen reports whether the modal is open.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Title returns the title of the open modal.
func (m *Modal) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// Focused returns the focused element, or "" when none.
func (m *Modal) Focused() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || len(m.focusables) == 0 {
		return ""
	}
	return m.focusables[m.focus]
}

// ScrollLocked reports whether page scrolling is disabled.
func (m *Modal) ScrollLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scroll
}

// Overlays returns the number of overlays currently shown: 1 while open,
// otherwise 0.
func (m *Modal) Overlays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlays
}
