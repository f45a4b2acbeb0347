package services

import "time"

// WindowMode controls what happens once the availability window closes.
// Opening is always a hard stop: the form is never reachable early.
type WindowMode string

const (
	// WindowHard blocks the form entirely outside the window.
	WindowHard WindowMode = "hard"
	// WindowSoft keeps the form usable after close but flags a warning.
	WindowSoft WindowMode = "soft"
	// WindowNone disables date gating.
	WindowNone WindowMode = "none"
)

// WindowState describes where "now" sits relative to the window.
type WindowState string

const (
	WindowOpen       WindowState = "open"
	WindowNotYetOpen WindowState = "not_yet_open"
	WindowClosed     WindowState = "closed"
)

// WindowGate evaluates the configured open/close range. A zero OpensAt
// or ClosesAt means that edge is unbounded.
type WindowGate struct {
	Mode     WindowMode
	OpensAt  time.Time
	ClosesAt time.Time
}

// WindowStatus is the gate's verdict for a point in time.
type WindowStatus struct {
	State      WindowState `json:"state"`
	Accessible bool        `json:"accessible"`
	Warn       bool        `json:"warn,omitempty"`
}

// Status reports whether the form is reachable at now.
func (g *WindowGate) Status(now time.Time) WindowStatus {
	if g == nil || g.Mode == "" || g.Mode == WindowNone {
		return WindowStatus{State: WindowOpen, Accessible: true}
	}
	if !g.OpensAt.IsZero() && now.Before(g.OpensAt) {
		return WindowStatus{State: WindowNotYetOpen, Accessible: false}
	}
	if !g.ClosesAt.IsZero() && now.After(g.ClosesAt) {
		if g.Mode == WindowSoft {
			return WindowStatus{State: WindowClosed, Accessible: true, Warn: true}
		}
		return WindowStatus{State: WindowClosed, Accessible: false}
	}
	return WindowStatus{State: WindowOpen, Accessible: true}
}
