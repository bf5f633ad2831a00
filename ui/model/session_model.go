package model

import "time"

// SessionModel tracks how long auto-translate has been running: the current
// (or last) session and the accumulated total across sessions.
// It is decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active              bool
	autoStart           time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current auto-translate flag and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(auto bool, now time.Time) {
	if m == nil {
		return
	}
	if auto {
		if !m.active { // transition off -> on
			m.active = true
			m.autoStart = now
			m.lastSessionDuration = 0
		}
		m.lastSessionDuration = now.Sub(m.autoStart)
	} else if m.active { // transition on -> off
		m.lastSessionDuration = now.Sub(m.autoStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// Values returns the session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Active reports whether an auto-translate session is running.
func (m *SessionModel) Active() bool { return m != nil && m.active }
