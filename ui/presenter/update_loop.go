package presenter

import "time"

// HotkeyRequest asks the UI thread to perform a shell action.
type HotkeyRequest int

const (
	HotkeyToggleAuto HotkeyRequest = iota + 1
)

// Loop drives the periodic UI-thread work: it drains auto-translate outcomes
// and hotkey requests, advances the session presenter and then invokes the
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Shell    *ShellPresenter
	Session  *SessionPresenter
	Outcomes <-chan AutoOutcome
	Hotkeys  <-chan HotkeyRequest
	Schedule func()
}

func NewLoop(shell *ShellPresenter, sess *SessionPresenter, outcomes <-chan AutoOutcome, hotkeys <-chan HotkeyRequest, schedule func()) *Loop {
	return &Loop{Shell: shell, Session: sess, Outcomes: outcomes, Hotkeys: hotkeys, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	l.drainHotkeys()
	// at most one outcome per tick; the channel only ever holds the latest
	if l.Outcomes != nil {
		select {
		case o := <-l.Outcomes:
			l.Shell.ApplyAutoOutcome(o)
		default:
		}
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

func (l *Loop) drainHotkeys() {
	if l.Hotkeys == nil {
		return
	}
	for {
		select {
		case req := <-l.Hotkeys:
			if req == HotkeyToggleAuto {
				_ = l.Shell.ToggleAuto()
			}
		default:
			return
		}
	}
}
