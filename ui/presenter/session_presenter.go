package presenter

import (
	"time"

	"github.com/soocke/pixel-translate-go/ui/model"
)

// AutoEnabledModel reports whether auto-translate is on.
type AutoEnabledModel interface{ Auto() bool }

// SessionView displays the auto-translate session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// StatsView displays pass counters and timings.
type StatsView interface {
	SetPassStats(s model.PassSnapshot)
}

// SessionPresenter pushes session durations and pass counters to the view.
type SessionPresenter struct {
	sess  *model.SessionModel
	auto  AutoEnabledModel
	stats *model.PassStats
	view  SessionView
	sview StatsView
	last  model.PassSnapshot
}

// NewSessionPresenter returns a new SessionPresenter. sview may be nil.
func NewSessionPresenter(sess *model.SessionModel, auto AutoEnabledModel, stats *model.PassStats, view SessionView, sview StatsView) *SessionPresenter {
	return &SessionPresenter{sess: sess, auto: auto, stats: stats, view: view, sview: sview}
}

// Tick advances the session model and pushes values to the view.
// Pass counters are only pushed when they changed.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.auto == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.auto.Auto(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	if p.sview == nil || p.stats == nil {
		return
	}
	if snap := p.stats.Snapshot(); snap != p.last {
		p.last = snap
		p.sview.SetPassStats(snap)
	}
}
