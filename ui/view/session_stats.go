package view

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/pixel-translate-go/ui/model"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows auto-translate durations and pass counters.
type SessionStats interface {
	SetSession(session, total time.Duration)
	SetPassStats(s model.PassSnapshot)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	passLbl    *LabelWidget
}

// NewSessionStats creates the stats labels in parent, starting at (row, startCol).
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(16)), totalLbl: Label(Width(14)), passLbl: Label(Width(44), Anchor("w"))}
	Grid(s.sessionLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.passLbl, In(parent), Row(row), Column(startCol+2), Sticky("w"), Padx("0.2m"))
	s.SetSession(0, 0)
	s.SetPassStats(model.PassSnapshot{})
	return s
}

func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Auto: " + clock(session)))
	s.totalLbl.Configure(Txt("Total: " + clock(total)))
}

func (s *sessionStats) SetPassStats(p model.PassSnapshot) {
	if s == nil || s.passLbl == nil {
		return
	}
	text := fmt.Sprintf("Passes: %s  Failures: %s", humanize.Comma(int64(p.Passes)), humanize.Comma(int64(p.Failures)))
	if p.Passes > 0 {
		text += fmt.Sprintf("  Last: OCR %s / %s", p.LastOCR.Round(time.Millisecond), p.LastPass.Round(time.Millisecond))
	}
	s.passLbl.Configure(Txt(text))
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
