package model

import (
	"sync"
	"time"
)

// PassStats counts translate passes and keeps the timings of the last one.
type PassStats struct {
	mu       sync.Mutex
	passes   uint64
	failures uint64
	lastOCR  time.Duration
	lastAll  time.Duration
}

// PassSnapshot is a copy of PassStats at one point in time.
type PassSnapshot struct {
	Passes   uint64
	Failures uint64
	LastOCR  time.Duration
	LastPass time.Duration
}

// RecordSuccess counts a completed pass.
func (p *PassStats) RecordSuccess(ocr, total time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.passes++
	p.lastOCR, p.lastAll = ocr, total
	p.mu.Unlock()
}

// RecordFailure counts a failed capture or pass.
func (p *PassStats) RecordFailure() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.failures++
	p.mu.Unlock()
}

// Snapshot returns the current counters.
func (p *PassStats) Snapshot() PassSnapshot {
	if p == nil {
		return PassSnapshot{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return PassSnapshot{Passes: p.passes, Failures: p.failures, LastOCR: p.lastOCR, LastPass: p.lastAll}
}
