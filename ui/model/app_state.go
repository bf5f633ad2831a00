package model

import (
	"image"
	"sync"
)

// ImageSource records where the current image came from.
type ImageSource int

const (
	SourceNone ImageSource = iota
	SourceSelection
	SourceCapture
	SourceFile
)

func (s ImageSource) String() string {
	switch s {
	case SourceSelection:
		return "selection"
	case SourceCapture:
		return "capture"
	case SourceFile:
		return "file"
	default:
		return "none"
	}
}

// AppState owns the region, the auto-translate flag, the current image and the
// last translation result. One mutex guards all of them so the UI thread and
// the auto-translate task never observe a torn region/flag/image triple.
// The zero value is usable; methods are nil-safe.
type AppState struct {
	mu       sync.Mutex
	region   image.Rectangle
	auto     bool
	img      image.Image
	source   ImageSource
	sequence uint64
	srcText  string
	dstText  string
}

// NewAppState returns an empty state.
func NewAppState() *AppState { return &AppState{} }

// Region returns the capture region and whether it is set. Zero-area
// rectangles count as unset.
func (s *AppState) Region() (image.Rectangle, bool) {
	if s == nil {
		return image.Rectangle{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region, regionSet(s.region)
}

// SetRegion stores r. A zero-area rectangle clears the region.
func (s *AppState) SetRegion(r image.Rectangle) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !regionSet(r) {
		s.region = image.Rectangle{}
		return
	}
	s.region = r.Canon()
}

// ClearRegion forgets the capture region.
func (s *AppState) ClearRegion() { s.SetRegion(image.Rectangle{}) }

// Auto reports whether auto-translate is on.
func (s *AppState) Auto() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auto
}

// EnableAuto turns auto-translate on. It refuses, leaving the flag false,
// when no region is set.
func (s *AppState) EnableAuto() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !regionSet(s.region) {
		s.auto = false
		return false
	}
	s.auto = true
	return true
}

// DisableAuto turns auto-translate off and reports whether it was on.
func (s *AppState) DisableAuto() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.auto
	s.auto = false
	return was
}

// AutoRegion returns the region to capture for an auto tick. ok is false
// when auto mode is off or the region is unset; both are read under one lock.
func (s *AppState) AutoRegion() (image.Rectangle, bool) {
	if s == nil {
		return image.Rectangle{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.auto || !regionSet(s.region) {
		return image.Rectangle{}, false
	}
	return s.region, true
}

// SetImage replaces the current image and returns its sequence number.
func (s *AppState) SetImage(img image.Image, src ImageSource) uint64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	s.source = src
	s.sequence++
	return s.sequence
}

// SetCaptured stores an auto-captured image, but only while auto mode is
// still on. It returns the new sequence and whether the image was kept.
func (s *AppState) SetCaptured(img image.Image) (uint64, bool) {
	if s == nil {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.auto {
		return s.sequence, false
	}
	s.img = img
	s.source = SourceCapture
	s.sequence++
	return s.sequence, true
}

// Image returns the current image (nil when none), its source and sequence.
func (s *AppState) Image() (image.Image, ImageSource, uint64) {
	if s == nil {
		return nil, SourceNone, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img, s.source, s.sequence
}

// SetResult overwrites the translation result pair.
func (s *AppState) SetResult(source, target string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.srcText, s.dstText = source, target
}

// Result returns the last translation result pair.
func (s *AppState) Result() (source, target string) {
	if s == nil {
		return "", ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srcText, s.dstText
}

func regionSet(r image.Rectangle) bool { return r.Dx() > 0 && r.Dy() > 0 }
