package presenter

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/soocke/pixel-translate-go/domain/capture"
)

type mockView struct {
	statuses []string
	auto     bool
	autoSets int
	images   []image.Image
	source   string
	target   string
	texts    int
	editable bool
}

func (v *mockView) SetStatus(text string) { v.statuses = append(v.statuses, text) }
func (v *mockView) SetAutoLabel(on bool)  { v.auto = on; v.autoSets++ }
func (v *mockView) ConfigEditable(enabled bool) { v.editable = enabled }
func (v *mockView) ShowImage(img image.Image) {
	v.images = append(v.images, img)
}
func (v *mockView) ShowTexts(source, target string) {
	v.source, v.target = source, target
	v.texts++
}

func (v *mockView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

type fakeOCR struct {
	text  string
	err   error
	calls atomic.Int32
}

func (f *fakeOCR) Recognize(context.Context, image.Image) (string, error) {
	f.calls.Add(1)
	return f.text, f.err
}

// markerTranslator behaves like the translation adapter over a fixed model:
// the direction marker is prepended before the lookup.
type markerTranslator struct {
	table map[string]string
	err   error
}

func (m *markerTranslator) Translate(_ context.Context, text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.table["ja2zh: "+text], nil
}

type fakeCapturer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeCapturer) Capture(_ context.Context, r image.Rectangle) (capture.Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return capture.Frame{}, f.err
	}
	return capture.Frame{Image: image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), Region: r, Sequence: uint64(f.calls)}, nil
}

func (f *fakeCapturer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

var errBoom = errors.New("boom")
