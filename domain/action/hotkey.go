package action

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// Combo is a parsed hotkey such as "ctrl+shift+t". Each key maps to the
// virtual-key rawcodes gohook reports on Windows; modifiers match either side.
type Combo struct {
	Spec string
	keys []comboKey
}

type comboKey struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

// ParseHotkey parses a "+"-separated key combination.
func ParseHotkey(spec string) (*Combo, error) {
	parts := strings.Split(strings.ToLower(spec), "+")
	c := &Combo{Spec: spec}
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		codes := rawcodes(name)
		if len(codes) == 0 {
			return nil, fmt.Errorf("hotkey %q: unknown key %q", spec, name)
		}
		c.keys = append(c.keys, comboKey{name: name, rawcodes: codes})
	}
	if len(c.keys) == 0 {
		return nil, fmt.Errorf("hotkey %q: no keys", spec)
	}
	return c, nil
}

// Keys returns the normalised key names.
func (c *Combo) Keys() []string {
	out := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, k.name)
	}
	return out
}

// Down records a key press and reports whether the whole combination is now
// held. The pressed state resets after a match so holding the keys fires once.
func (c *Combo) Down(code uint16) bool {
	for i := range c.keys {
		if c.keys[i].matches(code) {
			c.keys[i].pressed = true
		}
	}
	for _, k := range c.keys {
		if !k.pressed {
			return false
		}
	}
	c.Reset()
	return true
}

// Up records a key release.
func (c *Combo) Up(code uint16) {
	for i := range c.keys {
		if c.keys[i].matches(code) {
			c.keys[i].pressed = false
		}
	}
}

// Reset clears the pressed state.
func (c *Combo) Reset() {
	for i := range c.keys {
		c.keys[i].pressed = false
	}
}

func (k comboKey) matches(code uint16) bool {
	for _, rc := range k.rawcodes {
		if rc == code {
			return true
		}
	}
	return false
}

var specialKeys = map[string][]uint16{
	"ctrl":      {162, 163},
	"control":   {162, 163},
	"alt":       {164, 165},
	"shift":     {160, 161},
	"win":       {91, 92},
	"cmd":       {91, 92},
	"super":     {91, 92},
	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"insert":    {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pagedown":  {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

// rawcodes maps a key name to Windows virtual-key codes.
func rawcodes(name string) []uint16 {
	if codes, ok := specialKeys[name]; ok {
		return codes
	}
	if len(name) == 1 {
		switch ch := name[0]; {
		case ch >= 'a' && ch <= 'z':
			return []uint16{uint16(ch-'a') + 'A'}
		case ch >= '0' && ch <= '9':
			return []uint16{uint16(ch)}
		}
	}
	if strings.HasPrefix(name, "f") {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)} // VK_F1 = 112
		}
	}
	return nil
}

// HotkeyListener delivers a callback whenever its combination is pressed
// anywhere on the desktop.
type HotkeyListener struct {
	combo  *Combo
	logger *slog.Logger
	mu     sync.Mutex
}

// NewHotkeyListener parses spec and returns a listener.
func NewHotkeyListener(spec string, logger *slog.Logger) (*HotkeyListener, error) {
	c, err := ParseHotkey(spec)
	if err != nil {
		return nil, err
	}
	return &HotkeyListener{combo: c, logger: logger}, nil
}

// Listen starts the global hook and calls fn on every match until ctx is
// cancelled. fn runs on the hook goroutine and must not touch widgets.
func (h *HotkeyListener) Listen(ctx context.Context, fn func()) {
	evChan := hook.Start()
	if evChan == nil {
		if h.logger != nil {
			h.logger.Error("hotkey hook unavailable", "hotkey", h.combo.Spec)
		}
		return
	}
	if h.logger != nil {
		h.logger.Info("hotkey listener started", "hotkey", h.combo.Spec, "keys", h.combo.Keys())
	}
	go func() {
		defer func() {
			if r := recover(); r != nil && h.logger != nil {
				h.logger.Error("hotkey listener panic", "panic", r)
			}
		}()
		defer hook.End()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-evChan:
				if !ok {
					return
				}
				if h.handle(ev) && fn != nil {
					fn()
				}
			}
		}
	}()
}

func (h *HotkeyListener) handle(ev hook.Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch ev.Kind {
	case hook.KeyDown:
		if h.combo.Down(ev.Rawcode) {
			if h.logger != nil {
				h.logger.Debug("hotkey pressed", "hotkey", h.combo.Spec)
			}
			return true
		}
	case hook.KeyUp:
		h.combo.Up(ev.Rawcode)
	}
	return false
}
