package action

import (
	"testing"

	hook "github.com/robotn/gohook"
)

func TestRawcodes(t *testing.T) {
	cases := []struct {
		name string
		want []uint16
	}{
		{"ctrl", []uint16{162, 163}},
		{"shift", []uint16{160, 161}},
		{"a", []uint16{65}},
		{"t", []uint16{84}},
		{"z", []uint16{90}},
		{"0", []uint16{48}},
		{"9", []uint16{57}},
		{"f1", []uint16{112}},
		{"f12", []uint16{123}},
		{"f24", []uint16{135}},
		{"esc", []uint16{27}},
		{"f25", nil},
		{"hyper", nil},
	}
	for _, c := range cases {
		got := rawcodes(c.name)
		if len(got) != len(c.want) {
			t.Fatalf("rawcodes(%q) = %v want %v", c.name, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("rawcodes(%q) = %v want %v", c.name, got, c.want)
			}
		}
	}
}

func TestParseHotkey(t *testing.T) {
	c, err := ParseHotkey("Ctrl + Shift + T")
	if err != nil {
		t.Fatal(err)
	}
	keys := c.Keys()
	if len(keys) != 3 || keys[0] != "ctrl" || keys[2] != "t" {
		t.Fatalf("keys = %v", keys)
	}
	if _, err := ParseHotkey("ctrl+banana"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if _, err := ParseHotkey(" + "); err == nil {
		t.Fatalf("expected error for empty combo")
	}
}

func TestCombo_FiresOnceWhenAllHeld(t *testing.T) {
	c, _ := ParseHotkey("ctrl+shift+t")
	if c.Down(162) || c.Down(161) {
		t.Fatalf("partial combination fired")
	}
	if !c.Down(84) {
		t.Fatalf("full combination should fire")
	}
	if c.Down(84) {
		t.Fatalf("state should reset after firing")
	}
}

func TestCombo_ReleaseBreaksCombination(t *testing.T) {
	c, _ := ParseHotkey("ctrl+t")
	c.Down(163)
	c.Up(163)
	if c.Down(84) {
		t.Fatalf("released modifier should not count")
	}
}

func TestHotkeyListener_Handle(t *testing.T) {
	h, err := NewHotkeyListener("alt+f9", nil)
	if err != nil {
		t.Fatal(err)
	}
	if h.handle(hook.Event{Kind: hook.KeyDown, Rawcode: 164}) {
		t.Fatalf("fired on modifier alone")
	}
	if h.handle(hook.Event{Kind: hook.MouseMove}) {
		t.Fatalf("fired on mouse event")
	}
	if !h.handle(hook.Event{Kind: hook.KeyDown, Rawcode: 120}) {
		t.Fatalf("combination not detected")
	}
}
