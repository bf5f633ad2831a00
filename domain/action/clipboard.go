package action

import (
	"errors"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard writes text to the system clipboard. Init is performed lazily on
// first use; writes are serialised.
type Clipboard struct {
	once    sync.Once
	initErr error
	mu      sync.Mutex
}

// NewClipboard returns a clipboard writer.
func NewClipboard() *Clipboard { return &Clipboard{} }

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(text string) error {
	if c == nil {
		return errors.New("clipboard: nil writer")
	}
	c.once.Do(func() { c.initErr = clipboard.Init() })
	if c.initErr != nil {
		return c.initErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
