package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-translate-go/config"
	"github.com/soocke/pixel-translate-go/debug"
	"github.com/soocke/pixel-translate-go/domain/action"
	"github.com/soocke/pixel-translate-go/ui/presenter"
	"github.com/soocke/pixel-translate-go/ui/theme"
	"github.com/soocke/pixel-translate-go/ui/view"
)

const (
	tick = 100 * time.Millisecond
	// hideDelay gives the window manager time to hide the main window before
	// the selector backdrop is grabbed.
	hideDelay = 200 * time.Millisecond
)

type app struct {
	c       *AppContainer
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	afterID string

	hotkeys  chan presenter.HotkeyRequest
	selector view.RegionSelector
	closed   bool
}

// NewApp prepares the main window. ctx is the application lifetime; the app
// cancels its own child context on exit.
func NewApp(ctx context.Context, title string, c *AppContainer) *app {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{
		c:        c,
		logger:   c.Logger,
		ctx:      ctx,
		cancel:   cancel,
		hotkeys:  make(chan presenter.HotkeyRequest, 4),
		selector: view.NewRegionSelector(c.Config.SelectionOutlineColor, c.Logger),
	}

	App.WmTitle(title)
	theme.SetDark(c.Config.DarkMode)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, "+100+100")
	return a
}

// Start builds the UI, launches the background workers and blocks in the Tk
// event loop until the window closes.
func (a *app) Start() {
	c := a.c
	c.RootView.Build(view.Handlers{
		OnLoadImage:     func(path string) { _ = c.Shell.LoadImage(path) },
		OnSetRegion:     a.setRegion,
		OnTranslate:     func() { _ = c.Shell.TranslateOnce() },
		OnToggleAuto:    func() { _ = c.Shell.ToggleAuto() },
		OnCopy:          func() { _ = c.Shell.CopyTranslation() },
		OnExit:          a.exitHandler,
		OnConfigApplied: a.configApplied,
	})
	c.Shell.Init()

	c.Auto.Start(a.ctx)
	a.startHotkey()
	if c.Config.Debug {
		a.startDebug()
	}

	c.Loop = presenter.NewLoop(c.Shell, c.SessionPresenter, c.Auto.Outcomes(), a.hotkeys, a.scheduleUpdate)
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// TclAfter keeps every widget update on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

// setRegion hides the main window, grabs the screen and opens the selector
// over that snapshot. The window comes back once the selector finishes.
func (a *app) setRegion() {
	if a.selector.Opened() {
		return
	}
	a.c.Shell.BeginSelection()
	WmAttributes(App, "-alpha", 0.0)
	TclAfter(hideDelay, func() {
		frame, err := a.c.CaptureSvc.CaptureScreen(a.ctx)
		if err != nil {
			WmAttributes(App, "-alpha", 1.0)
			a.logger.Error("screen snapshot failed", "error", err)
			a.c.RootView.SetStatus(fmt.Sprintf("Screen capture failed: %v", err))
			return
		}
		a.selector.Open(frame.Image, func(r image.Rectangle, snapshot image.Image, ok bool) {
			WmAttributes(App, "-alpha", 1.0)
			a.c.Shell.FinishSelection(r, snapshot, ok)
		})
	})
}

// startHotkey registers the global toggle. The hook goroutine never touches
// widgets; it queues a request that the UI loop drains.
func (a *app) startHotkey() {
	l, err := action.NewHotkeyListener(a.c.Config.Hotkey, a.logger)
	if err != nil {
		a.logger.Error("hotkey disabled", "hotkey", a.c.Config.Hotkey, "error", err)
		return
	}
	l.Listen(a.ctx, func() {
		select {
		case a.hotkeys <- presenter.HotkeyToggleAuto:
		default:
		}
	})
}

func (a *app) startDebug() {
	debug.StartGoroutineLogger(a.ctx, 30*time.Second, a.logger)
	debug.StartMemLogger(a.ctx, 30*time.Second, a.logger)
	go func() {
		t := time.NewTicker(30 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-a.ctx.Done():
				return
			case <-t.C:
				a.c.CaptureSvc.LogStats()
			}
		}
	}()
}

func (a *app) configApplied(cfg *config.Config) {
	a.c.ApplyConfig(cfg)
	if theme.IsDark() != cfg.DarkMode {
		theme.SetDark(cfg.DarkMode)
	}
	a.c.RootView.SetStatus("Settings saved.")
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.State.DisableAuto()
	a.cancel()
	a.c.Auto.Stop()
	a.c.Close()
	a.logger.Info("exiting", "auto_cycles", a.c.Auto.Cycles())
	Destroy(App)
}
