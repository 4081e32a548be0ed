package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ayn2op/vscroll"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The motion model is stepped and the screen redrawn at this rate.
	frameInterval = time.Second / 60
)

// queuedUpdate represents the execution of f queued by App.QueueUpdate. If
// done is not nil, it receives exactly one element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// App owns the terminal screen and drives a Widget: it routes key and mouse
// events into the widget, steps the scroll physics on a fixed frame tick, and
// redraws after every frame. Because the widget animates between input events,
// drawing hangs off the tick rather than off event handling.
type App struct {
	screen  tcell.Screen
	widget  *Widget
	updates chan queuedUpdate
	quit    chan struct{}

	// inputCapture sees key events before the widget; returning nil swallows
	// the event.
	inputCapture func(event *tcell.EventKey) *tcell.EventKey
}

// NewApp creates and returns a new application hosting the given widget.
func NewApp(widget *Widget) *App {
	return &App{
		widget:  widget,
		updates: make(chan queuedUpdate, updatesQueueSize),
		quit:    make(chan struct{}),
	}
}

// SetScreen sets the application's screen. Without one, Run allocates and
// initializes a default terminal screen.
func (a *App) SetScreen(screen tcell.Screen) *App {
	if a.screen == nil {
		a.screen = screen
	}
	return a
}

// SetInputCapture installs a key event hook ahead of the widget.
func (a *App) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) *App {
	a.inputCapture = capture
	return a
}

// Run starts the event loop. It returns when Stop is called or the user quits
// with Ctrl-C or Escape.
func (a *App) Run() error {
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err = screen.Init(); err != nil {
			return err
		}
		a.screen = screen
	}
	a.screen.EnableMouse()

	// Panics mess up the terminal; restore it before re-raising.
	defer func() {
		if p := recover(); p != nil {
			a.screen.Fini()
			panic(p)
		}
	}()
	defer a.screen.Fini()

	width, height := a.screen.Size()
	a.widget.SetRect(0, 0, width, height)
	if a.widget.List() == nil {
		if err := a.widget.Mount(); err != nil {
			return err
		}
	}

	events := make(chan tcell.Event, 16)
	go a.screen.ChannelEvents(events, a.quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case event := <-events:
			if event == nil {
				return nil
			}
			switch event := event.(type) {
			case *tcell.EventKey:
				if a.inputCapture != nil {
					if event = a.inputCapture(event); event == nil {
						break
					}
				}
				if event.Key() == tcell.KeyCtrlC || event.Key() == tcell.KeyEscape {
					a.Stop()
					break
				}
				a.widget.HandleKey(event)
			case *tcell.EventMouse:
				a.widget.HandleMouse(event)
			case *tcell.EventResize:
				width, height := event.Size()
				a.widget.SetRect(0, 0, width, height)
				a.screen.Sync()
			case *tcell.EventError:
				vscroll.Logger.Err(event).Msg("screen event error")
				a.Stop()
			}

		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}

		case now := <-ticker.C:
			a.widget.Tick(now)
			a.widget.Draw(a.screen)
			a.screen.Show()
		}
	}
}

// Stop ends the event loop, at most once.
func (a *App) Stop() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// QueueUpdate queues a function to execute on the event loop, serializing it
// with input handling and drawing. It blocks until the function has run; data
// loaders finishing a refresh from a goroutine go through here.
func (a *App) QueueUpdate(f func()) {
	done := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: done}:
	case <-a.quit:
		return
	}
	select {
	case <-done:
	case <-a.quit:
	}
}
