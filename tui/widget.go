package tui

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ayn2op/vscroll"
)

// Widget hosts a vscroll.List on a tcell screen. Items are slices of text
// lines; the widget translates mouse input into engine drags, steps the
// motion model on its tick, and paints whatever handles the engine has bound.
type Widget struct {
	x, y, width, height int

	list    *vscroll.List
	opts    vscroll.Options
	content *contentHandle
	handles []*itemHandle

	itemText  func(index int) []string
	itemStyle func(index int) tcell.Style
	onSelect  func(index int)

	barStyle tcell.Style
	showBar  bool
	wrap     bool

	lastTick time.Time

	pressed bool
	moved   bool
	lastY   int

	pendingCount int
}

// Wheel ticks are velocity impulses, in rows per second, so wheel and fling
// share one motion path.
const wheelImpulse = 18

// NewWidget returns an unmounted widget. The engine options control spacing,
// buffering, and the pull gestures; orientation and virtualization are fixed
// by the terminal host (vertical, recycled, dynamic line counts).
func NewWidget(opts vscroll.Options) *Widget {
	opts.Horizontal = false
	opts.Virtual = true
	opts.DynamicSize = true
	opts.PixelSnap = true
	if opts.ItemSize <= 0 {
		opts.ItemSize = 1
	}
	return &Widget{
		opts:     opts,
		content:  &contentHandle{},
		showBar:  true,
		barStyle: tcell.StyleDefault.Dim(true),
	}
}

// SetRect positions the widget on the screen.
func (w *Widget) SetRect(x, y, width, height int) *Widget {
	w.x, w.y, w.width, w.height = x, y, width, height
	if w.list != nil {
		w.list.SetViewport(float64(w.innerHeight()), float64(w.innerWidth()))
		if w.wrap {
			// A new width re-wraps every item, so reseed the size table.
			w.list.SetTotalCount(w.list.TotalCount())
		}
	}
	return w
}

// SetItemTextFunc sets the callback producing an item's text lines. The line
// count is the item's height, so items may grow and shrink between renders.
func (w *Widget) SetItemTextFunc(text func(index int) []string) *Widget {
	w.itemText = text
	return w
}

// SetItemStyleFunc sets the per-item style callback.
func (w *Widget) SetItemStyleFunc(style func(index int) tcell.Style) *Widget {
	w.itemStyle = style
	return w
}

// SetSelectedFunc sets the handler invoked when an item is clicked.
func (w *Widget) SetSelectedFunc(selected func(index int)) *Widget {
	w.onSelect = selected
	return w
}

// SetWrap wraps item text lines to the widget's inner width. Wrapped items
// change height with the terminal, which the engine picks up through its
// dynamic size table on the next layout.
func (w *Widget) SetWrap(wrap bool) *Widget {
	w.wrap = wrap
	return w
}

// SetShowScrollBar toggles the right-edge scroll bar.
func (w *Widget) SetShowScrollBar(show bool) *Widget {
	w.showBar = show
	return w
}

// SetTotalCount sets the item count, before or after mounting.
func (w *Widget) SetTotalCount(n int) *Widget {
	w.pendingCount = n
	if w.list != nil {
		w.list.SetTotalCount(n)
	}
	return w
}

// List exposes the underlying engine for scroll commands, gesture finishing,
// and state queries.
func (w *Widget) List() *vscroll.List {
	return w.list
}

// Mount builds the engine and performs the initial layout.
func (w *Widget) Mount() error {
	if w.itemText == nil {
		return errors.New("tui: item text callback not set")
	}
	w.list = vscroll.NewListFromOptions(w.opts).
		SetContentHandle(w.content).
		SetHandleFactory(func(int) vscroll.Handle {
			handle := &itemHandle{style: tcell.StyleDefault}
			w.handles = append(w.handles, handle)
			return handle
		}).
		SetRenderFunc(w.renderItem).
		SetItemSizeFunc(func(index int) float64 {
			return float64(len(w.itemLines(index)))
		}).
		SetItemClickFunc(func(_ vscroll.Handle, index int) {
			if w.onSelect != nil {
				w.onSelect(index)
			}
		}).
		SetViewport(float64(w.innerHeight()), float64(w.innerWidth()))
	w.list.SetTotalCount(w.pendingCount)
	return w.list.Layout()
}

func (w *Widget) renderItem(handle vscroll.Handle, index int) {
	item := handle.(*itemHandle)
	item.lines = w.itemLines(index)
	item.style = tcell.StyleDefault
	if w.itemStyle != nil {
		item.style = w.itemStyle(index)
	}
	item.SetSize(float64(w.innerWidth()), float64(len(item.lines)))
}

// itemLines returns an item's display lines, wrapped to the inner width when
// wrapping is on. The size callback and the renderer both go through here so
// the engine's size table always matches what gets painted.
func (w *Widget) itemLines(index int) []string {
	lines := w.itemText(index)
	if !w.wrap {
		return lines
	}
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, WrapText(line, w.innerWidth())...)
	}
	return wrapped
}

func (w *Widget) innerWidth() int {
	if w.showBar {
		return w.width - 1
	}
	return w.width
}

func (w *Widget) innerHeight() int {
	return w.height
}

// Tick advances the engine by the wall-clock time since the previous tick.
func (w *Widget) Tick(now time.Time) {
	if w.list == nil {
		return
	}
	if !w.lastTick.IsZero() {
		w.list.Step(now.Sub(w.lastTick).Seconds())
	}
	w.lastTick = now
}

// HandleMouse consumes mouse events inside the widget's rectangle: press and
// move become engine drags, a motionless release becomes a tap, and the wheel
// feeds velocity impulses.
func (w *Widget) HandleMouse(event *tcell.EventMouse) bool {
	if w.list == nil {
		return false
	}
	x, y := event.Position()
	buttons := event.Buttons()
	now := time.Now()

	if w.pressed {
		if buttons&tcell.Button1 == 0 {
			w.pressed = false
			w.list.EndDrag(now)
			if !w.moved {
				w.list.Tap(float64(y - w.y))
			}
			return true
		}
		if y != w.lastY {
			w.list.Drag(float64(w.lastY-y), now)
			w.lastY = y
			w.moved = true
		}
		return true
	}

	if !w.inRect(x, y) {
		return false
	}
	switch {
	case buttons&tcell.Button1 != 0:
		w.pressed = true
		w.moved = false
		w.lastY = y
		w.list.BeginDrag(now)
		return true
	case buttons&tcell.WheelUp != 0:
		w.list.Impulse(-wheelImpulse)
		return true
	case buttons&tcell.WheelDown != 0:
		w.list.Impulse(wheelImpulse)
		return true
	}
	return false
}

// HandleKey consumes navigation keys.
func (w *Widget) HandleKey(event *tcell.EventKey) bool {
	if w.list == nil {
		return false
	}
	switch event.Key() {
	case tcell.KeyHome:
		w.list.ScrollToStart(false)
	case tcell.KeyEnd:
		w.list.ScrollToEnd(false)
	case tcell.KeyPgUp:
		w.list.Impulse(-4 * float64(w.innerHeight()))
	case tcell.KeyPgDn:
		w.list.Impulse(4 * float64(w.innerHeight()))
	case tcell.KeyUp:
		w.list.Impulse(-wheelImpulse / 3)
	case tcell.KeyDown:
		w.list.Impulse(wheelImpulse / 3)
	default:
		return false
	}
	return true
}

func (w *Widget) inRect(x, y int) bool {
	return x >= w.x && x < w.x+w.width && y >= w.y && y < w.y+w.height
}

// Draw paints the widget: bound items shifted by the content offset, gesture
// banners at the pulled edge, and the scroll bar.
func (w *Widget) Draw(screen tcell.Screen) {
	if w.list == nil {
		return
	}
	innerW, innerH := w.innerWidth(), w.innerHeight()
	for row := 0; row < w.height; row++ {
		for col := 0; col < w.width; col++ {
			screen.SetContent(w.x+col, w.y+row, ' ', nil, tcell.StyleDefault)
		}
	}

	shift := w.content.y
	for _, handle := range w.handles {
		if !handle.active {
			continue
		}
		top := int(-handle.y - shift)
		for i, line := range handle.lines {
			row := top + i
			if row < 0 || row >= innerH {
				continue
			}
			putLine(screen, w.x, w.y+row, innerW, line, handle.style)
		}
	}

	if banner := refreshBanner(w.list.RefreshState()); banner != "" {
		putLine(screen, w.x, w.y, innerW, banner, w.barStyle)
	}
	if banner := loadMoreBanner(w.list.LoadMoreState()); banner != "" {
		putLine(screen, w.x, w.y+innerH-1, innerW, banner, w.barStyle)
	}

	if w.showBar {
		drawBar(screen, w.x+w.width-1, w.y, innerH,
			w.list.ContentSize(), float64(innerH), w.list.Position(), w.barStyle)
	}
}

func refreshBanner(state vscroll.RefreshState) string {
	switch state {
	case vscroll.RefreshPulling:
		return "· pull to refresh"
	case vscroll.RefreshReady:
		return "· release to refresh"
	case vscroll.Refreshing:
		return "· refreshing"
	case vscroll.RefreshComplete:
		return "· refreshed"
	}
	return ""
}

func loadMoreBanner(state vscroll.LoadMoreState) string {
	switch state {
	case vscroll.LoadMorePulling:
		return "· pull to load more"
	case vscroll.LoadMoreReady:
		return "· release to load"
	case vscroll.Loading:
		return "· loading"
	case vscroll.LoadMoreComplete:
		return "· loaded"
	case vscroll.NoMore:
		return "· no more items"
	}
	return ""
}
