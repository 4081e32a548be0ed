package vscroll

import (
	"errors"
	"math"
	"time"
)

// List is a virtualized scroll widget: it renders only the visible slice of a
// potentially huge item collection through a fixed pool of recycled display
// handles, while driving a physically plausible scroll motion with boundary
// springs and the pull-to-refresh / load-more gestures.
//
// All methods must be called from the host's single event/frame loop; the
// engine performs no locking.
type List struct {
	opts Options

	horizontal  bool
	virtual     bool
	dynamic     bool
	itemSize    float64
	spacing     float64
	gridCount   int
	gridSpacing float64
	buffer      int
	typeCount   int

	viewMain  float64
	viewCross float64

	totalCount int
	table      *SizeTable
	pool       *SlotPool
	slots      []slot
	slotFirst  int
	sizeDirty  bool
	started    bool

	scroll   scrollState
	drag     dragTracker
	dragging bool
	anim     *scrollAnim

	refresh  refreshGesture
	loadMore loadMoreGesture

	appearPending map[int]struct{}

	content    Handle
	factory    HandleFactory
	provider   HandleProvider
	render     func(handle Handle, index int)
	itemSizeFn func(index int) float64
	itemTypeFn func(index int) int
	clickFn    func(handle Handle, index int)
	appearFn   func(handle Handle, index int)
}

// Deltas dragged past a boundary while no gesture owns it are still damped so
// the edge feels attached.
const boundaryDragResistance = 0.5

// scrollAnim is an in-flight programmatic scroll.
type scrollAnim struct {
	from, to float64
	duration float64
	elapsed  float64
}

const scrollDuration = 0.3

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// NewList returns a virtualized vertical list with default options.
func NewList() *List {
	return NewListFromOptions(Options{Virtual: true})
}

// NewListFromOptions returns a list configured by opts. The deprecated
// RecycleNodes flag is migrated into Virtual here, one-directionally; nothing
// else reads it.
func NewListFromOptions(opts Options) *List {
	if opts.RecycleNodes {
		opts.Virtual = true
	}
	opts = opts.withDefaults()
	l := &List{
		opts:          opts,
		horizontal:    opts.Horizontal,
		virtual:       opts.Virtual,
		dynamic:       opts.DynamicSize,
		itemSize:      opts.ItemSize,
		spacing:       opts.Spacing,
		gridCount:     opts.GridCount,
		gridSpacing:   opts.GridSpacing,
		buffer:        opts.Buffer,
		typeCount:     opts.TypeCount,
		appearPending: make(map[int]struct{}),
	}
	l.scroll.pixelSnap = opts.PixelSnap
	l.refresh.cfg = DefaultPullConfig()
	l.loadMore.cfg = DefaultPullConfig()
	l.loadMore.hasMore = true
	return l
}

// SetViewport sets the viewport extents: main is the scroll-axis length,
// cross the perpendicular one.
func (l *List) SetViewport(main, cross float64) *List {
	l.viewMain = main
	l.viewCross = cross
	if l.started {
		l.updateBounds()
		l.scroll.position = l.scroll.clampPosition(l.scroll.position)
		l.afterScroll(true)
	}
	return l
}

// SetContentHandle sets the container handle moved to reflect the scroll
// position. Optional; hosts may instead poll Position.
func (l *List) SetContentHandle(handle Handle) *List {
	l.content = handle
	return l
}

// SetHandleFactory sets the per-type display handle factory used by the slot
// pool. Required in virtual mode unless a provider is set.
func (l *List) SetHandleFactory(factory HandleFactory) *List {
	l.factory = factory
	return l
}

// SetHandleProviderFunc sets a per-index handle provider, used when the list
// does not recycle nodes.
func (l *List) SetHandleProviderFunc(provider HandleProvider) *List {
	l.provider = provider
	return l
}

// SetRenderFunc sets the callback invoked whenever a slot is (re)bound to an
// index. The callback may resize the handle; the engine measures it
// afterwards and corrects its size table.
func (l *List) SetRenderFunc(render func(handle Handle, index int)) *List {
	l.render = render
	return l
}

// SetItemSizeFunc sets the per-item main-axis size callback for dynamic-size
// mode.
func (l *List) SetItemSizeFunc(size func(index int) float64) *List {
	l.itemSizeFn = size
	return l
}

// SetItemTypeFunc sets the per-item type callback for multi-shape mode.
func (l *List) SetItemTypeFunc(typeIndex func(index int) int) *List {
	l.itemTypeFn = typeIndex
	return l
}

// SetItemClickFunc sets the handler invoked by Tap.
func (l *List) SetItemClickFunc(click func(handle Handle, index int)) *List {
	l.clickFn = click
	return l
}

// SetAppearFunc sets the hook played once when a newly appended item is first
// bound.
func (l *List) SetAppearFunc(appear func(handle Handle, index int)) *List {
	l.appearFn = appear
	return l
}

// SetRefreshChangedFunc sets the pull-to-refresh state notification. It
// fires exactly once per distinct state value.
func (l *List) SetRefreshChangedFunc(changed func(state RefreshState, offset float64)) *List {
	l.refresh.changed = changed
	return l
}

// SetLoadMoreChangedFunc sets the load-more state notification.
func (l *List) SetLoadMoreChangedFunc(changed func(state LoadMoreState, offset float64)) *List {
	l.loadMore.changed = changed
	return l
}

// SetRefreshConfig tunes the pull-to-refresh gesture.
func (l *List) SetRefreshConfig(cfg PullConfig) *List {
	l.refresh.cfg = cfg
	return l
}

// SetLoadMoreConfig tunes the load-more gesture.
func (l *List) SetLoadMoreConfig(cfg PullConfig) *List {
	l.loadMore.cfg = cfg
	return l
}

// Layout validates the configuration and performs the initial bind. A
// misconfigured list logs the problem, stays inert, and returns the error.
func (l *List) Layout() error {
	if err := l.validate(); err != nil {
		Logger.Err(err).Msg("layout aborted")
		return err
	}

	if l.dynamic {
		l.table = NewSizeTable(l.spacing)
		l.table.Rebuild(l.totalCount, l.initialSize)
	}
	factory := l.factory
	if factory == nil {
		// Provider-backed lists never reach the pool's create path, but
		// the pool still tracks releases at teardown.
		factory = func(int) Handle { return nil }
	}
	l.pool = NewSlotPool(factory, l.typeCount)

	l.slots = make([]slot, l.slotCount())
	for i := range l.slots {
		l.slots[i].index = -1
	}
	l.slotFirst = 0

	l.updateBounds()
	l.scroll.position = l.scroll.clampPosition(l.scroll.position)
	l.started = true
	l.reconcile(l.computeFirstIndex(l.scroll.position), true)
	l.syncContent()
	return nil
}

func (l *List) validate() error {
	if l.viewMain <= 0 {
		return errors.New("viewport not set")
	}
	if l.dynamic && l.itemSizeFn == nil && (l.itemTypeFn == nil || l.factory == nil) {
		return errors.New("dynamic-size mode needs an item size callback, or an item type callback with a handle factory")
	}
	if l.virtual && l.factory == nil {
		return errors.New("virtual mode needs a handle factory")
	}
	if !l.virtual && l.factory == nil && l.provider == nil {
		return errors.New("list needs a handle factory or provider")
	}
	return nil
}

// initialSize seeds the size table: the size callback when present, keeping
// any previously measured size, otherwise the configured estimate.
func (l *List) initialSize(index int) float64 {
	if l.itemSizeFn != nil {
		return l.itemSizeFn(index)
	}
	if l.table != nil && index < l.table.Len() {
		return l.table.Size(index)
	}
	return l.itemSize
}

// slotCount returns the configured or derived slot window size. Non-virtual
// lists materialize every item.
func (l *List) slotCount() int {
	if !l.virtual {
		return l.totalCount
	}
	if l.opts.SlotCount > 0 {
		return l.opts.SlotCount
	}
	stride := l.itemSize + l.spacing
	lines := int(math.Ceil(l.viewMain/stride)) + 1 + 2*l.buffer
	return lines * l.gridCount
}

func (l *List) contentSize() float64 {
	if l.dynamic {
		// The table exists only once Layout has run.
		if l.table == nil {
			return 0
		}
		return l.table.ContentSize()
	}
	lines := (l.totalCount + l.gridCount - 1) / l.gridCount
	if lines == 0 {
		return 0
	}
	return float64(lines)*(l.itemSize+l.spacing) - l.spacing
}

func (l *List) updateBounds() {
	l.scroll.min = 0
	l.scroll.max = math.Max(0, l.contentSize()-l.viewMain)
}

// SetTotalCount sets the number of items and performs a hard relayout of the
// current window. Appended items are flagged for the appear hook.
func (l *List) SetTotalCount(n int) {
	if n < 0 {
		Logger.Warn().Int("count", n).Msg("negative total count clamped to 0")
		n = 0
	}
	old := l.totalCount
	l.totalCount = n

	if l.appearFn != nil {
		for i := old; i < n; i++ {
			l.appearPending[i] = struct{}{}
		}
	}
	for i := range l.appearPending {
		if i >= n {
			delete(l.appearPending, i)
		}
	}

	if !l.started {
		return
	}
	if l.dynamic {
		l.table.Rebuild(n, l.initialSize)
	}
	if !l.virtual {
		l.releaseSlots()
		l.slots = make([]slot, n)
		for i := range l.slots {
			l.slots[i].index = -1
		}
		l.slotFirst = 0
	}
	l.updateBounds()
	l.scroll.position = l.scroll.clampPosition(l.scroll.position)
	l.reconcile(l.computeFirstIndex(l.scroll.position), true)
	l.syncContent()
}

// TotalCount returns the current item count.
func (l *List) TotalCount() int {
	return l.totalCount
}

// UpdateItemSize records a new main-axis size for one item. A non-positive
// size re-queries the size callback. Only meaningful in dynamic-size mode.
func (l *List) UpdateItemSize(index int, size float64) {
	if !l.dynamic {
		Logger.Warn().Int("index", index).Msg("item size update on a fixed-size list")
		return
	}
	if l.table == nil {
		Logger.Warn().Int("index", index).Msg("item size update before layout")
		return
	}
	if size <= 0 {
		size = l.initialSize(index)
	}
	if !l.table.SetSize(index, size) {
		return
	}
	l.afterSizeEdit()
}

// UpdateItemSizes applies a batch of size edits with a single rebuild.
func (l *List) UpdateItemSizes(sizes map[int]float64) {
	if !l.dynamic {
		Logger.Warn().Msg("item size update on a fixed-size list")
		return
	}
	if l.table == nil {
		Logger.Warn().Msg("item size update before layout")
		return
	}
	if !l.table.SetSizes(sizes) {
		return
	}
	l.afterSizeEdit()
}

func (l *List) afterSizeEdit() {
	if !l.started {
		return
	}
	l.updateBounds()
	l.scroll.position = l.scroll.clampPosition(l.scroll.position)
	l.reconcile(l.computeFirstIndex(l.scroll.position), true)
	l.syncContent()
}

// RefreshIndex re-invokes the render callback for a currently visible index
// without relayout. Indices outside the window are a logged no-op.
func (l *List) RefreshIndex(index int) {
	s := l.slotFor(index)
	if s == nil || s.handle == nil {
		Logger.Warn().Int("index", index).Msg("refresh of an index outside the window")
		return
	}
	if l.render != nil {
		l.render(s.handle, index)
	}
}

// ScrollToIndex scrolls so the item is at the start of the viewport, clamped
// to the content bounds, optionally animated.
func (l *List) ScrollToIndex(index int, animated bool) {
	l.scrollTo(l.indexTarget(index), animated)
}

// ScrollToStart scrolls to the content start.
func (l *List) ScrollToStart(animated bool) {
	l.scrollTo(l.scroll.min, animated)
}

// ScrollToEnd scrolls to the content end.
func (l *List) ScrollToEnd(animated bool) {
	l.scrollTo(l.scroll.max, animated)
}

// FlashToIndex jumps to the item immediately, with no animation. Pending
// appear flags survive the jump; skipped items still animate on first bind.
func (l *List) FlashToIndex(index int) {
	l.scrollTo(l.indexTarget(index), false)
}

// FlashToStart jumps to the content start immediately.
func (l *List) FlashToStart() {
	l.scrollTo(l.scroll.min, false)
}

// FlashToEnd jumps to the content end immediately.
func (l *List) FlashToEnd() {
	l.scrollTo(l.scroll.max, false)
}

func (l *List) indexTarget(index int) float64 {
	if l.totalCount == 0 {
		return l.scroll.min
	}
	if index < 0 {
		index = 0
	}
	if index > l.totalCount-1 {
		index = l.totalCount - 1
	}
	return l.scroll.clampPosition(l.itemStart(index))
}

func (l *List) scrollTo(target float64, animated bool) {
	if !l.started {
		Logger.Warn().Msg("scroll before layout")
		return
	}
	l.cancelAnim()
	if animated {
		l.anim = &scrollAnim{from: l.scroll.position, to: target, duration: scrollDuration}
		return
	}
	l.scroll.position = target
	l.scroll.velocity = 0
	l.afterScroll(false)
}

func (l *List) cancelAnim() {
	if l.anim == nil {
		return
	}
	l.anim = nil
	l.scroll.velocity = 0
	l.drag.clear()
}

// FinishRefresh ends an in-progress refresh. On success the gesture reports
// Complete and auto-idles shortly after; otherwise it reports Idle at once.
// Either way the hold is released and the spring returns the position.
func (l *List) FinishRefresh(success bool) {
	l.refresh.finish(success)
}

// FinishLoadMore ends an in-progress load. With hasMore false the gesture
// parks in NoMore until ResetLoadMoreState.
func (l *List) FinishLoadMore(hasMore bool) {
	l.loadMore.finish(hasMore)
}

// ResetLoadMoreState re-arms the load-more gesture from any state.
func (l *List) ResetLoadMoreState() {
	l.loadMore.reset()
}

// BeginDrag starts a drag. Any in-flight animation or residual momentum is
// cancelled so no stale motion leaks into the new interaction.
func (l *List) BeginDrag(now time.Time) {
	l.cancelAnim()
	l.dragging = true
	l.scroll.velocity = 0
	l.drag.clear()
	_ = now
}

// Drag feeds one drag delta, in scroll-position units: positive scrolls
// toward the end. Boundary overscroll is routed through the pull gestures.
func (l *List) Drag(delta float64, now time.Time) {
	if !l.dragging {
		return
	}
	l.drag.add(now, delta)
	l.applyDrag(delta)
}

// EndDrag releases the drag: a triggered gesture consumes the momentum,
// otherwise the estimated release velocity starts a fling.
func (l *List) EndDrag(now time.Time) {
	if !l.dragging {
		return
	}
	l.dragging = false
	velocity := l.drag.releaseVelocity(now)
	l.drag.clear()

	triggered := false
	if l.refresh.release() {
		triggered = true
	}
	if l.loadMore.release() {
		triggered = true
	}
	if triggered {
		l.scroll.velocity = 0
		return
	}
	l.scroll.velocity = velocity
}

func (l *List) applyDrag(delta float64) {
	st := &l.scroll
	switch {
	case st.position < st.min || (st.position == st.min && delta < 0):
		applied := l.pullStart(-delta)
		st.position -= applied
	case st.position > st.max || (st.position == st.max && delta > 0):
		applied := l.pullEnd(delta)
		st.position += applied
	default:
		st.position += delta
		if st.position < st.min {
			over := st.min - st.position
			st.position = st.min - l.pullStart(over)
		} else if st.position > st.max {
			over := st.position - st.max
			st.position = st.max + l.pullEnd(over)
		}
	}
	l.afterScroll(false)
}

// pullStart consumes outward overscroll at the start boundary (positive =
// further out).
func (l *List) pullStart(outward float64) float64 {
	if l.opts.RefreshEnabled {
		switch l.refresh.state {
		case RefreshIdle, RefreshPulling, RefreshReady:
			return l.refresh.pull(outward)
		}
	}
	return l.rubberBand(outward, l.scroll.min-l.scroll.position)
}

// pullEnd consumes outward overscroll at the end boundary. Entry into the
// load-more gesture is blocked while hasMore is false.
func (l *List) pullEnd(outward float64) float64 {
	if l.opts.LoadMoreEnabled {
		switch l.loadMore.state {
		case LoadMoreIdle:
			if l.loadMore.hasMore {
				return l.loadMore.pull(outward)
			}
		case LoadMorePulling, LoadMoreReady:
			return l.loadMore.pull(outward)
		}
	}
	return l.rubberBand(outward, l.scroll.position-l.scroll.max)
}

// rubberBand is the generic boundary resistance used when no gesture owns
// the overscroll.
func (l *List) rubberBand(outward, over float64) float64 {
	if outward > 0 {
		return outward * boundaryDragResistance
	}
	return math.Max(outward, -math.Max(over, 0))
}

// Impulse adds to the scroll velocity, as from a wheel tick. Ignored while a
// drag owns the position; an in-flight animation is cancelled.
func (l *List) Impulse(velocity float64) {
	if !l.started || l.dragging {
		return
	}
	l.anim = nil
	l.scroll.velocity = clampVelocity(l.scroll.velocity + velocity)
}

// Step advances the widget by dt seconds of frame time: gesture cooldowns,
// the programmatic scroll animation, or the free motion model, in that order
// of precedence. Dragging suspends free motion entirely.
func (l *List) Step(dt float64) {
	if !l.started {
		return
	}
	l.refresh.step(dt)
	l.loadMore.step(dt)
	if l.dragging {
		return
	}
	if l.anim != nil {
		l.stepAnim(dt)
		return
	}
	if l.scroll.step(dt, l.holdTarget()) {
		l.afterScroll(false)
	}
}

func (l *List) stepAnim(dt float64) {
	a := l.anim
	a.elapsed += dt
	t := a.elapsed / a.duration
	if t > 1 {
		t = 1
	}
	l.scroll.position = a.from + (a.to-a.from)*easeOutCubic(t)
	l.afterScroll(false)
	if t >= 1 {
		l.anim = nil
		// The completion handler drops pending appear flags: items the
		// animation scrolled past come in settled, not animating.
		clear(l.appearPending)
	}
}

// holdTarget returns the pinned position while a gesture is in progress.
func (l *List) holdTarget() *float64 {
	if l.refresh.state == Refreshing {
		target := l.scroll.min - l.refresh.cfg.HoldOffset
		return &target
	}
	if l.loadMore.state == Loading {
		target := l.scroll.max + l.loadMore.cfg.HoldOffset
		return &target
	}
	return nil
}

// afterScroll propagates a position change: the content handle moves, and in
// virtual mode the slot window is reconciled.
func (l *List) afterScroll(force bool) {
	if !l.started {
		return
	}
	l.syncContent()
	if l.virtual {
		l.reconcile(l.computeFirstIndex(l.scroll.position), force)
	}
}

// syncContent mirrors the scroll position onto the content container:
// vertical content rises as the position grows, horizontal content moves in
// the mirrored negative range.
func (l *List) syncContent() {
	if l.content == nil {
		return
	}
	if l.horizontal {
		l.content.SetPosition(-l.scroll.position, 0)
	} else {
		l.content.SetPosition(0, l.scroll.position)
	}
}

// Tap reports a click at a main-axis viewport offset, invoking the item
// click handler for the item under it. Click-versus-drag disambiguation is
// the host's job.
func (l *List) Tap(viewportPos float64) {
	if l.clickFn == nil || !l.started {
		return
	}
	index := l.IndexAt(l.scroll.position + viewportPos)
	if index < 0 {
		return
	}
	if s := l.slotFor(index); s != nil && s.handle != nil {
		l.clickFn(s.handle, index)
	}
}

// Position returns the current scroll position.
func (l *List) Position() float64 {
	return l.scroll.position
}

// Velocity returns the current scroll velocity in units per second.
func (l *List) Velocity() float64 {
	return l.scroll.velocity
}

// ContentSize returns the total main-axis content extent.
func (l *List) ContentSize() float64 {
	return l.contentSize()
}

// AtStart reports whether the view is at (or before) the content start.
func (l *List) AtStart() bool {
	return l.scroll.position <= l.scroll.min
}

// AtEnd reports whether the view is at (or past) the content end.
func (l *List) AtEnd() bool {
	return l.scroll.position >= l.scroll.max
}

// RefreshState returns the pull-to-refresh state.
func (l *List) RefreshState() RefreshState {
	return l.refresh.state
}

// LoadMoreState returns the load-more state.
func (l *List) LoadMoreState() LoadMoreState {
	return l.loadMore.state
}

// releaseSlots returns every bound handle to its owner: pooled handles go
// back to the idle lists, provider-supplied handles are destroyed.
func (l *List) releaseSlots() {
	for i := range l.slots {
		s := &l.slots[i]
		if s.handle == nil {
			continue
		}
		if !l.virtual && l.provider != nil {
			s.handle.Destroy()
		} else {
			l.pool.Release(s.handle, s.typeIndex)
		}
		s.handle = nil
		s.index = -1
	}
}

// Destroy tears the widget down, destroying every handle it owns.
func (l *List) Destroy() {
	if !l.started {
		return
	}
	l.releaseSlots()
	l.pool.Drain()
	l.slots = nil
	l.started = false
}
