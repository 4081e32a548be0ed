package vscroll

import "math"

// RefreshState is the pull-to-refresh gesture state.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshPulling
	RefreshReady
	Refreshing
	RefreshComplete
)

// String returns the state's name.
func (s RefreshState) String() string {
	switch s {
	case RefreshIdle:
		return "idle"
	case RefreshPulling:
		return "pulling"
	case RefreshReady:
		return "ready"
	case Refreshing:
		return "refreshing"
	case RefreshComplete:
		return "complete"
	}
	return "unknown"
}

// LoadMoreState is the pull-to-load-more gesture state.
type LoadMoreState int

const (
	LoadMoreIdle LoadMoreState = iota
	LoadMorePulling
	LoadMoreReady
	Loading
	LoadMoreComplete
	NoMore
)

// String returns the state's name.
func (s LoadMoreState) String() string {
	switch s {
	case LoadMoreIdle:
		return "idle"
	case LoadMorePulling:
		return "pulling"
	case LoadMoreReady:
		return "ready"
	case Loading:
		return "loading"
	case LoadMoreComplete:
		return "complete"
	case NoMore:
		return "no-more"
	}
	return "unknown"
}

// PullConfig tunes one pull gesture.
type PullConfig struct {
	// Threshold is the overscroll at which releasing triggers the gesture.
	Threshold float64
	// MaxOffset caps the accumulated overscroll.
	MaxOffset float64
	// HoldOffset is where the position is pinned while the gesture is in
	// progress.
	HoldOffset float64
	// DampingRate is the residual fraction of a drag delta applied when the
	// overscroll has reached MaxOffset. Resistance ramps linearly from 1
	// down to this value.
	DampingRate float64
}

// DefaultPullConfig returns the tuning both gestures start with.
func DefaultPullConfig() PullConfig {
	return PullConfig{
		Threshold:   80,
		MaxOffset:   120,
		HoldOffset:  60,
		DampingRate: 0.6,
	}
}

// resistance returns the multiplicative damping applied to a raw outward
// drag delta at the given accumulated overscroll.
func (c PullConfig) resistance(offset float64) float64 {
	if c.MaxOffset <= 0 {
		return c.DampingRate
	}
	frac := math.Min(offset/c.MaxOffset, 1)
	return 1 - frac*(1-c.DampingRate)
}

// completeDelay is how long a gesture lingers in its complete state before
// auto-idling, in seconds of frame-tick time.
const completeDelay = 0.5

// refreshGesture is the pull-to-refresh state machine. It consumes outward
// drag deltas at the start boundary and owns the accumulated overscroll.
type refreshGesture struct {
	cfg      PullConfig
	state    RefreshState
	offset   float64
	cooldown float64
	changed  func(state RefreshState, offset float64)
}

// setState fires the change notification only when the state value actually
// changes.
func (g *refreshGesture) setState(state RefreshState) {
	if g.state == state {
		return
	}
	g.state = state
	if g.changed != nil {
		g.changed(state, g.offset)
	}
}

// engaged reports whether the gesture currently owns boundary overscroll.
func (g *refreshGesture) engaged() bool {
	switch g.state {
	case RefreshPulling, RefreshReady:
		return true
	}
	return false
}

// pull consumes a raw drag delta while the position sits at or past the start
// boundary. Positive deltas pull further out and are damped by the
// resistance curve; negative deltas return toward the boundary undamped. It
// returns the delta actually applied to the overscroll, signed like the
// input. Deltas arriving while the gesture is in progress pass through
// unchanged.
func (g *refreshGesture) pull(delta float64) float64 {
	switch g.state {
	case RefreshIdle, RefreshPulling, RefreshReady:
	default:
		return delta
	}
	var applied float64
	if delta > 0 {
		// The accumulator uses the damped delta, so resistance compounds
		// as the pull deepens.
		applied = math.Min(delta*g.cfg.resistance(g.offset), g.cfg.MaxOffset-g.offset)
		g.offset += applied
	} else {
		applied = math.Max(delta, -g.offset)
		g.offset += applied
	}
	switch {
	case g.offset <= 0:
		g.offset = 0
		g.setState(RefreshIdle)
	case g.offset >= g.cfg.Threshold:
		g.setState(RefreshReady)
	default:
		g.setState(RefreshPulling)
	}
	return applied
}

// release ends the drag. From Ready the gesture triggers and reports true;
// from Pulling it resets to Idle. In-progress states are left untouched.
func (g *refreshGesture) release() bool {
	switch g.state {
	case RefreshReady:
		g.offset = g.cfg.HoldOffset
		g.setState(Refreshing)
		return true
	case RefreshPulling:
		g.offset = 0
		g.setState(RefreshIdle)
	}
	return false
}

// finish leaves the in-progress state. On success the gesture reports
// Complete and auto-idles after a short delay; on failure it reports an
// immediate Idle.
func (g *refreshGesture) finish(success bool) {
	if g.state != Refreshing {
		Logger.Warn().Stringer("state", g.state).Msg("finishRefresh outside refreshing state")
		return
	}
	g.offset = 0
	if success {
		g.cooldown = completeDelay
		g.setState(RefreshComplete)
	} else {
		g.setState(RefreshIdle)
	}
}

// step counts down the complete-state cooldown on the frame tick.
func (g *refreshGesture) step(dt float64) {
	if g.state != RefreshComplete {
		return
	}
	g.cooldown -= dt
	if g.cooldown <= 0 {
		g.setState(RefreshIdle)
	}
}

// loadMoreGesture is the pull-to-load-more state machine at the end boundary.
// It mirrors refreshGesture, with a standing hasMore gate and a sticky
// NoMore terminal state.
type loadMoreGesture struct {
	cfg      PullConfig
	state    LoadMoreState
	offset   float64
	cooldown float64
	hasMore  bool
	changed  func(state LoadMoreState, offset float64)
}

func (g *loadMoreGesture) setState(state LoadMoreState) {
	if g.state == state {
		return
	}
	g.state = state
	if g.changed != nil {
		g.changed(state, g.offset)
	}
}

func (g *loadMoreGesture) engaged() bool {
	switch g.state {
	case LoadMorePulling, LoadMoreReady:
		return true
	}
	return false
}

// pull consumes a raw outward drag delta at the end boundary. Entry into
// Pulling is blocked entirely while hasMore is false.
func (g *loadMoreGesture) pull(delta float64) float64 {
	switch g.state {
	case LoadMoreIdle:
		if !g.hasMore {
			return delta
		}
	case LoadMorePulling, LoadMoreReady:
	default:
		return delta
	}
	var applied float64
	if delta > 0 {
		applied = math.Min(delta*g.cfg.resistance(g.offset), g.cfg.MaxOffset-g.offset)
		g.offset += applied
	} else {
		applied = math.Max(delta, -g.offset)
		g.offset += applied
	}
	switch {
	case g.offset <= 0:
		g.offset = 0
		g.setState(LoadMoreIdle)
	case g.offset >= g.cfg.Threshold:
		g.setState(LoadMoreReady)
	default:
		g.setState(LoadMorePulling)
	}
	return applied
}

func (g *loadMoreGesture) release() bool {
	switch g.state {
	case LoadMoreReady:
		g.offset = g.cfg.HoldOffset
		g.setState(Loading)
		return true
	case LoadMorePulling:
		g.offset = 0
		g.setState(LoadMoreIdle)
	}
	return false
}

// finish leaves Loading. With hasMore false the gesture parks in the sticky
// NoMore state until reset re-arms it; otherwise it completes and auto-idles.
func (g *loadMoreGesture) finish(hasMore bool) {
	if g.state != Loading {
		Logger.Warn().Stringer("state", g.state).Msg("finishLoadMore outside loading state")
		return
	}
	g.offset = 0
	g.hasMore = hasMore
	if !hasMore {
		g.setState(NoMore)
		return
	}
	g.cooldown = completeDelay
	g.setState(LoadMoreComplete)
}

// reset re-arms the gesture from any state, including NoMore.
func (g *loadMoreGesture) reset() {
	g.offset = 0
	g.hasMore = true
	g.setState(LoadMoreIdle)
}

func (g *loadMoreGesture) step(dt float64) {
	if g.state != LoadMoreComplete {
		return
	}
	g.cooldown -= dt
	if g.cooldown <= 0 {
		g.setState(LoadMoreIdle)
	}
}
