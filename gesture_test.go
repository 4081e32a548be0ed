package vscroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPullConfig() PullConfig {
	return PullConfig{Threshold: 100, MaxOffset: 150, HoldOffset: 60, DampingRate: 0.5}
}

func TestPullResistanceCurve(t *testing.T) {
	cfg := testPullConfig()

	assert.InDelta(t, 1.0, cfg.resistance(0), 1e-9)
	assert.InDelta(t, 1-(100.0/150)*0.5, cfg.resistance(100), 1e-9)
	assert.InDelta(t, 0.5, cfg.resistance(150), 1e-9)
	assert.InDelta(t, 0.5, cfg.resistance(400), 1e-9, "resistance saturates at max offset")
}

func TestRefreshPullingToReadyAtThreshold(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}

	var states []RefreshState
	g.changed = func(s RefreshState, _ float64) { states = append(states, s) }

	// Feed small outward deltas; the transition must happen exactly when
	// the accumulated (damped) offset first reaches the threshold.
	for g.state != RefreshReady {
		before := g.offset
		g.pull(5)
		if g.state == RefreshReady {
			assert.Less(t, before, 100.0)
			assert.GreaterOrEqual(t, g.offset, 100.0)
		}
	}
	assert.Equal(t, []RefreshState{RefreshPulling, RefreshReady}, states)
}

func TestRefreshPullIsDamped(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}

	applied := g.pull(30)
	assert.InDelta(t, 30, applied, 1e-9, "no damping at zero offset")

	applied = g.pull(30)
	assert.Less(t, applied, 30.0, "deeper pulls are damped")
	assert.InDelta(t, 30*g.cfg.resistance(30), applied, 1e-9)
}

func TestRefreshOffsetCapped(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}

	total := 0.0
	for i := 0; i < 100; i++ {
		total += g.pull(50)
	}
	assert.Equal(t, 150.0, g.offset)
	assert.InDelta(t, 150, total, 1e-9, "applied deltas must sum to the cap")
}

func TestRefreshReturnTowardBoundaryUndamped(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}
	g.pull(50)

	applied := g.pull(-20)
	assert.InDelta(t, -20, applied, 1e-9)
	assert.InDelta(t, 30, g.offset, 1e-9)

	// Returning all the way re-idles the gesture and never overshoots.
	applied = g.pull(-100)
	assert.InDelta(t, -30, applied, 1e-9)
	assert.Equal(t, RefreshIdle, g.state)
	assert.Equal(t, 0.0, g.offset)
}

func TestRefreshReleaseBelowThresholdResets(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}
	g.pull(50)
	require.Equal(t, RefreshPulling, g.state)

	assert.False(t, g.release())
	assert.Equal(t, RefreshIdle, g.state)
	assert.Equal(t, 0.0, g.offset)
}

func TestRefreshFullCycle(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}

	var states []RefreshState
	g.changed = func(s RefreshState, _ float64) { states = append(states, s) }

	for g.state != RefreshReady {
		g.pull(40)
	}
	assert.True(t, g.release())
	assert.Equal(t, Refreshing, g.state)
	assert.Equal(t, 60.0, g.offset, "in-progress offset reports the hold position")

	// Release while in progress leaves the state untouched.
	assert.False(t, g.release())
	assert.Equal(t, Refreshing, g.state)

	g.finish(true)
	assert.Equal(t, RefreshComplete, g.state)
	assert.Equal(t, 0.0, g.offset)

	// The complete state auto-idles after the cooldown.
	g.step(completeDelay / 2)
	assert.Equal(t, RefreshComplete, g.state)
	g.step(completeDelay)
	assert.Equal(t, RefreshIdle, g.state)

	assert.Equal(t, []RefreshState{
		RefreshPulling, RefreshReady, Refreshing, RefreshComplete, RefreshIdle,
	}, states)
}

func TestRefreshFinishFailureIdlesImmediately(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}
	for g.state != RefreshReady {
		g.pull(40)
	}
	g.release()

	g.finish(false)
	assert.Equal(t, RefreshIdle, g.state)
}

func TestRefreshFinishOutsideRefreshingIsNoop(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}

	g.finish(true)
	assert.Equal(t, RefreshIdle, g.state)

	g.pull(40)
	g.finish(true)
	assert.Equal(t, RefreshPulling, g.state)
}

func TestRefreshEdgeTriggeredNotifications(t *testing.T) {
	g := refreshGesture{cfg: testPullConfig()}

	fired := 0
	g.changed = func(RefreshState, float64) { fired++ }

	g.pull(10)
	g.pull(10)
	g.pull(10)
	assert.Equal(t, 1, fired, "repeated writes of the same state must not re-fire")
}

func TestLoadMoreScenarioNoMoreIsSticky(t *testing.T) {
	g := loadMoreGesture{cfg: testPullConfig(), hasMore: true}

	for g.state != LoadMoreReady {
		g.pull(40)
	}
	require.True(t, g.release())
	require.Equal(t, Loading, g.state)

	g.finish(false)
	assert.Equal(t, NoMore, g.state)

	// No auto-idle, no matter how long the ticks run.
	for i := 0; i < 1000; i++ {
		g.step(1)
	}
	assert.Equal(t, NoMore, g.state)

	// Pull entry stays blocked.
	assert.Equal(t, 40.0, g.pull(40), "blocked gesture passes the delta through")
	assert.Equal(t, NoMore, g.state)

	g.reset()
	assert.Equal(t, LoadMoreIdle, g.state)
	assert.True(t, g.hasMore)
}

func TestLoadMoreBlockedByHasMore(t *testing.T) {
	g := loadMoreGesture{cfg: testPullConfig(), hasMore: false}

	g.pull(50)
	assert.Equal(t, LoadMoreIdle, g.state)
	assert.Equal(t, 0.0, g.offset)
}

func TestLoadMoreCompleteAutoIdles(t *testing.T) {
	g := loadMoreGesture{cfg: testPullConfig(), hasMore: true}
	for g.state != LoadMoreReady {
		g.pull(40)
	}
	g.release()
	g.finish(true)
	require.Equal(t, LoadMoreComplete, g.state)

	g.step(completeDelay + 0.01)
	assert.Equal(t, LoadMoreIdle, g.state)
	assert.True(t, g.hasMore)
}
