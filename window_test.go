package vscroll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedList(t *testing.T, host *testHost, total int, opts Options) *List {
	t.Helper()
	l := host.apply(NewListFromOptions(opts)).SetViewport(300, 100)
	l.SetTotalCount(total)
	require.NoError(t, l.Layout())
	return l
}

func TestWindowInitialBindPositions(t *testing.T) {
	host := newTestHost()
	l := host.apply(NewListFromOptions(Options{
		Virtual: true, DynamicSize: true, SlotCount: 3,
	})).SetItemSizeFunc(func(int) float64 { return 50 }).SetViewport(80, 100)
	l.SetTotalCount(3)
	require.NoError(t, l.Layout())

	for i := 0; i < 3; i++ {
		s := l.slotFor(i)
		require.NotNil(t, s, "index %d must be bound", i)
		h := s.handle.(*fakeHandle)
		assert.Equal(t, -50.0*float64(i), h.y)
		assert.True(t, h.active)
	}
	assert.Equal(t, 150.0, l.ContentSize())
}

func TestWindowComputeFirstIndexScenarioB(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 50, Options{Virtual: true, ItemSize: 100, Spacing: 8})

	require.Greater(t, l.totalCount, len(l.slots))
	assert.Equal(t, 1, l.computeFirstIndex(212))
	assert.Equal(t, 0, l.computeFirstIndex(0))
	assert.Equal(t, 0, l.computeFirstIndex(-50))
}

func TestWindowSmallListPinsToZero(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 2, Options{Virtual: true, ItemSize: 100})

	assert.Equal(t, 0, l.computeFirstIndex(150))
}

func TestWindowIncrementalShiftRebindsOnlyRevealed(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 20, Options{Virtual: true, ItemSize: 100})
	slotCount := len(l.slots)

	for i := 0; i < slotCount; i++ {
		assert.Equal(t, 1, host.renders[i], "initial bind renders each window index once")
	}

	// One item forward: only the newly revealed index is rendered.
	l.FlashToIndex(1)
	assert.Equal(t, 1, host.renders[slotCount])
	for i := 1; i < slotCount; i++ {
		assert.Equal(t, 1, host.renders[i], "index %d must not re-render on an overlap shift", i)
	}

	// Back one item: only index 0 is re-rendered.
	l.FlashToIndex(0)
	assert.Equal(t, 2, host.renders[0])
	assert.Equal(t, 1, host.renders[1])
}

func TestWindowRotationKeepsHandles(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 20, Options{Virtual: true, ItemSize: 100})

	before := l.slotFor(2).handle
	l.FlashToIndex(1)
	assert.Same(t, before, l.slotFor(2).handle, "overlapping items keep their handle across a shift")
}

func TestWindowDisjointJumpRebindsAll(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 40, Options{Virtual: true, ItemSize: 100})
	slotCount := len(l.slots)

	l.FlashToIndex(20)
	assert.Equal(t, 20, l.slotFirst)
	for i := 20; i < 20+slotCount; i++ {
		assert.Equal(t, 1, host.renders[i])
	}
	assert.Nil(t, l.slotFor(0), "old window must be fully unbound")
}

func TestWindowRecyclingConservation(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 200, Options{Virtual: true, ItemSize: 100})
	slotCount := len(l.slots)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		l.FlashToIndex(rng.Intn(200))
		assert.LessOrEqual(t, host.liveCount(), slotCount)
	}
	assert.Len(t, host.created, slotCount, "steady-state scrolling must not allocate handles")
}

func TestWindowMultiShapeSwap(t *testing.T) {
	host := newTestHost()
	l := host.apply(NewListFromOptions(Options{
		Virtual: true, ItemSize: 100, TypeCount: 2, SlotCount: 4,
	})).SetItemTypeFunc(func(index int) int {
		if index%3 == 0 {
			return 0
		}
		return 1
	}).SetViewport(300, 100)
	l.SetTotalCount(100)
	require.NoError(t, l.Layout())

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 60; i++ {
		l.FlashToIndex(rng.Intn(100))

		// Every created handle is either held by a slot or idle in the
		// pool, never both, never lost.
		held := 0
		for s := range l.slots {
			if l.slots[s].handle != nil {
				held++
			}
		}
		idle := l.pool.IdleCount(0) + l.pool.IdleCount(1)
		assert.Equal(t, len(host.created), held+idle)
		assert.LessOrEqual(t, host.liveCount(), 4)
	}
}

func TestWindowUnknownTypeLeavesSlotUnbound(t *testing.T) {
	host := newTestHost()
	l := host.apply(NewListFromOptions(Options{
		Virtual: true, ItemSize: 100, TypeCount: 2, SlotCount: 4,
	})).SetItemTypeFunc(func(index int) int {
		if index == 2 {
			return 9 // not a recognized type
		}
		return 0
	}).SetViewport(300, 100)
	l.SetTotalCount(10)
	require.NoError(t, l.Layout())

	assert.Nil(t, l.slotFor(2), "a failed acquire must not partially bind")
	require.NotNil(t, l.slotFor(1))
	require.NotNil(t, l.slotFor(3))
}

func TestWindowDynamicSizeCorrection(t *testing.T) {
	host := newTestHost()
	// The size callback estimates 10; rendering measures 30. The engine
	// must adopt the measured size and re-lay the window in one pass.
	host.onRender = func(h *fakeHandle, _ int) { h.h = 30 }

	l := host.apply(NewListFromOptions(Options{
		Virtual: true, DynamicSize: true, SlotCount: 3,
	})).SetItemSizeFunc(func(int) float64 { return 10 }).SetViewport(60, 100)
	l.SetTotalCount(3)
	require.NoError(t, l.Layout())

	assert.Equal(t, 30.0, l.table.Size(0))
	assert.Equal(t, 90.0, l.ContentSize())
	assert.Equal(t, -30.0, l.slotFor(1).handle.(*fakeHandle).y)
	assert.Equal(t, -60.0, l.slotFor(2).handle.(*fakeHandle).y)
	assert.False(t, l.sizeDirty, "the corrective pass must terminate")
}

func TestWindowGridPlacement(t *testing.T) {
	host := newTestHost()
	l := host.apply(NewListFromOptions(Options{
		Virtual: true, ItemSize: 100, Spacing: 8, GridCount: 2, GridSpacing: 10, SlotCount: 8,
	})).SetViewport(300, 210)
	l.SetTotalCount(20)
	require.NoError(t, l.Layout())

	// Lane width (210-10)/2 = 100, centered on the cross axis.
	h0 := l.slotFor(0).handle.(*fakeHandle)
	h1 := l.slotFor(1).handle.(*fakeHandle)
	h2 := l.slotFor(2).handle.(*fakeHandle)

	assert.Equal(t, -105.0, h0.x)
	assert.Equal(t, 5.0, h1.x)
	assert.Equal(t, h0.y, h1.y, "lane mates share a line")
	assert.Equal(t, -108.0, h2.y, "second line starts after size plus spacing")
	assert.Equal(t, 100.0, h0.w, "lane width")
}

func TestIndexAt(t *testing.T) {
	host := newTestHost()
	l := fixedList(t, host, 10, Options{Virtual: true, ItemSize: 100, Spacing: 8})

	assert.Equal(t, 0, l.IndexAt(0))
	assert.Equal(t, 0, l.IndexAt(99))
	assert.Equal(t, -1, l.IndexAt(104), "spacing gap hits nothing")
	assert.Equal(t, 1, l.IndexAt(108))
	assert.Equal(t, -1, l.IndexAt(-5))
	assert.Equal(t, -1, l.IndexAt(1e9))
}
