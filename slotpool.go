package vscroll

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by SlotPool.Acquire for a type index the pool
// was not configured with.
var ErrUnknownType = errors.New("unknown item type")

// SlotPool keeps idle display handles partitioned by item type so that
// steady-state scrolling reuses handles instead of allocating new ones. A
// handle is either idle in the pool or bound to exactly one active slot,
// never both.
type SlotPool struct {
	factory   HandleFactory
	typeCount int
	idle      [][]Handle
}

// NewSlotPool returns a pool that creates handles through factory and
// recognizes type indices in [0, typeCount).
func NewSlotPool(factory HandleFactory, typeCount int) *SlotPool {
	if typeCount < 1 {
		typeCount = 1
	}
	return &SlotPool{
		factory:   factory,
		typeCount: typeCount,
		idle:      make([][]Handle, typeCount),
	}
}

// Acquire transfers an idle handle of the given type to the caller, creating
// a fresh one from the factory when the idle list is empty. The pool only
// grows with peak concurrent demand; it never pre-allocates.
func (p *SlotPool) Acquire(typeIndex int) (Handle, error) {
	if typeIndex < 0 || typeIndex >= p.typeCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typeIndex)
	}
	if list := p.idle[typeIndex]; len(list) > 0 {
		handle := list[len(list)-1]
		p.idle[typeIndex] = list[:len(list)-1]
		handle.SetActive(true)
		return handle, nil
	}
	handle := p.factory(typeIndex)
	if handle == nil {
		return nil, fmt.Errorf("factory returned no handle for type %d", typeIndex)
	}
	return handle, nil
}

// Release deactivates the handle and returns it to the idle list for its
// type. A handle must not be released twice without an intervening Acquire.
func (p *SlotPool) Release(handle Handle, typeIndex int) {
	if handle == nil {
		return
	}
	if typeIndex < 0 || typeIndex >= p.typeCount {
		Logger.Error().Int("type", typeIndex).Msg("release for unknown item type")
		return
	}
	handle.SetActive(false)
	p.idle[typeIndex] = append(p.idle[typeIndex], handle)
}

// IdleCount returns the number of idle handles held for the given type.
func (p *SlotPool) IdleCount(typeIndex int) int {
	if typeIndex < 0 || typeIndex >= p.typeCount {
		return 0
	}
	return len(p.idle[typeIndex])
}

// Drain destroys every idle handle. Bound handles must be released back to
// the pool before draining; Drain is only called at teardown.
func (p *SlotPool) Drain() {
	for t, list := range p.idle {
		for _, handle := range list {
			handle.Destroy()
		}
		p.idle[t] = nil
	}
}
