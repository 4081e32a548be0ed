package vscroll

import "math"

// slot is one recyclable display unit. The bound handle is owned exclusively
// by the slot until it is released back to the pool.
type slot struct {
	handle    Handle
	index     int
	typeIndex int
}

// computeFirstIndex maps a scroll position to the index the first slot should
// render. Lists shorter than the slot window pin to 0 so small lists never
// thrash the pool.
func (l *List) computeFirstIndex(position float64) int {
	if l.totalCount <= len(l.slots) {
		return 0
	}
	pos := l.scroll.clampPosition(position)

	var first int
	if l.dynamic {
		first, _ = l.table.VisibleRange(pos, l.viewMain, l.buffer)
	} else {
		line := int(math.Floor(pos/(l.itemSize+l.spacing))) - l.buffer
		first = line * l.gridCount
	}
	if first < 0 {
		first = 0
	}
	if first > l.totalCount-1 {
		first = l.totalCount - 1
	}
	return first
}

// reconcile synchronizes the slot window with a new first index. When the old
// and new windows overlap, slots are rotated and only newly exposed indices
// are rebound, keeping per-frame cost proportional to the items actually
// revealed. A forced reconcile, or a shift with no overlap, rebinds
// everything.
func (l *List) reconcile(first int, force bool) {
	count := len(l.slots)
	if count == 0 {
		return
	}
	shift := first - l.slotFirst

	switch {
	case force || shift >= count || shift <= -count:
		for i := range l.slots {
			l.bindSlot(&l.slots[i], first+i)
		}
	case shift > 0:
		rotateSlots(l.slots, shift)
		for i := count - shift; i < count; i++ {
			l.bindSlot(&l.slots[i], first+i)
		}
	case shift < 0:
		rotateSlots(l.slots, count+shift)
		for i := 0; i < -shift; i++ {
			l.bindSlot(&l.slots[i], first+i)
		}
	default:
		return
	}
	l.slotFirst = first

	// A corrective size pass moves item starts, so lay the window out again
	// with the now-authoritative sizes. One pass suffices.
	if l.sizeDirty {
		l.sizeDirty = false
		l.updateBounds()
		l.repositionSlots()
	}
}

// rotateSlots rotates the slice left by shift using three reversals, so the
// window shuffle never allocates.
func rotateSlots(slots []slot, shift int) {
	reverseSlots(slots[:shift])
	reverseSlots(slots[shift:])
	reverseSlots(slots)
}

func reverseSlots(slots []slot) {
	for i, j := 0, len(slots)-1; i < j; i, j = i+1, j-1 {
		slots[i], slots[j] = slots[j], slots[i]
	}
}

// bindSlot points a slot at an item index: it secures a handle of the right
// type, writes size and position, invokes the render callback, reconciles the
// measured size against the size table, and fires the one-shot appear hook.
// Indices outside the item range park the slot empty.
func (l *List) bindSlot(s *slot, index int) {
	if index < 0 || index >= l.totalCount {
		if s.handle != nil {
			s.handle.SetActive(false)
		}
		s.index = -1
		return
	}

	typeIndex := 0
	if l.itemTypeFn != nil {
		typeIndex = l.itemTypeFn(index)
	}

	if s.handle == nil && !l.virtual && l.provider != nil {
		handle := l.provider(index)
		if handle == nil {
			Logger.Error().Int("index", index).Msg("handle provider returned nil")
			return
		}
		s.handle = handle
		s.typeIndex = typeIndex
	} else if s.handle == nil || s.typeIndex != typeIndex {
		// Acquire before releasing the old handle so a failed acquire
		// leaves the slot untouched.
		handle, err := l.pool.Acquire(typeIndex)
		if err != nil {
			Logger.Err(err).Int("index", index).Msg("cannot bind slot")
			return
		}
		if s.handle != nil {
			l.pool.Release(s.handle, s.typeIndex)
		}
		s.handle = handle
		s.typeIndex = typeIndex
	}

	s.index = index
	s.handle.SetActive(true)
	l.applySlotGeometry(s)

	if l.render != nil {
		l.render(s.handle, index)
	}

	// The render callback may have resized the handle; record the measured
	// size so positions stay authoritative.
	if l.dynamic {
		measured := l.mainOf(s.handle.Size())
		if measured > 0 && measured != l.table.Size(index) {
			if l.table.SetSize(index, measured) {
				l.sizeDirty = true
			}
		}
	}

	if _, pending := l.appearPending[index]; pending {
		delete(l.appearPending, index)
		if l.appearFn != nil {
			l.appearFn(s.handle, index)
		}
	}
}

// applySlotGeometry writes the slot's size and content-space position onto
// its handle.
func (l *List) applySlotGeometry(s *slot) {
	size := l.itemMainSize(s.index)
	laneSize := l.laneSize()
	if l.horizontal {
		s.handle.SetSize(size, laneSize)
	} else {
		s.handle.SetSize(laneSize, size)
	}
	x, y := l.slotPosition(s.index, s.handle)
	s.handle.SetPosition(x, y)
}

// repositionSlots re-applies positions to every bound slot without
// re-rendering.
func (l *List) repositionSlots() {
	for i := range l.slots {
		s := &l.slots[i]
		if s.handle == nil || s.index < 0 {
			continue
		}
		x, y := l.slotPosition(s.index, s.handle)
		s.handle.SetPosition(x, y)
	}
}

// slotPosition computes a handle's content-space coordinates. The main axis
// follows the anchor-adjusted formula (vertical lists grow downward from a
// content top at y=0, so positions are negated); the cross axis distributes
// grid lanes evenly, centered on the viewport.
func (l *List) slotPosition(index int, handle Handle) (x, y float64) {
	start := l.itemStart(index)
	size := l.itemMainSize(index)
	ax, ay := handle.Anchor()

	lane := 0
	if l.gridCount > 1 {
		lane = index % l.gridCount
	}

	if l.horizontal {
		cross := l.lanePosition(lane, ay)
		return start + size*ax, cross
	}
	cross := l.lanePosition(lane, ax)
	return cross, -(start + size*(1-ay))
}

// lanePosition returns the cross-axis coordinate of a lane, centered on the
// cross axis.
func (l *List) lanePosition(lane int, anchor float64) float64 {
	laneSize := l.laneSize()
	return float64(lane)*(laneSize+l.gridSpacing) + laneSize*anchor - l.viewCross/2
}

func (l *List) laneSize() float64 {
	if l.gridCount <= 1 {
		return l.viewCross
	}
	return (l.viewCross - float64(l.gridCount-1)*l.gridSpacing) / float64(l.gridCount)
}

// itemStart returns the main-axis content offset of an item.
func (l *List) itemStart(index int) float64 {
	if l.dynamic {
		return l.table.Start(index)
	}
	line := index / l.gridCount
	return float64(line) * (l.itemSize + l.spacing)
}

// itemMainSize returns the item's main-axis size.
func (l *List) itemMainSize(index int) float64 {
	if l.dynamic {
		return l.table.Size(index)
	}
	return l.itemSize
}

// mainOf projects a (width, height) pair onto the main axis.
func (l *List) mainOf(width, height float64) float64 {
	if l.horizontal {
		return width
	}
	return height
}

// IndexAt returns the item index whose span contains the given content-space
// main-axis position, or -1 when the position falls in a spacing gap or
// outside the content. Grid lists report the first item of the line.
func (l *List) IndexAt(position float64) int {
	if l.totalCount == 0 || position < 0 {
		return -1
	}
	if l.dynamic {
		if l.table == nil {
			return -1
		}
		i := l.table.Locate(position)
		if position < l.table.Start(i)+l.table.Size(i) {
			return i
		}
		return -1
	}
	stride := l.itemSize + l.spacing
	line := int(position / stride)
	if position-float64(line)*stride >= l.itemSize {
		return -1
	}
	index := line * l.gridCount
	if index >= l.totalCount {
		return -1
	}
	return index
}

// slotFor returns the slot currently bound to the given index, if any.
func (l *List) slotFor(index int) *slot {
	for i := range l.slots {
		if l.slots[i].index == index {
			return &l.slots[i]
		}
	}
	return nil
}
