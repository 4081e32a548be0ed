package vscroll

import "sort"

// SizeTable stores per-item main-axis sizes together with a prefix-sum index
// so the item under any scroll position can be located in O(log n).
//
// starts[i] is the main-axis offset of item i from the start of the content:
// the sum of every preceding item's size plus spacing.
type SizeTable struct {
	spacing     float64
	sizes       []float64
	starts      []float64
	contentSize float64
}

// NewSizeTable returns an empty size table using the given inter-item spacing.
func NewSizeTable(spacing float64) *SizeTable {
	return &SizeTable{spacing: spacing}
}

// Len returns the number of items in the table.
func (t *SizeTable) Len() int {
	return len(t.sizes)
}

// ContentSize returns the total main-axis extent of all items.
func (t *SizeTable) ContentSize() float64 {
	return t.contentSize
}

// Start returns the main-axis offset of the given item.
func (t *SizeTable) Start(index int) float64 {
	return t.starts[index]
}

// Size returns the recorded main-axis size of the given item.
func (t *SizeTable) Size(index int) float64 {
	return t.sizes[index]
}

// Rebuild resizes the table to n items, sourcing every size from sizeOf, and
// recomputes the prefix sums.
func (t *SizeTable) Rebuild(n int, sizeOf func(index int) float64) {
	if n < 0 {
		n = 0
	}
	if cap(t.sizes) < n {
		t.sizes = make([]float64, n)
		t.starts = make([]float64, n)
	} else {
		t.sizes = t.sizes[:n]
		t.starts = t.starts[:n]
	}
	for i := 0; i < n; i++ {
		size := sizeOf(i)
		if size < 0 {
			size = 0
		}
		t.sizes[i] = size
	}
	t.rebuildFrom(0)
}

// SetSize updates one item's size and rebuilds the suffix of the prefix sums
// starting at that item. It reports whether anything changed; setting an
// unchanged size is a no-op.
func (t *SizeTable) SetSize(index int, size float64) bool {
	if !t.setRaw(index, size) {
		return false
	}
	t.rebuildFrom(index)
	return true
}

// SetSizes applies a batch of size updates with a single suffix rebuild from
// the lowest changed index. It reports whether anything changed.
func (t *SizeTable) SetSizes(sizes map[int]float64) bool {
	lowest := -1
	for index, size := range sizes {
		if t.setRaw(index, size) && (lowest < 0 || index < lowest) {
			lowest = index
		}
	}
	if lowest < 0 {
		return false
	}
	t.rebuildFrom(lowest)
	return true
}

func (t *SizeTable) setRaw(index int, size float64) bool {
	if index < 0 || index >= len(t.sizes) {
		Logger.Warn().Int("index", index).Int("len", len(t.sizes)).Msg("size update out of range")
		return false
	}
	if size < 0 {
		size = 0
	}
	if t.sizes[index] == size {
		return false
	}
	t.sizes[index] = size
	return true
}

// rebuildFrom recomputes starts[k] for k >= index, seeding from the preceding
// entry, and refreshes the content size. Index 0 rebuilds the whole table.
func (t *SizeTable) rebuildFrom(index int) {
	n := len(t.sizes)
	if n == 0 {
		t.contentSize = 0
		return
	}
	if index < 0 {
		index = 0
	}
	for k := index; k < n; k++ {
		if k == 0 {
			t.starts[0] = 0
			continue
		}
		t.starts[k] = t.starts[k-1] + t.sizes[k-1] + t.spacing
	}
	t.contentSize = t.starts[n-1] + t.sizes[n-1]
}

// Locate returns the greatest index whose start offset is at or before the
// given position. Positions at or before zero map to 0; positions past the
// last start map to the last item. An item whose start equals the position is
// the first visible item.
func (t *SizeTable) Locate(position float64) int {
	n := len(t.starts)
	if n == 0 || position <= 0 {
		return 0
	}
	i := sort.Search(n, func(k int) bool {
		return t.starts[k] > position
	}) - 1
	if i < 0 {
		i = 0
	}
	return i
}

// VisibleRange returns the half-open index range covering every item whose
// span intersects [position, position+viewport], widened by buffer items on
// each side.
func (t *SizeTable) VisibleRange(position, viewport float64, buffer int) (start, end int) {
	n := len(t.starts)
	if n == 0 {
		return 0, 0
	}
	start = t.Locate(position) - buffer
	if start < 0 {
		start = 0
	}
	limit := position + viewport
	end = sort.Search(n, func(k int) bool {
		return t.starts[k] >= limit
	})
	end += buffer
	if end > n {
		end = n
	}
	return start, end
}
