package vscroll

// Options is the construction-time configuration record for a List. Zero
// values fall back to the documented defaults; behavior hooks are configured
// separately through the Set*Func setters.
type Options struct {
	// Horizontal selects the horizontal orientation. Default is vertical.
	Horizontal bool

	// Virtual enables windowed rendering through a recycled slot pool.
	// When false, every item gets its own handle and only the motion and
	// gesture machinery runs.
	Virtual bool

	// RecycleNodes is deprecated: use Virtual. It is read exactly once by
	// NewListFromOptions, which coerces it into Virtual; nothing else
	// consults it.
	RecycleNodes bool

	// ItemSize is the main-axis item size in fixed-size mode, and the size
	// estimate used before measurement in dynamic-size mode. Default 100.
	ItemSize float64

	// Spacing is the main-axis gap between items. Default 0.
	Spacing float64

	// GridCount is the number of cross-axis lanes. Default 1 (plain list).
	GridCount int

	// GridSpacing is the cross-axis gap between lanes. Default 0.
	GridSpacing float64

	// SlotCount fixes the recycled slot count. Default 0 computes it from
	// the viewport and item size at layout time.
	SlotCount int

	// Buffer is the number of extra items kept bound beyond each edge of
	// the viewport. Default 0.
	Buffer int

	// TypeCount is the number of item shapes in multi-shape mode. Default 1.
	TypeCount int

	// DynamicSize enables the per-item size table; item sizes come from
	// the item-size callback and from measuring rendered handles. When
	// false all items share ItemSize.
	DynamicSize bool

	// PixelSnap rounds the scroll position to whole pixels each tick.
	PixelSnap bool

	// RefreshEnabled arms the pull-to-refresh gesture at the start
	// boundary.
	RefreshEnabled bool

	// LoadMoreEnabled arms the load-more gesture at the end boundary.
	LoadMoreEnabled bool
}

// withDefaults fills in unset fields.
func (o Options) withDefaults() Options {
	if o.ItemSize <= 0 {
		o.ItemSize = 100
	}
	if o.GridCount < 1 {
		o.GridCount = 1
	}
	if o.TypeCount < 1 {
		o.TypeCount = 1
	}
	if o.Buffer < 0 {
		o.Buffer = 0
	}
	return o
}
