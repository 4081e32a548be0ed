package vscroll

// Handle is a display node owned by the host scene graph. The engine never
// creates or draws handles itself; it only moves, resizes, shows, hides, and
// eventually destroys them through this interface.
//
// A handle is owned by exactly one party at a time: either it is bound to an
// active slot, or it sits idle in the SlotPool. Ownership changes only through
// SlotPool.Acquire and SlotPool.Release.
type Handle interface {
	// SetActive shows or hides the node. Released handles are hidden.
	SetActive(active bool)

	// SetPosition moves the node within its parent container, in the same
	// units the host uses for sizes.
	SetPosition(x, y float64)

	// SetSize resizes the node. The render callback may resize the node
	// again; the engine reads the result back via Size to keep its size
	// table authoritative.
	SetSize(width, height float64)

	// Size returns the node's current dimensions.
	Size() (width, height float64)

	// Anchor returns the node's anchor fractions in [0,1]. The anchor
	// shifts where within the item span the node's position coordinate
	// points at.
	Anchor() (x, y float64)

	// Destroy releases the node permanently. Called only from
	// SlotPool.Drain at teardown.
	Destroy()
}

// HandleFactory produces a fresh display handle for the given item type.
// Repeated calls with the same type must return independently usable handles.
type HandleFactory func(typeIndex int) Handle

// HandleProvider returns a pre-built display handle for the given item index.
// It is consulted instead of a HandleFactory when the list does not recycle
// nodes. Asynchronous hosts must resolve their handles before the first
// layout; the provider itself is called synchronously.
type HandleProvider func(index int) Handle
