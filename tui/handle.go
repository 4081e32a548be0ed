// Package tui renders a vscroll.List on a tcell screen. It supplies the host
// side of the engine's handle interface: every item is a small region of text
// cells, moved and recycled by the engine, painted by the widget each frame.
package tui

import "github.com/gdamore/tcell/v2"

// itemHandle is a display handle backed by a rectangle of terminal cells.
// Units are cells: one main-axis unit is one row (or column).
type itemHandle struct {
	x, y          float64
	width, height float64
	active        bool
	lines         []string
	style         tcell.Style
}

func (h *itemHandle) SetActive(active bool) {
	h.active = active
}

func (h *itemHandle) SetPosition(x, y float64) {
	h.x, h.y = x, y
}

func (h *itemHandle) SetSize(width, height float64) {
	h.width, h.height = width, height
}

func (h *itemHandle) Size() (width, height float64) {
	return h.width, h.height
}

// Anchor pins the handle's coordinate to its top-left corner, which maps the
// engine's content space straight onto screen rows.
func (h *itemHandle) Anchor() (x, y float64) {
	return 0, 1
}

func (h *itemHandle) Destroy() {
	h.lines = nil
	h.active = false
}

// contentHandle receives the engine's content-container position; the widget
// reads it back as the row shift applied to every item, which makes boundary
// overscroll visibly rubber-band.
type contentHandle struct {
	x, y float64
}

func (h *contentHandle) SetActive(bool)             {}
func (h *contentHandle) SetPosition(x, y float64)   { h.x, h.y = x, y }
func (h *contentHandle) SetSize(_, _ float64)       {}
func (h *contentHandle) Size() (float64, float64)   { return 0, 0 }
func (h *contentHandle) Anchor() (float64, float64) { return 0, 1 }
func (h *contentHandle) Destroy()                   {}
