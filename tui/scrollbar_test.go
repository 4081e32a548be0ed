package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarMetricsProportions(t *testing.T) {
	// 10-cell track, content 4x the viewport: quarter-length thumb.
	m := barMetricsFor(10, 400, 100, 0)
	assert.Equal(t, 80, m.trackLen)
	assert.Equal(t, 20, m.thumbLen)
	assert.Equal(t, 0, m.thumbStart)

	m = barMetricsFor(10, 400, 100, 300)
	assert.Equal(t, 60, m.thumbStart, "full offset parks the thumb at the track end")

	m = barMetricsFor(10, 400, 100, 150)
	assert.Equal(t, 30, m.thumbStart)
}

func TestBarMetricsMinimumThumb(t *testing.T) {
	m := barMetricsFor(10, 100000, 100, 0)
	assert.Equal(t, subcell, m.thumbLen, "the thumb never shrinks below one cell")
}

func TestBarMetricsClampsOffset(t *testing.T) {
	over := barMetricsFor(10, 400, 100, 5000)
	end := barMetricsFor(10, 400, 100, 300)
	assert.Equal(t, end, over)

	under := barMetricsFor(10, 400, 100, -50)
	start := barMetricsFor(10, 400, 100, 0)
	assert.Equal(t, start, under)
}

func TestBarMetricsContentFits(t *testing.T) {
	m := barMetricsFor(10, 50, 100, 0)
	assert.Equal(t, m.trackLen, m.thumbLen, "content shorter than the viewport fills the track")
}

func TestThumbFillAndGlyphs(t *testing.T) {
	// Thumb covering subcells [4, 20): partial bottom half in cell 0, full
	// cell 1, partial top half in cell 2.
	m := barMetrics{trackCells: 3, trackLen: 24, thumbLen: 16, thumbStart: 4}

	start, fill := thumbFill(m, 0)
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, fill)
	assert.Equal(t, '▄', thumbGlyph(start, fill))

	start, fill = thumbFill(m, 1)
	assert.Equal(t, 0, start)
	assert.Equal(t, subcell, fill)
	assert.Equal(t, '█', thumbGlyph(start, fill))

	start, fill = thumbFill(m, 2)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, fill)
	assert.Equal(t, '▀', thumbGlyph(start, fill))

	_, fill = thumbFill(barMetrics{trackCells: 3, trackLen: 24, thumbLen: 8}, 2)
	assert.Zero(t, fill, "cells past the thumb stay empty")
}
