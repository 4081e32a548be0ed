package tui

import "github.com/gdamore/tcell/v2"

// The thumb is positioned in 1/8-cell steps so slow scrolls still move it.
const subcell = 8

var thumbLower = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
var thumbUpper = [8]rune{'▔', '▔', '▀', '▀', '▀', '▀', '█', '█'}

type barMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// barMetricsFor computes scroll bar geometry in subcell units from the
// engine's content extent, the viewport extent, and the scroll offset.
func barMetricsFor(trackCells int, contentLen, viewportLen, offset float64) barMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 || contentLen <= 0 {
		return barMetrics{}
	}
	if viewportLen > contentLen {
		viewportLen = contentLen
	}
	maxOffset := contentLen - viewportLen
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if maxOffset <= 0 {
		return barMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen}
	}

	thumbLen := int(float64(trackLen) * viewportLen / contentLen)
	if thumbLen < subcell {
		thumbLen = subcell
	}
	if thumbLen > trackLen {
		thumbLen = trackLen
	}
	travel := trackLen - thumbLen
	return barMetrics{
		trackCells: trackCells,
		trackLen:   trackLen,
		thumbLen:   thumbLen,
		thumbStart: int(float64(travel) * offset / maxOffset),
	}
}

// thumbFill returns the cell-local subcell coverage of the thumb within one
// track cell.
func thumbFill(m barMetrics, cellIndex int) (start, fillLen int) {
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	return start - cellStart, end - start
}

func thumbGlyph(start, fillLen int) rune {
	if fillLen >= subcell {
		return thumbLower[7]
	}
	if start == 0 {
		return thumbUpper[fillLen-1]
	}
	return thumbLower[fillLen-1]
}

// drawBar paints a vertical scroll bar into the column at (x, y..y+height).
// Bars with nothing to scroll are skipped.
func drawBar(screen tcell.Screen, x, y, height int, contentLen, viewportLen, offset float64, style tcell.Style) {
	if height <= 0 || contentLen <= viewportLen {
		return
	}
	m := barMetricsFor(height, contentLen, viewportLen, offset)
	if m.trackLen == 0 {
		return
	}
	for cell := 0; cell < m.trackCells; cell++ {
		start, fillLen := thumbFill(m, cell)
		glyph := ' '
		if fillLen > 0 {
			glyph = thumbGlyph(start, fillLen)
		}
		screen.SetContent(x, y+cell, glyph, nil, style)
	}
}
