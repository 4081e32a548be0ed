package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// stepState carries the grapheme parser state across calls to step.
type stepState struct {
	unisegState int
	boundaries  int
	grossLength int
}

// LineBreak returns whether the string can be broken into the next line after
// the current grapheme cluster.
func (s *stepState) LineBreak() (lineBreak, optional bool) {
	switch s.boundaries & uniseg.MaskLine {
	case uniseg.LineCanBreak:
		return true, true
	case uniseg.LineMustBreak:
		return true, false
	}
	return false, false
}

// Width returns the grapheme cluster's width in cells.
func (s *stepState) Width() int {
	return s.boundaries >> uniseg.ShiftWidth
}

// step iterates over grapheme clusters of a string.
func step(str string, state *stepState) (cluster, rest string, newState *stepState) {
	if state == nil {
		state = &stepState{
			unisegState: -1,
		}
	}
	if len(str) == 0 {
		newState = state
		return
	}

	preState := state.unisegState
	cluster, rest, state.boundaries, state.unisegState = uniseg.StepString(str, preState)
	state.grossLength = len(cluster)
	if rest == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
		state.boundaries &^= uniseg.MaskLine
	}

	newState = state
	return
}

// StringWidth returns the width of the given string in screen cells.
func StringWidth(text string) (width int) {
	var state *stepState
	for len(text) > 0 {
		_, text, state = step(text, state)
		width += state.Width()
	}
	return
}

// WrapText splits a text such that each resulting line does not exceed the
// given screen width, preferring word boundaries.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines []string
		state *stepState

		// The line being accumulated, as cells used and bytes taken, plus
		// the position of the last optional break seen on it.
		used, taken           int
		breakTaken, breakUsed int
	)
	flush := func(cut int) {
		lines = append(lines, text[:cut])
		text = text[cut:]
		used -= breakUsed
		taken -= cut
		breakTaken, breakUsed = 0, 0
	}

	rest := text
	for len(rest) > 0 {
		_, rest, state = step(rest, state)
		cells := state.Width()

		if used+cells > width {
			if breakTaken > 0 {
				flush(breakTaken)
			} else {
				// No word boundary on this line: cut mid-word.
				used, breakUsed = 0, 0
				flush(taken)
			}
		}

		used += cells
		taken += state.grossLength

		switch canBreak, optional := state.LineBreak(); {
		case canBreak && optional:
			breakTaken, breakUsed = taken, used
		case canBreak:
			lines = append(lines, strings.TrimRight(text[:taken], "\n\r"))
			text = text[taken:]
			used, taken, breakTaken, breakUsed = 0, 0, 0, 0
		}
	}
	return append(lines, text)
}

// putLine writes text into a bounded row, walking grapheme clusters so wide
// characters never spill past the limit.
func putLine(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	limit := x + maxWidth
	var state *stepState
	for len(text) > 0 {
		var cluster string
		cluster, text, state = step(text, state)
		width := state.Width()
		if width < 1 {
			continue
		}
		if x+width > limit {
			return
		}
		runes := []rune(cluster)
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
}
