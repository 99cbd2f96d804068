// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidepad/internal/session"
	"github.com/bethropolis/tidepad/internal/types"
)

var tabWidth = 4

// SetTabWidth sets how many cells a tab stop spans. Values below 1 are ignored.
func SetTabWidth(n int) {
	if n > 0 {
		tabWidth = n
	}
}

// drawText draws text from x on row y, clipped at maxX, and returns the
// column after the last drawn cluster.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if width == 0 {
			width = 1
		}
		if x+width > maxX {
			break
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		for cw := 1; cw < width; cw++ {
			s.SetContent(x+cw, y, ' ', nil, style)
		}
		x += width
	}
	return x
}

// fillRow paints [x0, x1) of row y with style.
func fillRow(s tcell.Screen, x0, x1, y int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// textWidth is the number of cells text occupies.
func textWidth(text string) int {
	return uniseg.StringWidth(text)
}

func calculateVisualColumn(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		runes := gr.Runes()
		if runes[0] == '\t' {
			visualWidth += tabWidth - visualWidth%tabWidth
		} else {
			visualWidth += gr.Width()
		}
		currentRuneIndex += len(runes)
	}
	return visualWidth
}

// Viewport is the scroll position of the editor area.
type Viewport struct {
	Top  int
	Left int
}

// Follow scrolls so that cursor stays inside a height x width text area.
func (v *Viewport) Follow(cursor types.Position, visualCol, height, width int) {
	if cursor.Line < v.Top {
		v.Top = cursor.Line
	}
	if height > 0 && cursor.Line >= v.Top+height {
		v.Top = cursor.Line - height + 1
	}
	if visualCol < v.Left {
		v.Left = visualCol
	}
	if width > 0 && visualCol >= v.Left+width {
		v.Left = visualCol - width + 1
	}
}

func gutterWidthFor(lineCount, width int) int {
	if lineCount == 0 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutterWidth := maxDigits + 1
	if gutterWidth >= width {
		return 0
	}
	return gutterWidth
}

// DrawEditor draws f's visible lines into rows [top, top+height) and places
// the terminal cursor.
func DrawEditor(t *TUI, f *session.File, vp *Viewport, top, height int) {
	s := t.screen
	width, _ := t.Size()
	defaultStyle := t.Style("Default")
	lineNumberStyle := t.Style("LineNumber")
	selectionStyle := t.Style("Selection")

	for y := top; y < top+height; y++ {
		fillRow(s, 0, width, y, defaultStyle)
	}
	if f == nil || height <= 0 {
		s.HideCursor()
		return
	}

	lines := f.Buffer.Lines()
	gutterWidth := gutterWidthFor(len(lines), width)
	textAreaWidth := width - gutterWidth

	cursorLine, _ := f.Buffer.Line(f.Cursor.Line)
	cursorVisual := calculateVisualColumn(cursorLine, f.Cursor.Col)
	vp.Follow(f.Cursor, cursorVisual, height, textAreaWidth)

	sel := f.Selection.Normalized()
	hasSelection := !sel.Empty()

	for row := 0; row < height; row++ {
		lineIdx := vp.Top + row
		screenY := top + row
		if lineIdx >= len(lines) {
			break
		}

		if gutterWidth > 0 {
			style := lineNumberStyle
			if lineIdx == f.Cursor.Line {
				style = style.Bold(true)
			}
			drawText(s, 0, screenY, gutterWidth-1, fmt.Sprintf("%*d", gutterWidth-1, lineIdx+1), style)
		}

		gr := uniseg.NewGraphemes(string(lines[lineIdx]))
		visualX, runeIdx := 0, 0
		for gr.Next() {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			if runes[0] == '\t' {
				clusterWidth = tabWidth - visualX%tabWidth
			}

			screenX := visualX - vp.Left + gutterWidth
			if visualX+clusterWidth > vp.Left && screenX < width && screenX >= gutterWidth {
				style := defaultStyle
				pos := types.Position{Line: lineIdx, Col: runeIdx}
				if hasSelection && !pos.Before(sel.Start) && pos.Before(sel.End) {
					style = selectionStyle
				}
				if runes[0] == '\t' {
					fillRow(s, screenX, min(screenX+clusterWidth, width), screenY, style)
				} else {
					s.SetContent(screenX, screenY, runes[0], runes[1:], style)
					fillRow(s, screenX+1, min(screenX+clusterWidth, width), screenY, style)
				}
			}

			visualX += clusterWidth
			runeIdx += len(runes)
			if visualX-vp.Left >= textAreaWidth {
				break
			}
		}
	}

	screenX := cursorVisual - vp.Left + gutterWidth
	screenY := f.Cursor.Line - vp.Top + top
	if screenX < gutterWidth || screenX >= width || screenY < top || screenY >= top+height {
		s.HideCursor()
	} else {
		s.ShowCursor(screenX, screenY)
	}
}

// DrawTabs draws the open files as a tab strip on row y.
func DrawTabs(t *TUI, files []*session.File, active *session.File, y int) {
	s := t.screen
	width, _ := t.Size()
	fillRow(s, 0, width, y, t.Style("Tabs"))

	x := 0
	for _, f := range files {
		label := " " + f.Name
		if f.Unsaved || f.Buffer.IsModified() {
			label += " *"
		}
		label += " "
		style := t.Style("Tabs")
		if active != nil && f.ID == active.ID {
			style = t.Style("Tabs.Active")
		}
		x = drawText(s, x, y, width, label, style)
		if x >= width {
			break
		}
	}
}
