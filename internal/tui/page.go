package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const pageHint = "esc/q: close  arrows/pgup/pgdn: scroll"

// Page shows lines full screen until Esc, q or Enter. It returns the error
// of the event stream when that ends first.
func (d *Dialogs) Page(ctx context.Context, title string, lines []string) error {
	offset := 0
	for {
		_, height := d.ui.Size()
		rows := max(1, height-2)
		maxOffset := max(0, len(lines)-rows)
		offset = max(0, min(offset, maxOffset))
		d.drawPage(title, lines, offset, rows)

		ev, err := d.ui.NextEvent(ctx)
		if err != nil {
			return err
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
			return nil
		case tcell.KeyRune:
			if key.Rune() == 'q' {
				return nil
			}
		case tcell.KeyUp:
			offset--
		case tcell.KeyDown:
			offset++
		case tcell.KeyPgUp:
			offset -= rows
		case tcell.KeyPgDn:
			offset += rows
		case tcell.KeyHome:
			offset = 0
		case tcell.KeyEnd:
			offset = maxOffset
		}
	}
}

func (d *Dialogs) drawPage(title string, lines []string, offset, rows int) {
	s := d.ui.screen
	width, height := d.ui.Size()
	s.Clear()

	header := title
	if len(lines) > rows {
		header = fmt.Sprintf("%s (%d/%d)", title, offset+1, len(lines))
	}
	fillRow(s, 0, width, 0, d.ui.Style("Dialog.Title"))
	drawText(s, 1, 0, width, header, d.ui.Style("Dialog.Title"))

	for i := 0; i < rows; i++ {
		y := 1 + i
		fillRow(s, 0, width, y, d.ui.Style("Default"))
		if offset+i < len(lines) {
			line := strings.ReplaceAll(lines[offset+i], "\t", strings.Repeat(" ", tabWidth))
			drawText(s, 1, y, width, line, d.ui.Style("Default"))
		}
	}
	if height > 1 {
		fillRow(s, 0, width, height-1, d.ui.Style("Dialog.Hint"))
		drawText(s, 1, height-1, width, pageHint, d.ui.Style("Dialog.Hint"))
	}
	s.HideCursor()
	d.ui.Show()
}
