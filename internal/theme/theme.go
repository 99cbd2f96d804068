// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidepad/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. Dotted names fall back to their base
// name ("Dialog.Selected" -> "Dialog"), then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if t == nil {
		return tcell.StyleDefault
	}
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Merge returns a copy of t with the styles of over applied on top.
func (t *Theme) Merge(over *Theme) *Theme {
	out := &Theme{Name: t.Name, IsDark: t.IsDark, Styles: make(map[string]tcell.Style, len(t.Styles))}
	for k, v := range t.Styles {
		out.Styles[k] = v
	}
	if over == nil {
		return out
	}
	out.Name, out.IsDark = over.Name, over.IsDark
	for k, v := range over.Styles {
		out.Styles[k] = v
	}
	return out
}

// DevComfortDark is the built-in theme.
func DevComfortDark() *Theme {
	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcPanel := tcell.NewHexColor(0x353b45)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcRed := tcell.NewHexColor(0xe06c75)
	dcBlue := tcell.NewHexColor(0x61afef)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)
	panel := tcell.StyleDefault.Background(dcPanel).Foreground(dcForeground)

	return &Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":         baseStyle,
			"Selection":       baseStyle.Reverse(true),
			"SearchHighlight": tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			"LineNumber":      baseStyle.Foreground(dcComment),

			"StatusBar":          tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBar.Modified": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"StatusBar.Message":  tcell.StyleDefault.Background(dcBackground).Foreground(dcGreen).Bold(true),

			"Tabs":        tcell.StyleDefault.Background(dcBackground).Foreground(dcComment),
			"Tabs.Active": tcell.StyleDefault.Background(dcPanel).Foreground(dcForeground).Bold(true),

			"Dialog":          panel,
			"Dialog.Title":    panel.Foreground(dcBlue).Bold(true),
			"Dialog.Selected": panel.Reverse(true),
			"Dialog.Error":    panel.Foreground(dcRed),
			"Dialog.Hint":     panel.Foreground(dcComment),

			"Alert":       panel,
			"Alert.Title": panel.Foreground(dcRed).Bold(true),
		},
	}
}
