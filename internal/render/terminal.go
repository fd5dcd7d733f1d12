package render

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"

	// DefaultWidth is used when the output is not a terminal.
	DefaultWidth = 80

	barRows = 3
)

// Terminal draws the bar as rows of 24-bit ANSI coloured cells.
type Terminal struct {
	// Width is the bar width in columns.
	Width int
	// Colour enables ANSI escape sequences. Without it segments are drawn
	// as bracketed text.
	Colour bool
}

// NewTerminal configures a renderer for f: when f is a terminal its width
// is used and colour is enabled.
func NewTerminal(f *os.File) *Terminal {
	fd := int(f.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return &Terminal{Width: DefaultWidth}
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = DefaultWidth
	}
	return &Terminal{Width: width, Colour: true}
}

// Render returns the bar followed by a newline.
func (t *Terminal) Render(segments []Segment) string {
	width := t.Width
	if width <= 0 {
		width = DefaultWidth
	}
	cols := columns(segments, width)

	var b strings.Builder
	if !t.Colour {
		for i, s := range segments {
			if cols[i] == 0 {
				continue
			}
			b.WriteString(fitLabel(s, cols[i], true))
		}
		b.WriteString("\n")
		return b.String()
	}

	for row := 0; row < barRows; row++ {
		for i, s := range segments {
			if cols[i] == 0 {
				continue
			}
			text := strings.Repeat(" ", cols[i])
			if row == barRows/2 {
				text = fitLabel(s, cols[i], false)
			}
			b.WriteString(paint(s.Colour, s.LabelColour, text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// fitLabel centres the longest label variant that fits in width cells.
func fitLabel(s Segment, width int, bracket bool) string {
	inner := width
	if bracket {
		inner -= 2
	}

	text := ""
	for _, candidate := range []string{
		fmt.Sprintf("%s %d%%", s.Hex(), s.Percent),
		s.Hex(),
		fmt.Sprintf("%d%%", s.Percent),
	} {
		if len(candidate) <= inner {
			text = candidate
			break
		}
	}

	if inner < 0 {
		return strings.Repeat("|", width)
	}
	padding := (inner - len(text)) / 2
	text = strings.Repeat(" ", padding) + text + strings.Repeat(" ", inner-len(text)-padding)
	if bracket {
		return "[" + text + "]"
	}
	return text
}

// paint wraps text in background and foreground colour escapes.
func paint(bg, fg colour.RGB, text string) string {
	return fmt.Sprintf("%s%d;%d;%d%s%s%d;%d;%d%s%s%s",
		ansiBgPrefix, bg.R, bg.G, bg.B, ansiSuffix,
		ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix,
		text, ansiReset)
}
