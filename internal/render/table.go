package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

// Table is a plain text table with dynamic column widths.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	right   map[int]bool // right aligned columns
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2,
		right:   make(map[int]bool),
	}
}

// AlignRight right aligns the column at colIndex.
func (t *Table) AlignRight(colIndex int) {
	t.right[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	r := make([]string, len(t.headers))
	copy(r, row)
	t.rows = append(t.rows, r)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if t.right[i] {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	line(t.headers)
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	line(seps)
	for _, row := range t.rows {
		line(row)
	}
	return b.String()
}

// ShareTable renders one row per share: rank, hex, rgb, pixel count and
// percentage.
func ShareTable(shares []colour.Share) string {
	t := NewTable([]string{"#", "HEX", "RGB", "PIXELS", "SHARE"})
	t.AlignRight(0)
	t.AlignRight(3)
	t.AlignRight(4)
	for i, s := range shares {
		t.AddRow([]string{
			strconv.Itoa(i + 1),
			s.Hex(),
			fmt.Sprintf("%d,%d,%d", s.Colour.R, s.Colour.G, s.Colour.B),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f%%", s.Percentage*100),
		})
	}
	return t.Render()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
