package render

import (
	"strings"
	"testing"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Age"})

	table.AddRow([]string{"Alice", "30"})
	table.AddRow([]string{"Bob"})
	table.AddRow([]string{"Charlie", "25", "Extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated, got %q", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Name", "Value"})
	table.AlignRight(1)
	table.AddRow([]string{"Short", "1"})
	table.AddRow([]string{"VeryLongName", "200"})

	want := "Name          Value\n" +
		"------------  -----\n" +
		"Short             1\n" +
		"VeryLongName    200\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Expected empty string for empty table, got: %q", got)
	}

	output := NewTable([]string{"Column1", "Column2"}).Render()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Column1") || !strings.HasPrefix(lines[1], "---") {
		t.Errorf("Expected header and separator only, got %q", output)
	}
}

func TestShareTable(t *testing.T) {
	output := ShareTable([]colour.Share{
		{Colour: colour.RGB{R: 255, G: 128}, Count: 180000, Percentage: 0.75},
		{Colour: colour.RGB{B: 10}, Count: 60000, Percentage: 0.25},
	})

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), output)
	}
	for _, want := range []string{"#ff8000", "255,128,0", "180000", "75.00%"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("row 1 %q missing %q", lines[2], want)
		}
	}
	if !strings.HasPrefix(lines[3], "2") || !strings.Contains(lines[3], "#00000a") {
		t.Errorf("row 2 = %q", lines[3])
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		input string
		width int
		right string
		left  string
	}{
		{"test", 6, "test  ", "  test"},
		{"hello", 5, "hello", "hello"},
		{"world", 3, "world", "world"},
		{"", 2, "  ", "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.right {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.right)
		}
		if got := padLeft(tt.input, tt.width); got != tt.left {
			t.Errorf("padLeft(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.left)
		}
	}
}
