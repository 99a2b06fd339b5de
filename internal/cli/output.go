// Package cli holds the terminal presentation helpers shared by the
// projectmgr commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green colors s when colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red colors s when colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow colors s when colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray colors s when colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Bold emboldens s when colors are enabled.
func Bold(s string) string { return paint(colorBold, s) }

// Format selects how list commands print their rows.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", &ValidationError{Field: "output", Message: fmt.Sprintf("unknown format %q (want table, json or yaml)", s)}
	}
}

// Encode writes v as indented JSON or YAML.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a structured encoding", format)
	}
}

// DefaultMaxWidth is the default visible width for free-text columns.
const DefaultMaxWidth = 60

// Table lays out rows in left-aligned columns separated by two spaces.
// Widths ignore ANSI escape sequences.
type Table struct {
	header    []string
	rows      [][]string
	widths    []int
	maxWidths map[int]int
}

// NewTable creates a table with an optional header row.
func NewTable(header ...string) *Table {
	t := &Table{}
	if len(header) > 0 {
		t.header = header
		t.track(header)
	}
	return t
}

// SetMaxWidth truncates a column to maxWidth visible characters.
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow appends a row.
func (t *Table) AddRow(cols ...string) {
	t.track(cols)
	t.rows = append(t.rows, cols)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) track(cols []string) {
	for len(t.widths) < len(cols) {
		t.widths = append(t.widths, 0)
	}
	for i, col := range cols {
		w := visibleWidth(col)
		if limit, ok := t.maxWidths[i]; ok && w > limit {
			w = limit
		}
		if w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

// Render writes the header, when set, followed by every row.
func (t *Table) Render(w io.Writer) {
	if t.header != nil {
		t.renderRow(w, t.header, Bold)
	}
	for _, row := range t.rows {
		t.renderRow(w, row, nil)
	}
}

func (t *Table) renderRow(w io.Writer, row []string, style func(string) string) {
	parts := make([]string, len(row))
	for i, col := range row {
		if limit, ok := t.maxWidths[i]; ok {
			col = Truncate(col, limit)
		}
		if i < len(row)-1 {
			col += strings.Repeat(" ", t.widths[i]-visibleWidth(col))
		}
		if style != nil {
			col = style(col)
		}
		parts[i] = col
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// Truncate shortens plain text to maxWidth characters, ending with "...".
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	plain := stripANSI(s)
	runes := []rune(plain)
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripANSI(s))
}
