package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Texter is implemented by CLI payloads that have a human-readable rendering.
type Texter interface {
	Text() string
}

// Table is a simple tabular payload. It renders as a bordered table in text
// mode and as a list of objects keyed by header in JSON mode.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Text() string {
	if len(t.Rows) == 0 {
		return "(none)"
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		String()
}

func (t Table) MarshalJSON() ([]byte, error) {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		m := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(r) {
				m[h] = r[i]
			}
		}
		out = append(out, m)
	}
	return json.Marshal(out)
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders Texter payloads; anything else falls back to indented JSON.
func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Texter); ok {
		_, err := fmt.Fprintln(w, t.Text())
		return err
	}
	return WriteJSON(w, v, true)
}
