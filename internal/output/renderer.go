package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/atikulmunna/logtally/internal/aggregator"
	"github.com/atikulmunna/logtally/internal/model"
)

const (
	tableHeader    = "Рівень логування | Кількість"
	tableSeparator = "-----------------|----------"
	levelColumn    = 17
)

// Report is everything one run prints: the per-level counts and, when a
// level filter was given, the matching records.
type Report struct {
	Counts  aggregator.LevelCount
	Level   string // empty when no filter was requested
	Details []model.LogRecord
}

// Renderer writes a Report to an output stream.
type Renderer interface {
	Render(r Report) error
}

// New returns the Renderer for format ("text", "json" or "yaml").
func New(format string, w io.Writer, color bool) (Renderer, error) {
	switch format {
	case "", "text":
		return &TextRenderer{w: w, color: color}, nil
	case "json":
		return NewJSONRenderer(w), nil
	case "yaml":
		return &YAMLRenderer{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer
// ---------------------------------------------------------------------------

var (
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))            // yellow
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleFatal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true) // white on red
)

// TextRenderer prints the level table and detail listing as plain text.
type TextRenderer struct {
	w     io.Writer
	color bool
}

func (r *TextRenderer) Render(rep Report) error {
	lines := []string{tableHeader, tableSeparator}
	for _, level := range rep.Counts.Levels() {
		lines = append(lines, fmt.Sprintf("%s | %d", r.levelCell(level), rep.Counts.Get(level)))
	}

	if rep.Level != "" {
		lines = append(lines, "", fmt.Sprintf("Деталі логів рівня '%s':", rep.Level))
		for _, rec := range rep.Details {
			lines = append(lines, rec.String())
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) levelCell(level string) string {
	padded := fmt.Sprintf("%-*s", levelColumn, level)
	if !r.color {
		return padded
	}
	return styleLevel(level).Render(padded)
}

func styleLevel(level string) lipgloss.Style {
	switch level {
	case "DEBUG", "TRACE":
		return styleDebug
	case "WARN", "WARNING":
		return styleWarn
	case "ERROR":
		return styleError
	case "FATAL", "CRITICAL":
		return styleFatal
	default:
		return styleInfo
	}
}

// ---------------------------------------------------------------------------
// Structured Renderers (JSON / YAML for piping)
// ---------------------------------------------------------------------------

type levelEntry struct {
	Level string `json:"level" yaml:"level"`
	Count int    `json:"count" yaml:"count"`
}

type document struct {
	Counts  []levelEntry      `json:"counts" yaml:"counts"`
	Total   int               `json:"total" yaml:"total"`
	Level   string            `json:"level,omitempty" yaml:"level,omitempty"`
	Details []model.LogRecord `json:"details,omitempty" yaml:"details,omitempty"`
}

func newDocument(rep Report) document {
	doc := document{
		Counts:  make([]levelEntry, 0, rep.Counts.Len()),
		Total:   rep.Counts.Total(),
		Level:   rep.Level,
		Details: rep.Details,
	}
	for _, level := range rep.Counts.Levels() {
		doc.Counts = append(doc.Counts, levelEntry{Level: level, Count: rep.Counts.Get(level)})
	}
	return doc
}

// JSONRenderer prints the report as a single indented JSON document.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(rep Report) error {
	return r.enc.Encode(newDocument(rep))
}

// YAMLRenderer prints the report as a YAML document.
type YAMLRenderer struct {
	w io.Writer
}

func (r *YAMLRenderer) Render(rep Report) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(rep)); err != nil {
		return err
	}
	return enc.Close()
}
