package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	emptyCell = "-"
	anyRange  = "any"
)

// Renderer writes views in one output format.
type Renderer interface {
	RenderModel(view ModelView) error
	RenderCalculation(view CalculationView) error
}

// NewRenderer returns the renderer for f. FormatAuto must be resolved by the
// caller first; it is treated as FormatText here.
func NewRenderer(w io.Writer, f Format) Renderer {
	switch f {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return &jsonRenderer{encoder: encoder}
	case FormatTerminal:
		r := lipgloss.NewRenderer(w)
		return &terminalRenderer{output: w, styles: defaultStyles(r)}
	default:
		return &textRenderer{output: w}
	}
}

// RenderError writes err to output, styled when output supports color.
func RenderError(output io.Writer, err error) {
	styles := defaultStyles(lipgloss.NewRenderer(output))
	_, _ = fmt.Fprintln(output, styles["Error"].Render(fmt.Sprintf("Error: %v", err)))
}

func cells(rule RuleView) []string {
	row := []string{fmt.Sprint(rule.Index), rule.Percent, rule.Absolute, anyRange}
	if rule.Range != nil {
		row[3] = rule.Range.Text
	}
	for i, c := range row {
		if c == "" {
			row[i] = emptyCell
		}
	}
	return row
}

var headers = []string{"#", "PERCENT", "ABSOLUTE", "RANGE"}

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func (r *jsonRenderer) RenderModel(view ModelView) error {
	return r.encoder.Encode(view)
}

func (r *jsonRenderer) RenderCalculation(view CalculationView) error {
	return r.encoder.Encode(view)
}

// textRenderer provides plain text output without colors or styling
type textRenderer struct {
	output io.Writer
}

func (r *textRenderer) RenderModel(view ModelView) error {
	if len(view.Rules) == 0 {
		_, err := fmt.Fprintln(r.output, "no rules")
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, joinTabs(headers)); err != nil {
		return err
	}
	for _, rule := range view.Rules {
		if _, err := fmt.Fprintln(tw, joinTabs(cells(rule))); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (r *textRenderer) RenderCalculation(view CalculationView) error {
	if !view.Matched {
		_, err := fmt.Fprintf(r.output, "no matching rule for %s\n", view.Price)
		return err
	}
	if view.Rule != nil {
		_, err := fmt.Fprintf(r.output, "%s -> %s (rule %d)\n", view.Price, view.Result, view.Rule.Index)
		return err
	}
	_, err := fmt.Fprintf(r.output, "%s -> %s\n", view.Price, view.Result)
	return err
}

func joinTabs(row []string) string {
	return strings.Join(row, "\t")
}

// terminalRenderer provides styled tables for interactive terminals
type terminalRenderer struct {
	output io.Writer
	styles Styles
}

func (r *terminalRenderer) RenderModel(view ModelView) error {
	if len(view.Rules) == 0 {
		_, err := fmt.Fprintln(r.output, r.styles["Warning"].Render("no rules"))
		return err
	}

	rows := make([][]string, len(view.Rules))
	for i, rule := range view.Rules {
		rows[i] = cells(rule)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles["Border"]).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles["Header"]
			}
			if row >= 0 && row < len(rows) && rows[row][col] == emptyCell {
				return r.styles["Muted"]
			}
			return r.styles["Cell"]
		})

	_, err := fmt.Fprintln(r.output, t.Render())
	return err
}

func (r *terminalRenderer) RenderCalculation(view CalculationView) error {
	if !view.Matched {
		_, err := fmt.Fprintln(r.output, r.styles["Warning"].Render("no matching rule for "+view.Price))
		return err
	}

	line := r.styles["Label"].Render(view.Price+" -> ") + r.styles["Result"].Render(view.Result)
	if view.Rule != nil {
		line += r.styles["Label"].Render(fmt.Sprintf(" (rule %d)", view.Rule.Index))
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}
