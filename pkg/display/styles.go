package display

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// StyleConfig represents the complete styles file
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// styleNames lists every style the terminal renderer looks up.
var styleNames = []string{"Header", "Cell", "Muted", "Result", "Warning", "Error", "Label", "Border"}

// Styles maps semantic names to lipgloss styles bound to one renderer.
type Styles map[string]lipgloss.Style

// LoadStyles builds styles from YAML data for r. Names missing from the data
// get an unstyled default.
func LoadStyles(r *lipgloss.Renderer, data []byte) (Styles, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(Styles, len(styleNames))
	for _, name := range styleNames {
		styles[name] = r.NewStyle()
	}
	for name, def := range cfg.Styles {
		styles[name] = buildStyle(r, def, colors)
	}
	return styles, nil
}

func defaultStyles(r *lipgloss.Renderer) Styles {
	styles, err := LoadStyles(r, embeddedStyles)
	if err != nil {
		styles = make(Styles, len(styleNames))
		for _, name := range styleNames {
			styles[name] = r.NewStyle()
		}
	}
	return styles
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := r.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		PaddingLeft(def.PaddingLeft).
		PaddingRight(def.PaddingRight)

	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		} else {
			style = style.Foreground(lipgloss.Color(def.Foreground))
		}
	}
	return style
}
