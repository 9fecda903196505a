// Package formats provides pluggable board file format parsers.
package formats

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every structural problem in a board file.
var ErrInvalid = errors.New("invalid board")

// YAMLBoard represents the YAML structure for a board file.
type YAMLBoard struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Size       YAMLSize          `yaml:"size,omitempty"`
	Layout     []string          `yaml:"layout"`
	Structures []YAMLStructure   `yaml:"structures,omitempty"`
	Blueprints [][]string        `yaml:"blueprints,omitempty"`
	Holders    []YAMLHolder      `yaml:"holders,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions for boards without a layout.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLStructure maps one blueprint character to a structure template.
type YAMLStructure struct {
	Char     string    `yaml:"char"`
	Template string    `yaml:"template"`
	Scale    []float64 `yaml:"scale,omitempty"`
}

// YAMLHolder places a single holder structure on one tile.
type YAMLHolder struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Template string `yaml:"template"`
}

// Structure is a parsed character mapping.
type Structure struct {
	Char     rune
	Template string
	Scale    [3]float64 // Zero means fit the sub-cell
}

// Holder is a parsed holder placement.
type Holder struct {
	X, Y     int
	Template string
}

// Board represents a parsed board ready for use.
type Board struct {
	ID         string
	Name       string
	Width      int
	Height     int
	Layout     []string
	Structures []Structure
	Blueprints [][]string
	Holders    []Holder
	Metadata   map[string]string
}

// ParseYAML parses a YAML board file.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yb.ID == "" {
		return Board{}, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if len(yb.Layout) == 0 && (yb.Size.W <= 0 || yb.Size.H <= 0) {
		return Board{}, fmt.Errorf("%w: %s has neither layout nor size", ErrInvalid, yb.ID)
	}

	name := yb.Name
	if name == "" {
		name = yb.ID
	}

	b := Board{
		ID:         yb.ID,
		Name:       name,
		Width:      yb.Size.W,
		Height:     yb.Size.H,
		Layout:     yb.Layout,
		Blueprints: yb.Blueprints,
		Metadata:   yb.Metadata,
	}

	// Width is the longest row; short rows leave empty slots.
	if len(yb.Layout) > 0 {
		b.Width, b.Height = 0, len(yb.Layout)
		for _, row := range yb.Layout {
			b.Width = max(b.Width, utf8.RuneCountInString(row))
		}
	}

	for _, s := range yb.Structures {
		if utf8.RuneCountInString(s.Char) != 1 {
			return Board{}, fmt.Errorf("%w: structure char %q must be a single character", ErrInvalid, s.Char)
		}
		if s.Template == "" {
			return Board{}, fmt.Errorf("%w: structure %q has no template", ErrInvalid, s.Char)
		}
		st := Structure{Template: s.Template}
		st.Char, _ = utf8.DecodeRuneInString(s.Char)
		switch len(s.Scale) {
		case 0:
		case 3:
			copy(st.Scale[:], s.Scale)
		default:
			return Board{}, fmt.Errorf("%w: structure %q scale needs 3 values", ErrInvalid, s.Char)
		}
		b.Structures = append(b.Structures, st)
	}

	for _, h := range yb.Holders {
		if h.Template == "" {
			return Board{}, fmt.Errorf("%w: holder at (%d,%d) has no template", ErrInvalid, h.X, h.Y)
		}
		b.Holders = append(b.Holders, Holder{X: h.X, Y: h.Y, Template: h.Template})
	}

	return b, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
