package levels

import (
	"sort"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// palette holds the structure templates board files may reference by name.
var palette = map[string]scene.Template{
	"block":  {Name: "block", Glyph: '#', Color: core.ColorGray, Bounds: core.V3(1, 1, 1)},
	"tree":   {Name: "tree", Glyph: 'T', Color: core.ColorGreen, Bounds: core.V3(1, 1, 1)},
	"rock":   {Name: "rock", Glyph: 'o', Color: core.ColorBrown, Bounds: core.V3(1, 1, 1)},
	"water":  {Name: "water", Glyph: '~', Color: core.ColorBlue, Bounds: core.V3(1, 1, 1)},
	"flower": {Name: "flower", Glyph: '*', Color: core.ColorMagenta, Bounds: core.V3(1, 1, 1)},
	"house":  {Name: "house", Glyph: 'H', Color: core.ColorOrange, Bounds: core.V3(1, 1, 1)},
	"tower":  {Name: "tower", Glyph: 'I', Color: core.ColorWhite, Bounds: core.V3(1, 1, 1)},
	"flag":   {Name: "flag", Glyph: 'F', Color: core.ColorRed, Bounds: core.V3(1, 1, 1)},
	"coin":   {Name: "coin", Glyph: '$', Color: core.ColorYellow, Bounds: core.V3(1, 1, 1)},
}

// Template returns a fresh copy of the named structure template.
func Template(name string) (*scene.Template, bool) {
	t, ok := palette[name]
	if !ok {
		return nil, false
	}
	return &t, true
}

// TemplateNames returns every palette name in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
