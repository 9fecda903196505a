package board

import (
	"unicode"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// Mapping binds a layout character to a value.
type Mapping[T any] struct {
	Char  rune
	Value T
}

// MappingTable resolves layout characters. The first registration of a
// character wins; later duplicates are ignored.
type MappingTable[T any] struct {
	order  []rune
	byChar map[rune]T
}

// NewMappingTable creates a table from mappings in registration order.
func NewMappingTable[T any](mappings ...Mapping[T]) *MappingTable[T] {
	mt := &MappingTable[T]{byChar: make(map[rune]T, len(mappings))}
	for _, m := range mappings {
		mt.Register(m.Char, m.Value)
	}
	return mt
}

// Register adds a mapping. Returns false if the character was already taken.
func (mt *MappingTable[T]) Register(ch rune, v T) bool {
	if _, exists := mt.byChar[ch]; exists {
		return false
	}
	mt.byChar[ch] = v
	mt.order = append(mt.order, ch)
	return true
}

// Lookup returns the value registered for ch.
func (mt *MappingTable[T]) Lookup(ch rune) (T, bool) {
	if mt == nil {
		var zero T
		return zero, false
	}
	v, ok := mt.byChar[ch]
	return v, ok
}

// Chars returns registered characters in registration order.
func (mt *MappingTable[T]) Chars() []rune {
	return append([]rune(nil), mt.order...)
}

// Len returns the number of registered characters.
func (mt *MappingTable[T]) Len() int {
	if mt == nil {
		return 0
	}
	return len(mt.order)
}

// Placement is one resolved layout character.
// Y is already inverted: text row 0 has the highest Y.
type Placement[T any] struct {
	X     int
	Y     int
	Char  rune
	Value T
}

// StructureMapping describes what to spawn for a structure layout character.
type StructureMapping struct {
	Template *scene.Template
	// CustomScale overrides the auto-fit scale. The zero vector means auto-fit.
	CustomScale core.Vec3
}

// LayoutSize returns the layout's width (longest row, in runes) and height (row count).
func LayoutSize(rows []string) (w, h int) {
	for _, row := range rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w, len(rows)
}

// Parse resolves every mapped character in rows. Rows may differ in length;
// whitespace and unmapped characters produce no placement. Output is ordered
// by text row, then column.
func Parse[T any](rows []string, table *MappingTable[T]) []Placement[T] {
	height := len(rows)
	var out []Placement[T]
	for y, row := range rows {
		for x, ch := range []rune(row) {
			if unicode.IsSpace(ch) {
				continue
			}
			v, ok := table.Lookup(ch)
			if !ok {
				continue
			}
			out = append(out, Placement[T]{
				X:     x,
				Y:     height - 1 - y,
				Char:  ch,
				Value: v,
			})
		}
	}
	return out
}
