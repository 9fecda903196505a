package board

import (
	"testing"
)

func letters() *MappingTable[string] {
	return NewMappingTable(
		Mapping[string]{Char: 'A', Value: "a"},
		Mapping[string]{Char: 'B', Value: "b"},
		Mapping[string]{Char: 'C', Value: "c"},
	)
}

func TestParseInvertsRows(t *testing.T) {
	got := Parse([]string{"AB", "C"}, letters())

	expected := []Placement[string]{
		{X: 0, Y: 1, Char: 'A', Value: "a"},
		{X: 1, Y: 1, Char: 'B', Value: "b"},
		{X: 0, Y: 0, Char: 'C', Value: "c"},
	}
	if len(got) != len(expected) {
		t.Fatalf("Parse() returned %d placements, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("placement %d = %+v, expected %+v", i, got[i], expected[i])
		}
	}
}

func TestParseSkips(t *testing.T) {
	table := letters()
	table.Register(' ', "space")
	table.Register('\t', "tab")

	tests := []struct {
		name  string
		rows  []string
		count int
	}{
		{"empty layout", nil, 0},
		{"empty rows", []string{"", ""}, 0},
		{"unequal rows", []string{"ABC", "A", "AB"}, 6},
		{"whitespace even when mapped", []string{"A B", "\tC"}, 3},
		{"unmapped characters", []string{"AxB", "?C!"}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.rows, table)
			if len(got) != tc.count {
				t.Errorf("Parse(%q) returned %d placements, expected %d", tc.rows, len(got), tc.count)
			}
			for _, p := range got {
				if p.Char == ' ' || p.Char == '\t' {
					t.Errorf("whitespace produced a placement at (%d,%d)", p.X, p.Y)
				}
			}
		})
	}
}

func TestParseUnequalRowsStayInBounds(t *testing.T) {
	rows := []string{"A", "ABC", "AB"}
	for _, p := range Parse(rows, letters()) {
		row := []rune(rows[len(rows)-1-p.Y])
		if p.X >= len(row) {
			t.Errorf("placement (%d,%d) beyond row length %d", p.X, p.Y, len(row))
		}
	}
}

func TestParseIsRepeatable(t *testing.T) {
	rows := []string{"AB", "CA"}
	first := Parse(rows, letters())
	second := Parse(rows, letters())
	if len(first) != len(second) {
		t.Fatal("repeated Parse should return the same placements")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("placement %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMappingTableFirstWins(t *testing.T) {
	table := NewMappingTable(
		Mapping[string]{Char: 'A', Value: "first"},
		Mapping[string]{Char: 'A', Value: "second"},
	)

	if v, _ := table.Lookup('A'); v != "first" {
		t.Errorf("Lookup('A') = %q, expected first registration", v)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", table.Len())
	}
	if table.Register('A', "third") {
		t.Error("Register should refuse a taken character")
	}
}

func TestLayoutSize(t *testing.T) {
	w, h := LayoutSize([]string{"ab", "abcd", ""})
	if w != 4 || h != 3 {
		t.Errorf("LayoutSize() = (%d, %d), expected (4, 3)", w, h)
	}

	w, h = LayoutSize(nil)
	if w != 0 || h != 0 {
		t.Errorf("LayoutSize(nil) = (%d, %d), expected (0, 0)", w, h)
	}
}

func TestTileTable(t *testing.T) {
	got := Parse([]string{"WNE"}, TileTable())
	want := []TileType{TileWall, TileNormal, TileEmpty}
	for i, p := range got {
		if p.Value != want[i] {
			t.Errorf("column %d parsed as %v, expected %v", i, p.Value, want[i])
		}
	}
}
