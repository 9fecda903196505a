package swap

import "github.com/vovakirdan/swapgrid/internal/games/swap/board"

// Glyphs selects the characters used to draw tiles, borders and the cursor.
type Glyphs struct {
	Normal  rune
	Wall    rune
	Empty   rune
	HBorder rune
	VBorder rune
	Cross   rune
	Cursor  [4]rune // top-left, top-right, bottom-left, bottom-right
}

// ASCIIGlyphs draws with plain ASCII, for files and pipes.
var ASCIIGlyphs = Glyphs{
	Normal:  '.',
	Wall:    '#',
	Empty:   ' ',
	HBorder: '-',
	VBorder: '|',
	Cross:   '+',
	Cursor:  [4]rune{'+', '+', '+', '+'},
}

// BlockGlyphs draws with box and shade characters for terminals.
var BlockGlyphs = Glyphs{
	Normal:  '░',
	Wall:    '█',
	Empty:   '·',
	HBorder: '─',
	VBorder: '│',
	Cross:   '┼',
	Cursor:  [4]rune{'┌', '┐', '└', '┘'},
}

// Tile returns the glyph for a tile type.
func (gl Glyphs) Tile(t board.TileType) rune {
	switch t {
	case board.TileWall:
		return gl.Wall
	case board.TileEmpty:
		return gl.Empty
	default:
		return gl.Normal
	}
}
