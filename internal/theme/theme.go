package theme

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazegen/internal/maze"
)

// Def defines a palette loaded from themes.json.
type Def struct {
	ID           string `json:"id"`           // Unique identifier (e.g., "classic")
	Name         string `json:"name"`         // Display name
	WallGlyph    string `json:"wallGlyph"`    // Character drawn for walls
	PassageGlyph string `json:"passageGlyph"` // Character drawn for passages
	OpeningGlyph string `json:"openingGlyph"` // Character drawn for the entrance and exit
	Wall         string `json:"wall"`         // Hex foreground colors
	Passage      string `json:"passage"`
	Opening      string `json:"opening"`
	Background   string `json:"background"`
}

// ThemesFile represents the structure of themes.json.
type ThemesFile struct {
	Themes []Def `json:"themes"`
}

// LoadThemes loads theme definitions from the embedded themes.json file.
func LoadThemes() ([]Def, error) {
	file, err := Load[ThemesFile]("themes.json")
	if err != nil {
		return nil, err
	}
	return file.Themes, nil
}

// Glyph returns the character for a cell. Openings use the opening glyph.
func (d *Def) Glyph(state maze.CellState, opening bool) rune {
	switch {
	case opening:
		return glyphRune(d.OpeningGlyph, state.Rune())
	case state == maze.Wall:
		return glyphRune(d.WallGlyph, state.Rune())
	case state == maze.Passage:
		return glyphRune(d.PassageGlyph, state.Rune())
	default:
		return state.Rune()
	}
}

// Style returns the tcell style for a cell.
func (d *Def) Style(state maze.CellState, opening bool) tcell.Style {
	style := tcell.StyleDefault.Background(colorOr(d.Background, tcell.ColorBlack))
	switch {
	case opening:
		return style.Foreground(colorOr(d.Opening, tcell.ColorYellow)).Bold(true)
	case state == maze.Wall:
		return style.Foreground(colorOr(d.Wall, tcell.ColorDarkGray))
	case state == maze.Passage:
		return style.Foreground(colorOr(d.Passage, tcell.ColorGray))
	default:
		return style
	}
}

// Text renders grid with this theme's glyphs, one line per row.
func (d *Def) Text(grid *maze.Grid) []byte {
	buf := make([]byte, 0, grid.Rows()*(grid.Cols()+1))
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			buf = utf8.AppendRune(buf, d.Glyph(grid.At(r, c), IsOpening(grid, r, c)))
		}
		buf = append(buf, '\n')
	}
	return buf
}

// IsOpening reports whether (row, col) is the grid's entrance or exit.
func IsOpening(grid *maze.Grid, row, col int) bool {
	p := maze.Position{Row: row, Col: col}
	if e, ok := grid.Entrance(); ok && e == p {
		return true
	}
	if e, ok := grid.Exit(); ok && e == p {
		return true
	}
	return false
}

// glyphRune returns the first rune of s, or fallback if s is empty.
func glyphRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
