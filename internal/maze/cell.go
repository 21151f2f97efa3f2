// Package maze provides seeded grid-maze generation.
package maze

import "strconv"

// CellState represents the state of a single grid cell.
type CellState int

const (
	// Undefined marks a cell the carver has not reached yet. It never appears in a finished Grid.
	Undefined CellState = iota
	// Wall represents a blocking cell.
	Wall
	// Passage represents a traversable cell.
	Passage
)

// String returns a human-readable state name.
func (s CellState) String() string {
	switch s {
	case Undefined:
		return "undefined"
	case Wall:
		return "wall"
	case Passage:
		return "passage"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// IsPassable returns true if the cell can be walked on.
func (s CellState) IsPassable() bool {
	return s == Passage
}

// Rune returns the cell's display character.
func (s CellState) Rune() rune {
	switch s {
	case Wall:
		return '#'
	case Passage:
		return '.'
	default:
		return '?'
	}
}
