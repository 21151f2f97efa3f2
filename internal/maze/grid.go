package maze

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Grid is a finished maze. It is never mutated after Generate returns it.
type Grid struct {
	rows  int
	cols  int
	cells []CellState // row-major

	start       Position
	entrance    Position
	exit        Position
	hasEntrance bool
	hasExit     bool
	stats       Stats
}

// Stats describes a single generation run.
type Stats struct {
	Iterations   int // Frontier entries evaluated
	Carved       int // Walls converted to passages
	PeakFrontier int // Largest frontier size observed
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the state at the given position. Positions off the grid read as Wall.
func (g *Grid) At(row, col int) CellState {
	if !g.InBounds(row, col) {
		return Wall
	}
	return g.cells[row*g.cols+col]
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(row, col int) bool {
	return g.At(row, col).IsPassable()
}

// Cells returns a copy of the grid, rows outer and columns inner.
func (g *Grid) Cells() [][]CellState {
	out := make([][]CellState, g.rows)
	for r := range out {
		out[r] = make([]CellState, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Start returns the interior cell carving began from.
func (g *Grid) Start() Position { return g.start }

// Entrance returns the opening on the left border, if one was carved.
func (g *Grid) Entrance() (Position, bool) { return g.entrance, g.hasEntrance }

// Exit returns the opening on the right border, if one was carved.
func (g *Grid) Exit() (Position, bool) { return g.exit, g.hasExit }

// Stats returns counters collected while the grid was generated.
func (g *Grid) Stats() Stats { return g.stats }

// PassageCount returns the number of Passage cells.
func (g *Grid) PassageCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Passage {
			n++
		}
	}
	return n
}

// String dumps the numeric state of every cell, each followed by two spaces, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			sb.WriteString(strconv.Itoa(int(g.cells[r*g.cols+c])))
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// gridJSON is the wire shape of a Grid.
type gridJSON struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Cells [][]int `json:"cells"`
}

// MarshalJSON encodes the grid as its dimensions plus a matrix of numeric cell states.
func (g *Grid) MarshalJSON() ([]byte, error) {
	out := gridJSON{Rows: g.rows, Cols: g.cols, Cells: make([][]int, g.rows)}
	for r := range out.Cells {
		row := make([]int, g.cols)
		for c := range row {
			row[c] = int(g.cells[r*g.cols+c])
		}
		out.Cells[r] = row
	}
	return json.Marshal(out)
}
