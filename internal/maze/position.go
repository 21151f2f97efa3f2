package maze

// Position is a (row, col) coordinate on the grid.
type Position struct {
	Row int
	Col int
}

// Direction is a unit step between orthogonal neighbors.
type Direction struct {
	DRow, DCol int
}

var (
	Up    = Direction{-1, 0}
	Down  = Direction{1, 0}
	Left  = Direction{0, -1}
	Right = Direction{0, 1}
)

// directions lists the orthogonal steps in neighbor scan order.
var directions = [4]Direction{Up, Down, Left, Right}

// Add returns the position one step away in the given direction.
func (p Position) Add(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// Neighbors returns the four orthogonal neighbors of p, in bounds or not.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range directions {
		out[i] = p.Add(d)
	}
	return out
}

// directionTo returns the unit step used to extend a corridor from cur towards w.
// The row offset wins over the column offset; ok is false when neither is a unit step.
func directionTo(cur, w Position) (Direction, bool) {
	switch w.Row - cur.Row {
	case -1:
		return Up, true
	case 1:
		return Down, true
	}
	switch w.Col - cur.Col {
	case -1:
		return Left, true
	case 1:
		return Right, true
	}
	return Direction{}, false
}
