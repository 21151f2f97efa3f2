package maze

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/mazegen/internal/telemetry"
)

const (
	// MinDimension is the smallest accepted row or column count.
	MinDimension = 3

	// Default maze dimensions
	DefaultRows = 8
	DefaultCols = 8

	// DefaultSeed is the seed text used when none is given.
	DefaultSeed = "default"
)

// ErrInvalidDimension is returned when either dimension is below MinDimension.
var ErrInvalidDimension = errors.New("maze dimensions must be at least 3x3")

// ValidateDimensions returns ErrInvalidDimension if rows or cols is too small.
func ValidateDimensions(rows, cols int) error {
	if rows < MinDimension || cols < MinDimension {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, rows, cols)
	}
	return nil
}

// Generate builds a maze of the given size with a random source seeded once from seed.
// Identical inputs always produce identical grids.
func Generate(ctx context.Context, rows, cols int, seed Seed) (*Grid, error) {
	return generate(ctx, rows, cols, seed.Rand(), attribute.Int64("maze.seed", int64(seed)))
}

// GenerateWithRand builds a maze drawing from a caller-owned random source.
// The source must not be shared with concurrent callers.
func GenerateWithRand(ctx context.Context, rows, cols int, rng *rand.Rand) (*Grid, error) {
	return generate(ctx, rows, cols, rng)
}

func generate(ctx context.Context, rows, cols int, rng *rand.Rand, attrs ...attribute.KeyValue) (*Grid, error) {
	tracer := telemetry.Tracer("maze")
	_, span := tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()
	span.SetAttributes(attrs...)
	span.SetAttributes(
		attribute.Int("maze.rows", rows),
		attribute.Int("maze.cols", cols),
	)

	if err := ValidateDimensions(rows, cols); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	g := newGenerator(rows, cols, rng)
	grid := g.run()

	span.SetAttributes(
		attribute.Int("maze.passages", grid.PassageCount()),
		attribute.Int("maze.iterations", grid.stats.Iterations),
		attribute.Int("maze.peak_frontier", grid.stats.PeakFrontier),
		attribute.Int64("maze.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return grid, nil
}

// generator owns the grid buffer and frontier of one run.
type generator struct {
	rows, cols int
	cells      []CellState
	rng        *rand.Rand

	frontier []Position
	current  Position
	stats    Stats
}

func newGenerator(rows, cols int, rng *rand.Rand) *generator {
	return &generator{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols), // all Undefined
		rng:   rng,
	}
}

// run carves the maze to completion and freezes the result.
func (g *generator) run() *Grid {
	// Start away from the border
	row := 1 + g.rng.Intn(g.rows-2)
	col := 1 + g.rng.Intn(g.cols-2)
	start := Position{Row: row, Col: col}

	g.set(start, Passage)
	g.current = start
	g.markWalls(start)
	g.frontier = g.appendAdjacent(g.frontier, start, Wall)
	g.stats.PeakFrontier = len(g.frontier)

	for len(g.frontier) > 0 {
		g.stats.Iterations++

		i := g.rng.Intn(len(g.frontier))
		w := g.frontier[i]
		if g.eligible(w) {
			g.carve(w)
		}

		// The evaluated entry goes regardless of outcome; duplicates stay queued.
		g.frontier = slices.Delete(g.frontier, i, i+1)
	}

	grid := &Grid{
		rows:  g.rows,
		cols:  g.cols,
		start: start,
		stats: g.stats,
	}
	grid.entrance, grid.hasEntrance = g.openBorder(1, 0)
	grid.exit, grid.hasExit = g.openBorder(g.cols-2, g.cols-1)
	g.fillUndefined()
	grid.cells = g.cells
	g.cells = nil
	return grid
}

// carve turns w into a passage and grows the frontier around it.
func (g *generator) carve(w Position) {
	g.set(w, Passage)
	g.stats.Carved++

	// Extend the corridor: the cell two steps from current in the carving direction becomes a wall.
	// Current and w are both interior, so the target is on the grid whenever w is eligible;
	// an off-grid target only skips this extension.
	if dir, ok := directionTo(g.current, w); ok {
		ext := g.current.Add(dir).Add(dir)
		if g.inBounds(ext) && g.at(ext) == Undefined {
			g.set(ext, Wall)
		}
	}

	g.current = w
	g.markWalls(w)
	g.frontier = g.appendAdjacent(g.frontier, w, Wall)
	if len(g.frontier) > g.stats.PeakFrontier {
		g.stats.PeakFrontier = len(g.frontier)
	}
}

// eligible reports whether carving w keeps the passages a single tree.
func (g *generator) eligible(w Position) bool {
	// Both diagonal corners in bounds keeps border cells solid.
	if !g.inBounds(Position{w.Row + 1, w.Col + 1}) || !g.inBounds(Position{w.Row - 1, w.Col - 1}) {
		return false
	}

	straddles := 0
	if g.straddles(w.Add(Left), w.Add(Right)) {
		straddles++
	}
	if g.straddles(w.Add(Up), w.Add(Down)) {
		straddles++
	}
	if straddles != 1 {
		return false
	}

	return g.countAdjacent(w, Passage) == 1
}

// straddles reports whether a and b are one Undefined and one Passage, in either order.
func (g *generator) straddles(a, b Position) bool {
	sa, sb := g.at(a), g.at(b)
	return (sa == Undefined && sb == Passage) || (sa == Passage && sb == Undefined)
}

// markWalls sets every in-bounds, non-passage neighbor of p to Wall.
func (g *generator) markWalls(p Position) {
	for _, n := range p.Neighbors() {
		if g.inBounds(n) && g.at(n) != Passage {
			g.set(n, Wall)
		}
	}
}

// appendAdjacent appends every in-bounds neighbor of p in state s to dst.
func (g *generator) appendAdjacent(dst []Position, p Position, s CellState) []Position {
	for _, n := range p.Neighbors() {
		if g.inBounds(n) && g.at(n) == s {
			dst = append(dst, n)
		}
	}
	return dst
}

func (g *generator) countAdjacent(p Position, s CellState) int {
	n := 0
	for _, q := range p.Neighbors() {
		if g.inBounds(q) && g.at(q) == s {
			n++
		}
	}
	return n
}

// openBorder scans rows top to bottom for the first passage in column inner and
// opens the matching cell in column border.
func (g *generator) openBorder(inner, border int) (Position, bool) {
	for r := 0; r < g.rows; r++ {
		if g.at(Position{r, inner}) == Passage {
			p := Position{r, border}
			g.set(p, Passage)
			return p, true
		}
	}
	return Position{}, false
}

// fillUndefined converts every cell the carver never reached to Wall.
func (g *generator) fillUndefined() {
	for i, c := range g.cells {
		if c == Undefined {
			g.cells[i] = Wall
		}
	}
}

func (g *generator) inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// at returns the state at p. Callers check bounds first; off-grid reads return Undefined.
func (g *generator) at(p Position) CellState {
	if !g.inBounds(p) {
		return Undefined
	}
	return g.cells[p.Row*g.cols+p.Col]
}

func (g *generator) set(p Position, s CellState) {
	g.cells[p.Row*g.cols+p.Col] = s
}
