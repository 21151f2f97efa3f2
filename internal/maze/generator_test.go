package maze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

// sizes covers square, wide, tall and minimal grids.
var sizes = []struct{ rows, cols int }{
	{3, 3}, {3, 9}, {9, 3}, {4, 4}, {5, 7}, {8, 8}, {12, 5}, {21, 21}, {31, 47},
}

// forEachMaze generates a maze for every size and a spread of seeds.
func forEachMaze(t *testing.T, fn func(t *testing.T, g *Grid)) {
	t.Helper()
	ctx := context.Background()
	for _, sz := range sizes {
		for seed := int64(0); seed < 25; seed++ {
			g, err := Generate(ctx, sz.rows, sz.cols, Seed(seed))
			if err != nil {
				t.Fatalf("Generate(%d, %d, %d) failed: %v", sz.rows, sz.cols, seed, err)
			}
			t.Run(fmt.Sprintf("%dx%d/seed=%d", sz.rows, sz.cols, seed), func(t *testing.T) {
				fn(t, g)
			})
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	ctx := context.Background()
	seed := SeedFromString(DefaultSeed)

	g1, err := Generate(ctx, DefaultRows, DefaultCols, seed)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g2, err := Generate(ctx, DefaultRows, DefaultCols, seed)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if g1.Start() != g2.Start() {
		t.Errorf("Start mismatch: %v != %v", g1.Start(), g2.Start())
	}
	for r := 0; r < g1.Rows(); r++ {
		for c := 0; c < g1.Cols(); c++ {
			if g1.At(r, c) != g2.At(r, c) {
				t.Errorf("Cell mismatch at (%d,%d): %v != %v", r, c, g1.At(r, c), g2.At(r, c))
			}
		}
	}
	if g1.Stats() != g2.Stats() {
		t.Errorf("Stats mismatch: %+v != %+v", g1.Stats(), g2.Stats())
	}
}

func TestGenerateWithRandMatchesSeed(t *testing.T) {
	ctx := context.Background()

	g1, err := Generate(ctx, 15, 11, Seed(12345))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g2, err := GenerateWithRand(ctx, 15, 11, rand.New(rand.NewSource(12345)))
	if err != nil {
		t.Fatalf("GenerateWithRand failed: %v", err)
	}

	if g1.String() != g2.String() {
		t.Errorf("Grids differ:\n%s\n%s", g1, g2)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	ctx := context.Background()

	g1, err := Generate(ctx, 21, 21, Seed(12345))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g2, err := Generate(ctx, 21, 21, Seed(54321))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if g1.String() == g2.String() {
		t.Error("Mazes with different seeds should not be identical")
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	tests := []struct {
		rows, cols int
	}{
		{2, 8},
		{8, 2},
		{0, 0},
		{-1, 5},
		{2, 2},
	}

	for _, tt := range tests {
		g, err := Generate(context.Background(), tt.rows, tt.cols, SeedFromString(DefaultSeed))
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Generate(%d, %d) error = %v, want ErrInvalidDimension", tt.rows, tt.cols, err)
		}
		if g != nil {
			t.Errorf("Generate(%d, %d) returned a partial grid", tt.rows, tt.cols)
		}
	}
}

func TestGenerateSmallest(t *testing.T) {
	g, err := Generate(context.Background(), 3, 3, Seed(7))
	if err != nil {
		t.Fatalf("Generate(3, 3) failed: %v", err)
	}

	// Every frontier wall of a 3x3 grid sits on the border, so only the centre is carved
	// and the two openings punch through beside it.
	want := "1  1  1  \n2  2  2  \n1  1  1  \n"
	if got := g.String(); got != want {
		t.Errorf("3x3 grid =\n%s\nwant\n%s", got, want)
	}
	if g.Start() != (Position{1, 1}) {
		t.Errorf("Start = %v, want (1,1)", g.Start())
	}
	if s := g.Stats(); s.Iterations != 4 || s.Carved != 0 {
		t.Errorf("Stats = %+v, want 4 iterations and no carving", s)
	}
}

func TestGenerateTotalCoverage(t *testing.T) {
	forEachMaze(t, func(t *testing.T, g *Grid) {
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if s := g.At(r, c); s != Wall && s != Passage {
					t.Fatalf("Cell (%d,%d) is %v", r, c, s)
				}
			}
		}
	})
}

func TestGenerateStartIsInterior(t *testing.T) {
	forEachMaze(t, func(t *testing.T, g *Grid) {
		s := g.Start()
		if s.Row < 1 || s.Row > g.Rows()-2 || s.Col < 1 || s.Col > g.Cols()-2 {
			t.Fatalf("Start %v is not interior", s)
		}
		if g.At(s.Row, s.Col) != Passage {
			t.Fatalf("Start %v is not a passage", s)
		}
	})
}

func TestGenerateConnectivity(t *testing.T) {
	forEachMaze(t, func(t *testing.T, g *Grid) {
		seen := map[Position]bool{g.Start(): true}
		queue := []Position{g.Start()}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, n := range p.Neighbors() {
				if g.IsPassable(n.Row, n.Col) && !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}

		if len(seen) != g.PassageCount() {
			t.Fatalf("Reached %d of %d passages from start\n%s", len(seen), g.PassageCount(), g)
		}
	})
}

func TestGenerateAcyclic(t *testing.T) {
	forEachMaze(t, func(t *testing.T, g *Grid) {
		edges := 0
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if !g.IsPassable(r, c) {
					continue
				}
				if g.IsPassable(r, c+1) {
					edges++
				}
				if g.IsPassable(r+1, c) {
					edges++
				}
			}
		}

		if want := g.PassageCount() - 1; edges != want {
			t.Fatalf("Passage graph has %d edges, want %d\n%s", edges, want, g)
		}
	})
}

func TestGenerateBorderOpenings(t *testing.T) {
	forEachMaze(t, func(t *testing.T, g *Grid) {
		checkOpening(t, g, "left", 0, 1, g.Entrance)
		checkOpening(t, g, "right", g.Cols()-1, g.Cols()-2, g.Exit)
	})
}

func checkOpening(t *testing.T, g *Grid, side string, border, inner int, opening func() (Position, bool)) {
	t.Helper()

	firstRow := -1
	for r := 0; r < g.Rows(); r++ {
		if g.At(r, inner) == Passage {
			firstRow = r
			break
		}
	}

	count := 0
	for r := 0; r < g.Rows(); r++ {
		if g.At(r, border) == Passage {
			count++
		}
	}

	p, ok := opening()
	if firstRow < 0 {
		if ok || count != 0 {
			t.Fatalf("%s border: no qualifying row but opening reported (%v, %v), %d passages", side, p, ok, count)
		}
		return
	}

	if !ok {
		t.Fatalf("%s border: expected opening at row %d", side, firstRow)
	}
	if count != 1 {
		t.Fatalf("%s border has %d passages, want 1", side, count)
	}
	if p != (Position{firstRow, border}) {
		t.Fatalf("%s opening = %v, want (%d,%d)", side, p, firstRow, border)
	}
}

func TestGenerateBordersStaySolid(t *testing.T) {
	forEachMaze(t, func(t *testing.T, g *Grid) {
		for c := 0; c < g.Cols(); c++ {
			if g.At(0, c) == Passage || g.At(g.Rows()-1, c) == Passage {
				t.Fatalf("Top or bottom border carved at column %d", c)
			}
		}
	})
}

func TestOpenBorderWithoutQualifyingRow(t *testing.T) {
	g := newGenerator(5, 5, nil)
	g.set(Position{2, 2}, Passage)

	if p, ok := g.openBorder(1, 0); ok {
		t.Fatalf("openBorder found %v with no passage in column 1", p)
	}
	for r := 0; r < 5; r++ {
		if g.at(Position{r, 0}) != Undefined {
			t.Errorf("Row %d of column 0 changed to %v", r, g.at(Position{r, 0}))
		}
	}

	g.set(Position{3, 1}, Passage)
	g.set(Position{1, 1}, Passage)
	p, ok := g.openBorder(1, 0)
	if !ok || p != (Position{1, 0}) {
		t.Fatalf("openBorder = (%v, %v), want ((1,0), true)", p, ok)
	}
}

func TestEligibility(t *testing.T) {
	g := newGenerator(5, 5, nil)
	g.set(Position{2, 2}, Passage)
	g.markWalls(Position{2, 2})

	// Between the passage and unexplored territory.
	if !g.eligible(Position{2, 3}) {
		t.Error("(2,3) should be eligible")
	}
	// Border walls never open.
	if g.eligible(Position{0, 2}) {
		t.Error("(0,2) on the border should not be eligible")
	}

	// A wall touching two passages would close a loop.
	g.set(Position{1, 3}, Passage)
	if g.eligible(Position{2, 3}) {
		t.Error("(2,3) with two adjacent passages should not be eligible")
	}
}

func TestExtensionNeverOverwritesPassage(t *testing.T) {
	g := newGenerator(7, 7, nil)
	g.current = Position{3, 3}
	g.set(Position{3, 3}, Passage)
	g.set(Position{1, 3}, Passage)

	// Non-adjacent wall one row above current: the extension target (1,3) is a passage.
	g.carve(Position{2, 5})

	if g.at(Position{1, 3}) != Passage {
		t.Errorf("Extension turned passage (1,3) into %v", g.at(Position{1, 3}))
	}
	if g.current != (Position{2, 5}) {
		t.Errorf("current = %v, want (2,5)", g.current)
	}
}

func TestExtensionWallsOffCorridor(t *testing.T) {
	g := newGenerator(7, 7, nil)
	g.current = Position{3, 3}
	g.set(Position{3, 3}, Passage)
	g.markWalls(Position{3, 3})

	g.carve(Position{3, 4})

	if g.at(Position{3, 5}) != Wall {
		t.Errorf("Extension cell (3,5) = %v, want wall", g.at(Position{3, 5}))
	}
	if g.current != (Position{3, 4}) {
		t.Errorf("current = %v, want (3,4)", g.current)
	}
	for _, p := range []Position{{2, 4}, {4, 4}} {
		if g.at(p) != Wall {
			t.Errorf("Neighbor %v = %v, want wall", p, g.at(p))
		}
	}
	if len(g.frontier) != 3 {
		t.Errorf("Frontier has %d entries, want 3", len(g.frontier))
	}
}

func TestCellsMatchesAt(t *testing.T) {
	g, err := Generate(context.Background(), 5, 7, Seed(11))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	cells := g.Cells()
	if len(cells) != 5 {
		t.Fatalf("Cells has %d rows, want 5", len(cells))
	}
	for r, row := range cells {
		if len(row) != 7 {
			t.Fatalf("Row %d has %d columns, want 7", r, len(row))
		}
		for c, s := range row {
			if s != g.At(r, c) {
				t.Errorf("Cells()[%d][%d] = %v, At = %v", r, c, s, g.At(r, c))
			}
		}
	}
}

func TestCellsReturnsCopy(t *testing.T) {
	g, err := Generate(context.Background(), 5, 7, Seed(11))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	before := g.String()

	cells := g.Cells()
	for r := range cells {
		for c := range cells[r] {
			cells[r][c] = Undefined
		}
	}

	if got := g.String(); got != before {
		t.Errorf("Grid changed after editing Cells():\n%s\nwant\n%s", got, before)
	}
}

type labelSeed struct{ name string }

func (l labelSeed) String() string { return "label:" + l.name }

func TestSeedOf(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Seed
	}{
		{"int", 42, Seed(42)},
		{"negative int64", int64(-7), Seed(-7)},
		{"uint32", uint32(9), Seed(9)},
		{"seed", Seed(5), Seed(5)},
		{"string", "default", SeedFromString("default")},
		{"stringer", labelSeed{"a"}, SeedFromString("label:a")},
		{"float", 1.5, SeedFromString(fmt.Sprint(1.5))},
		{"struct", struct{ X, Y int }{1, 2}, SeedFromString(fmt.Sprint(struct{ X, Y int }{1, 2}))},
	}

	for _, tt := range tests {
		if got := SeedOf(tt.input); got != tt.want {
			t.Errorf("SeedOf(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseSeed(t *testing.T) {
	if got := ParseSeed("42"); got != Seed(42) {
		t.Errorf("ParseSeed(\"42\") = %d, want 42", got)
	}
	if got := ParseSeed(DefaultSeed); got != SeedFromString(DefaultSeed) {
		t.Errorf("ParseSeed(%q) = %d, want hashed seed %d", DefaultSeed, got, SeedFromString(DefaultSeed))
	}
	if got := SeedOf("x"); got != SeedFromString("x") {
		t.Errorf("SeedOf(\"x\") = %d, want %d", got, SeedFromString("x"))
	}
}

func TestDirectionTo(t *testing.T) {
	cur := Position{4, 4}
	tests := []struct {
		w    Position
		want Direction
		ok   bool
	}{
		{Position{3, 4}, Up, true},
		{Position{5, 4}, Down, true},
		{Position{4, 3}, Left, true},
		{Position{4, 5}, Right, true},
		{Position{3, 9}, Up, true},
		{Position{7, 5}, Right, true},
		{Position{7, 7}, Direction{}, false},
	}

	for _, tt := range tests {
		got, ok := directionTo(cur, tt.w)
		if got != tt.want || ok != tt.ok {
			t.Errorf("directionTo(%v, %v) = (%v, %v), want (%v, %v)", cur, tt.w, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGridJSON(t *testing.T) {
	g, err := Generate(context.Background(), 3, 3, Seed(1))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"rows":3,"cols":3,"cells":[[1,1,1],[2,2,2],[1,1,1]]}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}
