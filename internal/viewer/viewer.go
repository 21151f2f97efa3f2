// Package viewer shows a finished maze in the terminal until the user quits.
package viewer

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/telemetry"
	"github.com/samdwyer/mazegen/internal/theme"
	"github.com/samdwyer/mazegen/internal/ui"
)

// Viewer holds the preview state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	grid     *maze.Grid
	theme    *theme.Def
	status   string
	running  bool
}

// New creates a viewer for grid on an initialized screen.
// The status line is drawn below the maze.
func New(screen *ui.Screen, grid *maze.Grid, th *theme.Def, status string) *Viewer {
	return &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		grid:     grid,
		theme:    th,
		status:   status,
		running:  true,
	}
}

// Run draws the maze and blocks until the user quits. The screen is closed on return.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	_, span := tracer.Start(ctx, "viewer.run")
	defer span.End()

	span.SetAttributes(
		attribute.Int("maze.rows", v.grid.Rows()),
		attribute.Int("maze.cols", v.grid.Cols()),
		attribute.String("viewer.theme", v.theme.ID),
	)

	redraws := 0
	for v.running {
		v.draw()
		redraws++

		v.handleInput()
	}
	span.SetAttributes(attribute.Int("viewer.redraws", redraws))

	v.screen.Close()
	return nil
}

func (v *Viewer) draw() {
	v.renderer.Render(v.grid, v.theme)
	v.renderer.RenderMessage(v.status, v.grid.Rows()+1)
}

// handleInput processes a single input event.
func (v *Viewer) handleInput() {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// Screen finalized underneath us.
		v.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		}
	}
}
