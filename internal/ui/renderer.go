package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/theme"
)

// Renderer handles drawing mazes to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws every cell of the grid with the theme's glyphs and colors.
// Cells beyond the screen edge are clipped.
func (r *Renderer) Render(grid *maze.Grid, th *theme.Def) {
	r.screen.Clear()

	width, height := r.screen.Size()
	for row := 0; row < grid.Rows() && row < height; row++ {
		for col := 0; col < grid.Cols() && col < width; col++ {
			state := grid.At(row, col)
			opening := theme.IsOpening(grid, row, col)
			r.screen.SetContent(col, row, th.Glyph(state, opening), th.Style(state, opening))
		}
	}

	r.screen.Show()
}

// RenderMessage displays a message on the given screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	r.screen.Show()
}
