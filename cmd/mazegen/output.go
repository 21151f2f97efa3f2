package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samdwyer/mazegen/internal/config"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/theme"
)

// writeGrid prints grid to w in the requested format.
func writeGrid(w io.Writer, grid *maze.Grid, format string, th *theme.Def) error {
	var err error
	switch format {
	case config.FormatText:
		_, err = io.WriteString(w, grid.String())
	case config.FormatGlyph:
		_, err = w.Write(th.Text(grid))
	case config.FormatJSON:
		err = json.NewEncoder(w).Encode(grid)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("write maze: %w", err)
	}
	return nil
}
