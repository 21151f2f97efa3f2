// Package theme provides the embedded colour and glyph palettes used to draw mazes.
package theme

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
