package theme

import (
	"errors"
	"fmt"
)

// DefaultID names the theme used when none is configured.
const DefaultID = "classic"

// ErrUnknownTheme is returned by Lookup for an id that is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// Registry holds loaded theme definitions.
type Registry struct {
	themes []Def
}

// NewRegistry creates a registry from loaded theme definitions.
func NewRegistry(themes []Def) *Registry {
	return &Registry{themes: themes}
}

// LoadRegistry loads and creates a registry from the embedded themes.json.
func LoadRegistry() (*Registry, error) {
	themes, err := LoadThemes()
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, errors.New("no themes loaded from themes.json")
	}
	return NewRegistry(themes), nil
}

// GetByID returns the theme with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Def {
	for i := range r.themes {
		if r.themes[i].ID == id {
			return &r.themes[i]
		}
	}
	return nil
}

// Lookup returns the theme with the given ID. An empty id selects DefaultID.
func (r *Registry) Lookup(id string) (*Def, error) {
	if id == "" {
		id = DefaultID
	}
	if def := r.GetByID(id); def != nil {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, id)
}

// All returns all theme definitions.
func (r *Registry) All() []Def {
	return r.themes
}

// Count returns the number of registered themes.
func (r *Registry) Count() int {
	return len(r.themes)
}
