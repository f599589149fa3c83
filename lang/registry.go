package lang

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry resolves a file path to the Language that should parse it,
// keyed by extension (spec.md §4.3 supported_extensions).
type Registry struct {
	byExt map[string]Language
}

// NewRegistry builds a registry from the given languages; later entries
// win on extension collisions.
func NewRegistry(langs ...Language) *Registry {
	r := &Registry{byExt: make(map[string]Language)}
	for _, l := range langs {
		for _, ext := range l.Extensions() {
			r.byExt[ext] = l
		}
	}
	return r
}

// ForPath resolves path's extension to a Language.
func (r *Registry) ForPath(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("lang: no language registered for extension %q (path %s)", ext, path)
	}
	return l, nil
}

// Names returns the tag of every registered language, deduplicated.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range r.byExt {
		if !seen[l.Name()] {
			seen[l.Name()] = true
			out = append(out, l.Name())
		}
	}
	return out
}
