// Package render turns a traversal result into diagram text. Backends
// register themselves by format name in init functions; the traversal core
// stays free of process-wide state.
package render

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Options carries renderer settings shared across backends. Individual
// backends ignore what they don't use.
type Options struct {
	// Title is an optional diagram heading.
	Title string
	// Package is the package name for code-emitting backends.
	Package string
	// SkipFields omits attribute rows and renders entity nodes only.
	SkipFields bool
}

// Renderer is a single diagram backend.
type Renderer interface {
	// Render writes the diagram for the graph to w.
	Render(w io.Writer, g *Graph, opts Options) error
}

var (
	renderersMu sync.RWMutex
	renderers   = make(map[string]Renderer)
)

// Register makes a renderer available under the given format name.
// It panics on an empty name, a nil renderer, or a duplicate name.
func Register(name string, r Renderer) {
	renderersMu.Lock()
	defer renderersMu.Unlock()
	if name == "" || r == nil {
		panic("render: Register with empty name or nil renderer")
	}
	if _, dup := renderers[name]; dup {
		panic(fmt.Sprintf("render: Register called twice for %q", name))
	}
	renderers[name] = r
}

// Get returns the renderer registered under the format name.
func Get(name string) (Renderer, error) {
	renderersMu.RLock()
	defer renderersMu.RUnlock()
	r, ok := renderers[name]
	if !ok {
		return nil, &UnknownFormatError{Format: name, Known: formatsLocked()}
	}
	return r, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	renderersMu.RLock()
	defer renderersMu.RUnlock()
	return formatsLocked()
}

func formatsLocked() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
