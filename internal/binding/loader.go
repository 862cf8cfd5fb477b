// Package binding loads a prebuilt tracking module at runtime, resolves its
// exported entry points into typed callables, and routes the module's
// callback results to caller-supplied handlers.
package binding

import (
	"fmt"
	"os"
	"plugin"
	"sync"
)

// State describes where a Loader is in its lifecycle.
type State int

// Loader lifecycle states. Initialization and detection state is tracked by
// the typed trackers layered on top of the loader.
const (
	StateUnloaded State = iota
	StateLoaded
	StateResolved
)

// Module is a loaded tracking module whose exports are resolved by name.
type Module interface {
	Lookup(name string) (any, error)
}

// Host opens modules from filesystem paths. The default host wraps the
// plugin package; tests substitute a MockHost.
type Host interface {
	Open(path string) (Module, error)
}

type pluginHost struct{}

func (pluginHost) Open(path string) (Module, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrModuleNotFound)
	}
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrModuleNotFound, err)
	}
	return pluginModule{p: p}, nil
}

type pluginModule struct {
	p *plugin.Plugin
}

func (m pluginModule) Lookup(name string) (any, error) {
	return m.p.Lookup(name)
}

// DefaultHost returns the host backed by the Go plugin loader.
func DefaultHost() Host {
	return pluginHost{}
}

// Loader owns one module handle and its entry point table. It enforces the
// load/resolve/unload ordering; invoking any resolved entry point after
// Unload is rejected by the typed trackers, which consult the loader state.
type Loader struct {
	host     Host
	required []string

	mu     sync.Mutex
	state  State
	path   string
	module Module
	table  map[string]any
}

// NewLoader creates a Loader that will require the given export names.
// A nil host selects the default plugin-backed host.
func NewLoader(host Host, required []string) *Loader {
	if host == nil {
		host = DefaultHost()
	}
	return &Loader{
		host:     host,
		required: required,
	}
}

// Load opens the module at the given path. It fails with ErrModuleNotFound
// if the path does not resolve to a loadable module, and with
// ErrAlreadyLoaded if a module is already held.
func (l *Loader) Load(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateUnloaded {
		return fmt.Errorf("%s: %w", l.path, ErrAlreadyLoaded)
	}

	module, err := l.host.Open(path)
	if err != nil {
		return err
	}

	l.module = module
	l.path = path
	l.state = StateLoaded
	return nil
}

// ResolveAll resolves every required export into the entry point table.
// Resolution is all-or-nothing: if any symbol is absent, a SymbolError is
// returned and the loader keeps no partially resolved table.
func (l *Loader) ResolveAll() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateUnloaded {
		return ErrNotLoaded
	}

	table := make(map[string]any, len(l.required))
	for _, name := range l.required {
		sym, err := l.module.Lookup(name)
		if err != nil {
			l.table = nil
			l.state = StateLoaded
			return &SymbolError{Name: name, Err: ErrSymbolNotFound}
		}
		table[name] = sym
	}

	l.table = table
	l.state = StateResolved
	return nil
}

// Unload releases the module handle and drops the entry point table,
// returning the loader to the unloaded state. The Go runtime cannot unmap
// plugin code, so invalidation is enforced by state: every typed invoker
// checks the loader before calling out.
func (l *Loader) Unload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateUnloaded {
		return ErrNotLoaded
	}

	l.module = nil
	l.table = nil
	l.path = ""
	l.state = StateUnloaded
	return nil
}

// State returns the current loader state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Path returns the path of the currently loaded module, or "".
func (l *Loader) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// symbol returns a resolved entry point by name.
func (l *Loader) symbol(name string) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateResolved {
		return nil, ErrNotResolved
	}
	sym, ok := l.table[name]
	if !ok {
		return nil, &SymbolError{Name: name, Err: ErrSymbolNotFound}
	}
	return sym, nil
}

// symbolAs resolves a named entry point and asserts it to the signature the
// contract requires. Modules exporting a name with the wrong type produce a
// SymbolError wrapping ErrUnexpectedSymbolType.
func symbolAs[T any](l *Loader, name string) (T, error) {
	var zero T
	sym, err := l.symbol(name)
	if err != nil {
		return zero, err
	}
	fn, ok := sym.(T)
	if !ok {
		return zero, &SymbolError{Name: name, Err: ErrUnexpectedSymbolType}
	}
	return fn, nil
}
