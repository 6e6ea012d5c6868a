package filter

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// NamedPrefix marks a reference to a registered filter, as in "@favorites"
const NamedPrefix = "@"

// Manager keeps named filters, typically loaded from configuration
type Manager struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler *Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		filters:  make(map[string]*Filter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters compiles and registers filters by name. Nothing is registered
// unless every expression compiles.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]*Filter, len(filters))

	for name, expression := range filters {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	for name, f := range compiled {
		m.filters[name] = f
	}
	m.mu.Unlock()

	return nil
}

// GetFilter returns a registered filter by name
func (m *Manager) GetFilter(name string) (*Filter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, exists := m.filters[name]
	return f, exists
}

// ListFilters returns all registered filter names in sorted order
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.filters))
	for name := range m.filters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve returns the registered filter for "@name", or compiles the expression
func (m *Manager) Resolve(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if name, ok := strings.CutPrefix(expression, NamedPrefix); ok {
		f, exists := m.GetFilter(name)
		if !exists {
			return nil, fmt.Errorf("filter '%s' not found", name)
		}
		return f, nil
	}
	return m.compiler.Compile(expression)
}
