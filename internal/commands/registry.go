package commands

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry holds registered commands.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command // name and aliases map to command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is empty or already registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("command has an empty name or alias: %T", c)
		}
		if _, exists := r.cmds[name]; exists {
			return fmt.Errorf("command already registered: %s", name)
		}
	}

	for _, name := range names {
		r.cmds[name] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns all unique commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var result []Command
	for _, cmd := range r.cmds {
		if seen[cmd.Name()] {
			continue
		}
		seen[cmd.Name()] = true
		result = append(result, cmd)
	}

	slices.SortFunc(result, func(a, b Command) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
