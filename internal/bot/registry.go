package bot

import "sync"

// Registry collects modules in registration order.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a module to the registry.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = append(r.modules, m)
}

// Modules returns the registered modules. The returned slice is a copy, so
// callers cannot disturb the registration order.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, len(r.modules))
	copy(result, r.modules)
	return result
}

// The process-wide registry that module init functions register into.
var globalRegistry = NewRegistry()

// Register adds a module to the global registry. Called from module init
// functions, triggered by blank imports in main.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry discards all global registrations. Tests only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
