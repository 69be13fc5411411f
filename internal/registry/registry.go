package registry

import "fmt"

// Module describes one selectable feature module of the target library:
// its public headers, its compiled sources, the preprocessor tokens that
// enable it, and the names of the modules it depends on.
type Module struct {
	Name        string
	Description string
	DependsOn   []string
	Headers     []string
	Sources     []string
	Defines     []string
	Required    bool
}

// Registry is the catalog of all modules declared by a workspace. It is
// populated once at startup and treated as read-only afterwards; every
// downstream component (resolver, pipeline, orchestrator) shares it.
//
// Declaration order is preserved: Modules() returns modules in the order
// they were added, which is what makes compiler command lines
// deterministic regardless of how a request set was traversed.
type Registry struct {
	modules []*Module
	index   map[string]*Module
}

// New creates and initializes a new, empty Registry instance.
func New() *Registry {
	return &Registry{
		index: make(map[string]*Module),
	}
}

// Add appends a module to the catalog. Adding two modules with the same
// name is a manifest authoring error and is rejected.
func (r *Registry) Add(m *Module) error {
	if m.Name == "" {
		return fmt.Errorf("module name must not be empty")
	}
	if _, ok := r.index[m.Name]; ok {
		return fmt.Errorf("duplicate module definition: %q", m.Name)
	}
	r.modules = append(r.modules, m)
	r.index[m.Name] = m
	return nil
}

// Lookup returns the module with the given name, or an UnknownModuleError
// if no such module was declared.
func (r *Registry) Lookup(name string) (*Module, error) {
	m, ok := r.index[name]
	if !ok {
		return nil, &UnknownModuleError{Name: name}
	}
	return m, nil
}

// Has reports whether a module with the given name was declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Modules returns all declared modules in declaration order. The returned
// slice is shared; callers must not mutate it.
func (r *Registry) Modules() []*Module {
	return r.modules
}

// Len returns the number of declared modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Required returns the single mandatory module of the catalog. It must
// only be called on a validated registry.
func (r *Registry) Required() *Module {
	for _, m := range r.modules {
		if m.Required {
			return m
		}
	}
	panic("registry: no required module; Validate was not called")
}
