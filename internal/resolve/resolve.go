// Package resolve computes the dependency-closed module set for one build
// invocation.
//
// Resolution walks each requested module depth-first, adding a module only
// after all of its dependencies have been added. The mandatory base module
// is always part of the result, even for an empty request. A genuine
// dependency cycle is positively detected and reported as a
// CyclicDependencyError instead of being silently truncated.
package resolve

import (
	"github.com/vk/libforge/internal/registry"
)

// Resolver computes resolved sets against a fixed module catalog.
type Resolver struct {
	reg *registry.Registry
}

// New creates a Resolver backed by the given registry.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve returns the dependency closure of the requested module names.
// The mandatory module is always included. Any unknown name, requested or
// declared as a dependency, aborts resolution with an UnknownModuleError;
// no partial set is ever returned. A dependency cycle aborts with a
// CyclicDependencyError naming the modules on the cycle.
func (r *Resolver) Resolve(requested []string) (*Set, error) {
	done := make(map[string]struct{})

	names := make([]string, 0, len(requested)+1)
	names = append(names, r.reg.Required().Name)
	names = append(names, requested...)

	for _, name := range names {
		if err := r.visit(name, "", done, make(map[string]struct{}), nil); err != nil {
			return nil, err
		}
	}

	return newSet(r.reg, done), nil
}

// visit performs a depth-first walk rooted at name. The visiting set
// holds the modules on the current walk path; meeting a module that is
// already on the path means the dependency graph loops back on itself.
func (r *Resolver) visit(name, wantedBy string, done map[string]struct{}, visiting map[string]struct{}, path []string) error {
	if _, ok := done[name]; ok {
		return nil
	}

	if _, ok := visiting[name]; ok {
		return newCycleError(append(path, name))
	}

	mod, err := r.reg.Lookup(name)
	if err != nil {
		if unknown, ok := err.(*registry.UnknownModuleError); ok {
			unknown.WantedBy = wantedBy
		}
		return err
	}

	visiting[name] = struct{}{}
	path = append(path, name)

	for _, dep := range mod.DependsOn {
		if err := r.visit(dep, name, done, visiting, path); err != nil {
			return err
		}
	}

	delete(visiting, name)
	done[name] = struct{}{}
	return nil
}
