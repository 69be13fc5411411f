package resolve

import "github.com/vk/libforge/internal/registry"

// Set is a dependency-closed collection of module names produced by one
// Resolve call. Membership is what the resolver computed; ordering always
// follows registry declaration order so that anything derived from the
// set (compiler command lines, log output) is identical no matter which
// traversal produced it.
type Set struct {
	members map[string]struct{}
	ordered []*registry.Module
}

func newSet(reg *registry.Registry, members map[string]struct{}) *Set {
	s := &Set{members: members}
	for _, m := range reg.Modules() {
		if _, ok := members[m.Name]; ok {
			s.ordered = append(s.ordered, m)
		}
	}
	return s
}

// Contains reports whether the named module is part of the set.
func (s *Set) Contains(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Len returns the number of modules in the set.
func (s *Set) Len() int {
	return len(s.ordered)
}

// Modules returns the member modules in registry declaration order.
func (s *Set) Modules() []*registry.Module {
	return s.ordered
}

// Names returns the member names in registry declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.ordered))
	for i, m := range s.ordered {
		names[i] = m.Name
	}
	return names
}
