package resolve

import (
	"fmt"
	"strings"
)

// CyclicDependencyError reports a genuine cycle in the declared module
// dependency graph. Path holds the module names along the cycle, starting
// and ending with the same module.
type CyclicDependencyError struct {
	Path []string
}

// newCycleError trims the walk path down to the cycle itself: everything
// before the first occurrence of the repeated module is just the route
// that led there.
func newCycleError(path []string) *CyclicDependencyError {
	last := path[len(path)-1]
	for i, name := range path {
		if name == last {
			return &CyclicDependencyError{Path: path[i:]}
		}
	}
	return &CyclicDependencyError{Path: path}
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}
