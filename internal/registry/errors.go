package registry

import "fmt"

// UnknownModuleError reports a module name that is not present in the
// catalog, whether it was requested directly or named as a dependency.
type UnknownModuleError struct {
	// Name is the module name that failed to resolve.
	Name string
	// WantedBy is the module that declared Name as a dependency, if the
	// lookup happened while walking a dependency list. Empty for direct
	// requests.
	WantedBy string
}

func (e *UnknownModuleError) Error() string {
	if e.WantedBy != "" {
		return fmt.Sprintf("unknown module %q (declared as a dependency of %q)", e.Name, e.WantedBy)
	}
	return fmt.Sprintf("unknown module %q", e.Name)
}
