package registry

import (
	"fmt"
	"strings"
)

// Validate performs a structural integrity check over the whole catalog.
// It verifies that every declared dependency refers to a module that
// exists, that exactly one module carries the required flag, and that the
// required module itself depends on nothing. All violations are collected
// and reported together so a manifest author can fix them in one pass.
func (r *Registry) Validate() error {
	var errs []string

	var required []*Module
	for _, m := range r.modules {
		if m.Required {
			required = append(required, m)
		}
		for _, dep := range m.DependsOn {
			if dep == m.Name {
				errs = append(errs, fmt.Sprintf("module %q depends on itself", m.Name))
				continue
			}
			if _, ok := r.index[dep]; !ok {
				errs = append(errs, fmt.Sprintf("module %q depends on unknown module %q", m.Name, dep))
			}
		}
	}

	switch len(required) {
	case 0:
		errs = append(errs, "no module is marked required; exactly one base module must be")
	case 1:
		if len(required[0].DependsOn) > 0 {
			errs = append(errs, fmt.Sprintf("required module %q must not have dependencies", required[0].Name))
		}
	default:
		names := make([]string, len(required))
		for i, m := range required {
			names[i] = m.Name
		}
		errs = append(errs, fmt.Sprintf("multiple modules marked required: %s", strings.Join(names, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
