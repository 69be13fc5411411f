// Package registry provides the catalog of feature modules declared by a
// workspace.
//
// The Registry stores the per-module metadata (headers, sources, feature
// defines, dependency names) parsed from the workspace manifests. It is
// built once during application startup, validated, and then shared
// read-only by the dependency resolver, the build pipeline and the test
// orchestrator for the lifetime of the process.
package registry
