package modgraph

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution errors
var (
	// Declaration errors
	ErrEmptyIdentity       = errors.New("provider identity is empty")
	ErrNilConstructor      = errors.New("provider constructor is nil")
	ErrInvalidScope        = errors.New("invalid provider scope")
	ErrDuplicateDependency = errors.New("dependency declared more than once")
	ErrEmptyModuleName     = errors.New("module name is empty")
	ErrModuleNil           = errors.New("module is nil")
	ErrDuplicateExport     = errors.New("export declared more than once")

	// Graph errors
	ErrDuplicateProvider  = errors.New("duplicate provider")
	ErrCyclicDependency   = errors.New("cyclic dependency detected")
	ErrAmbiguousProvider  = errors.New("ambiguous provider")
	ErrMissingDependency  = errors.New("missing dependency")
	ErrUnknownProvider    = errors.New("unknown provider")
	ErrInvalidExport      = errors.New("module exports an unavailable provider")
	ErrDuplicateModule    = errors.New("module name registered by two different modules")
	ErrConstructionFailed = errors.New("provider construction failed")

	// Lookup errors
	ErrInstanceWrongType = errors.New("instance cannot be assigned to requested type")

	// Manifest errors
	ErrManifestRootMissing    = errors.New("manifest root module not declared")
	ErrManifestModuleNotFound = errors.New("manifest imports an undeclared module")
	ErrConstructorNotFound    = errors.New("constructor not found")
)

// DuplicateProviderError is returned when two providers of one module share an identity.
type DuplicateProviderError struct {
	Module   string
	Identity Identity
}

func (e *DuplicateProviderError) Error() string {
	return fmt.Sprintf("%s: %q declared twice in module %q", ErrDuplicateProvider, e.Identity, e.Module)
}

func (e *DuplicateProviderError) Is(target error) bool { return target == ErrDuplicateProvider }

// CyclicDependencyError reports a provider cycle inside one module (Path) or
// an import cycle between modules (ModulePath). The first element is repeated
// at the end of the path.
type CyclicDependencyError struct {
	Module     string
	Path       []Identity
	ModulePath []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.ModulePath) > 0 {
		return fmt.Sprintf("%s: module import cycle %s", ErrCyclicDependency, strings.Join(e.ModulePath, " -> "))
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("%s in module %q: %s", ErrCyclicDependency, e.Module, strings.Join(parts, " -> "))
}

func (e *CyclicDependencyError) Is(target error) bool { return target == ErrCyclicDependency }

// AmbiguousProviderError is returned when one identity is visible to a
// container from more than one origin. Origins are compared by provider
// binding, not by name: a provider re-exported so that it reaches a module
// through two imports is the same binding and does not collide.
type AmbiguousProviderError struct {
	Identity Identity
	// Importer is the module whose build observed the collision.
	Importer string
	// Modules lists the modules that declared the colliding providers.
	Modules []string
	// Global is set when the collision involves the global registry.
	Global bool
}

func (e *AmbiguousProviderError) Error() string {
	where := "imports"
	if e.Global {
		where = "global registry"
	}
	return fmt.Sprintf("%s: %q provided by modules %s (%s of module %q)",
		ErrAmbiguousProvider, e.Identity, strings.Join(e.Modules, ", "), where, e.Importer)
}

func (e *AmbiguousProviderError) Is(target error) bool { return target == ErrAmbiguousProvider }

// MissingDependencyError is returned when a dependency resolves to nothing
// local, imported or global.
type MissingDependencyError struct {
	Module     string
	Provider   Identity
	Dependency Identity
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s: %q required by %q in module %q", ErrMissingDependency, e.Dependency, e.Provider, e.Module)
}

func (e *MissingDependencyError) Is(target error) bool { return target == ErrMissingDependency }

// UnknownProviderError is returned when an identity is neither exported by the
// queried module nor registered globally.
type UnknownProviderError struct {
	Module   string
	Identity Identity
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("%s: %q is not exported by module %q and not global", ErrUnknownProvider, e.Identity, e.Module)
}

func (e *UnknownProviderError) Is(target error) bool { return target == ErrUnknownProvider }

// InvalidExportError is returned when a module exports an identity that is
// neither one of its providers nor available from its imports.
type InvalidExportError struct {
	Module   string
	Identity Identity
}

func (e *InvalidExportError) Error() string {
	return fmt.Sprintf("%s: module %q exports %q", ErrInvalidExport, e.Module, e.Identity)
}

func (e *InvalidExportError) Is(target error) bool { return target == ErrInvalidExport }

// DuplicateModuleError is returned when two distinct descriptors share a module name.
type DuplicateModuleError struct {
	Name string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateModule, e.Name)
}

func (e *DuplicateModuleError) Is(target error) bool { return target == ErrDuplicateModule }

// ConstructionError wraps an error returned by a provider constructor.
type ConstructionError struct {
	Module   string
	Identity Identity
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %q in module %q: %v", ErrConstructionFailed, e.Identity, e.Module, e.Err)
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstructionFailed }

func (e *ConstructionError) Unwrap() error { return e.Err }
