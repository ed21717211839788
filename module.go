// Package modgraph provides a module-graph dependency injection container for Go.
// Applications are described as modules: named groups of providers, the modules
// they import, and the subset of providers they export to their importers.
//
// Building a module resolves its imports first, orders its providers so every
// provider follows its local dependencies, and constructs each singleton exactly
// once per application, even when the module is imported from several places.
// Cycles, missing dependencies and ambiguous exports are reported as typed
// errors carrying the offending identities.
//
// Basic usage:
//
//	db := modgraph.MustDefineModule("db",
//		modgraph.WithProviders(modgraph.MustDefineProvider("DB", newDB)),
//		modgraph.WithExports("DB"),
//	)
//	users := modgraph.MustDefineModule("users",
//		modgraph.WithImports(db),
//		modgraph.WithProviders(modgraph.MustDefineProvider("UserRepo", newUserRepo,
//			modgraph.WithDependencies("DB"))),
//		modgraph.WithExports("UserRepo"),
//	)
//	app, err := modgraph.NewApplication(users)
//	repo, err := modgraph.Resolve[*UserRepo](app, "UserRepo")
package modgraph

import (
	"fmt"
	"slices"
)

// ModuleDescriptor is the declaration of a module. Descriptors are immutable
// once DefineModule returns; the module name is its identity within an application.
type ModuleDescriptor struct {
	name      string
	providers []ProviderDescriptor
	imports   []moduleRef
	exports   []Identity
	global    bool
}

// moduleRef defers access to an imported descriptor so modules can reference
// each other regardless of declaration order.
type moduleRef func() *ModuleDescriptor

// ModuleOption configures a module declaration.
type ModuleOption func(*ModuleDescriptor) error

// WithProviders adds providers to the module. Providers must come from
// DefineProvider; a zero ProviderDescriptor is rejected.
func WithProviders(providers ...ProviderDescriptor) ModuleOption {
	return func(m *ModuleDescriptor) error {
		for i, p := range providers {
			if p.identity == "" {
				return fmt.Errorf("%w: provider %d of module %q", ErrEmptyIdentity, i, m.name)
			}
			if p.constructor == nil {
				return fmt.Errorf("%w: %q in module %q", ErrNilConstructor, p.identity, m.name)
			}
		}
		m.providers = append(m.providers, providers...)
		return nil
	}
}

// WithImports adds imported modules, in resolution order.
func WithImports(modules ...*ModuleDescriptor) ModuleOption {
	return func(m *ModuleDescriptor) error {
		for i, imported := range modules {
			if imported == nil {
				return fmt.Errorf("%w: import %d of module %q", ErrModuleNil, i, m.name)
			}
			m.imports = append(m.imports, func() *ModuleDescriptor { return imported })
		}
		return nil
	}
}

// WithForwardImport adds an import that is looked up when the module is built.
// It allows a module to import one declared after it.
func WithForwardImport(ref func() *ModuleDescriptor) ModuleOption {
	return func(m *ModuleDescriptor) error {
		if ref == nil {
			return fmt.Errorf("%w: forward import of module %q", ErrModuleNil, m.name)
		}
		m.imports = append(m.imports, ref)
		return nil
	}
}

// WithExports lists the identities made visible to importing modules. An
// export may name a local provider or an identity re-exported from an import.
func WithExports(ids ...Identity) ModuleOption {
	return func(m *ModuleDescriptor) error {
		for _, id := range ids {
			if id == "" {
				return fmt.Errorf("%w: export of module %q", ErrEmptyIdentity, m.name)
			}
			if slices.Contains(m.exports, id) {
				return fmt.Errorf("%w: %q in module %q", ErrDuplicateExport, id, m.name)
			}
			m.exports = append(m.exports, id)
		}
		return nil
	}
}

// AsGlobal makes the module's exports visible to every container of the
// application without an explicit import.
func AsGlobal() ModuleOption {
	return func(m *ModuleDescriptor) error {
		m.global = true
		return nil
	}
}

// DefineModule declares a module.
func DefineModule(name string, opts ...ModuleOption) (*ModuleDescriptor, error) {
	if name == "" {
		return nil, ErrEmptyModuleName
	}
	m := &ModuleDescriptor{name: name}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustDefineModule is like DefineModule but panics on error.
func MustDefineModule(name string, opts ...ModuleOption) *ModuleDescriptor {
	m, err := DefineModule(name, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the module name.
func (m *ModuleDescriptor) Name() string {
	return m.name
}

// Providers returns a copy of the module's providers in declaration order.
func (m *ModuleDescriptor) Providers() []ProviderDescriptor {
	return slices.Clone(m.providers)
}

// Imports resolves the module's imports in declaration order. It fails if a
// forward import yields nil.
func (m *ModuleDescriptor) Imports() ([]*ModuleDescriptor, error) {
	out := make([]*ModuleDescriptor, 0, len(m.imports))
	for i, ref := range m.imports {
		imported := ref()
		if imported == nil {
			return nil, fmt.Errorf("%w: import %d of module %q", ErrModuleNil, i, m.name)
		}
		out = append(out, imported)
	}
	return out, nil
}

// Exports returns a copy of the exported identities.
func (m *ModuleDescriptor) Exports() []Identity {
	return slices.Clone(m.exports)
}

// IsGlobal reports whether the module's exports are registered globally.
func (m *ModuleDescriptor) IsGlobal() bool {
	return m.global
}
