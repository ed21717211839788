package modgraph

import (
	"fmt"

	"github.com/GoCodeAlone/modgraph/feeders"
)

// Manifest is a declarative module graph, loaded from YAML, TOML or JSON.
//
//	root: app
//	modules:
//	  - name: db
//	    global: true
//	    providers:
//	      - identity: DB
//	        constructor: postgres
//	    exports: [DB]
//	  - name: app
//	    imports: [db]
//	    providers:
//	      - identity: UserRepo
//	        dependencies: [DB]
//	    exports: [UserRepo]
type Manifest struct {
	Root    string           `yaml:"root" toml:"root" json:"root"`
	Modules []ModuleManifest `yaml:"modules" toml:"modules" json:"modules"`
}

// ModuleManifest declares one module of a Manifest. Imports refer to other
// modules of the same manifest by name.
type ModuleManifest struct {
	Name      string             `yaml:"name" toml:"name" json:"name"`
	Imports   []string           `yaml:"imports,omitempty" toml:"imports,omitempty" json:"imports,omitempty"`
	Providers []ProviderManifest `yaml:"providers,omitempty" toml:"providers,omitempty" json:"providers,omitempty"`
	Exports   []Identity         `yaml:"exports,omitempty" toml:"exports,omitempty" json:"exports,omitempty"`
	Global    bool               `yaml:"global,omitempty" toml:"global,omitempty" json:"global,omitempty"`
}

// ProviderManifest declares one provider. Constructor names the entry of the
// ConstructorLookup to use and defaults to the identity.
type ProviderManifest struct {
	Identity     Identity   `yaml:"identity" toml:"identity" json:"identity"`
	Constructor  string     `yaml:"constructor,omitempty" toml:"constructor,omitempty" json:"constructor,omitempty"`
	Dependencies []Identity `yaml:"dependencies,omitempty" toml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Scope        Scope      `yaml:"scope,omitempty" toml:"scope,omitempty" json:"scope,omitempty"`
}

// LoadManifest reads a manifest file. The format is chosen by extension.
func LoadManifest(path string) (*Manifest, error) {
	feeder, err := feeders.ForFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := feeder.Feed(&m); err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return &m, nil
}

// ConstructorLookup maps constructor names used in a manifest to constructors.
type ConstructorLookup interface {
	Lookup(name string) (Constructor, bool)
}

// ConstructorCatalog is a ConstructorLookup backed by a map.
type ConstructorCatalog map[string]Constructor

// Register adds a constructor under name, replacing any previous entry.
func (c ConstructorCatalog) Register(name string, ctor Constructor) {
	c[name] = ctor
}

// Lookup implements ConstructorLookup.
func (c ConstructorCatalog) Lookup(name string) (Constructor, bool) {
	ctor, ok := c[name]
	return ctor, ok && ctor != nil
}

// Placeholder is the instance built by PlaceholderConstructors.
type Placeholder struct {
	Constructor  string
	Dependencies []any
}

type placeholderLookup struct{}

// PlaceholderConstructors returns a lookup that satisfies every constructor
// name with one returning a *Placeholder. It lets a manifest graph be built and
// checked without the real constructors.
func PlaceholderConstructors() ConstructorLookup {
	return placeholderLookup{}
}

func (placeholderLookup) Lookup(name string) (Constructor, bool) {
	return func(deps ...any) (any, error) {
		return &Placeholder{Constructor: name, Dependencies: deps}, nil
	}, true
}

// Compile turns the manifest into module descriptors and returns the root.
// Imports are bound by name when the graph is built, so import cycles in the
// manifest are reported by the Application like any other import cycle.
func (m *Manifest) Compile(lookup ConstructorLookup) (*ModuleDescriptor, error) {
	if m.Root == "" {
		return nil, ErrManifestRootMissing
	}

	modules := make(map[string]*ModuleDescriptor, len(m.Modules))
	declared := make(map[string]struct{}, len(m.Modules))
	for _, mm := range m.Modules {
		if _, ok := declared[mm.Name]; ok {
			return nil, &DuplicateModuleError{Name: mm.Name}
		}
		declared[mm.Name] = struct{}{}
	}

	for _, mm := range m.Modules {
		opts := make([]ModuleOption, 0, len(mm.Imports)+3)

		for _, name := range mm.Imports {
			if _, ok := declared[name]; !ok {
				return nil, fmt.Errorf("%w: %q imported by %q", ErrManifestModuleNotFound, name, mm.Name)
			}
			// modules is complete by the time any import is followed
			opts = append(opts, WithForwardImport(func() *ModuleDescriptor { return modules[name] }))
		}

		providers := make([]ProviderDescriptor, 0, len(mm.Providers))
		for _, pm := range mm.Providers {
			p, err := pm.compile(lookup)
			if err != nil {
				return nil, fmt.Errorf("module %q: %w", mm.Name, err)
			}
			providers = append(providers, p)
		}
		opts = append(opts, WithProviders(providers...), WithExports(mm.Exports...))
		if mm.Global {
			opts = append(opts, AsGlobal())
		}

		desc, err := DefineModule(mm.Name, opts...)
		if err != nil {
			return nil, err
		}
		modules[mm.Name] = desc
	}

	root, ok := modules[m.Root]
	if !ok {
		return nil, fmt.Errorf("%w: root %q", ErrManifestModuleNotFound, m.Root)
	}
	return root, nil
}

func (pm ProviderManifest) compile(lookup ConstructorLookup) (ProviderDescriptor, error) {
	name := pm.Constructor
	if name == "" {
		name = string(pm.Identity)
	}
	ctor, ok := lookup.Lookup(name)
	if !ok {
		return ProviderDescriptor{}, fmt.Errorf("%w: %q for provider %q", ErrConstructorNotFound, name, pm.Identity)
	}
	scope, err := ParseScope(string(pm.Scope))
	if err != nil {
		return ProviderDescriptor{}, fmt.Errorf("provider %q: %w", pm.Identity, err)
	}
	return DefineProvider(pm.Identity, ctor, WithDependencies(pm.Dependencies...), WithScope(scope))
}
