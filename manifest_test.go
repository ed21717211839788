package modgraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
root: app
modules:
  - name: config
    global: true
    providers:
      - identity: Settings
    exports: [Settings]
  - name: db
    providers:
      - identity: DB
        constructor: postgres
        dependencies: [Settings]
    exports: [DB]
  - name: app
    imports: [config, db]
    providers:
      - identity: Handler
        dependencies: [Repo]
        scope: request
      - identity: Repo
        dependencies: [DB]
    exports: [Handler, Repo]
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, "graph.yaml", manifestYAML))
	require.NoError(t, err)

	assert.Equal(t, "app", m.Root)
	require.Len(t, m.Modules, 3)
	assert.True(t, m.Modules[0].Global)
	assert.Equal(t, "postgres", m.Modules[1].Providers[0].Constructor)
	assert.Equal(t, []string{"config", "db"}, m.Modules[2].Imports)
	assert.Equal(t, ScopeRequest, m.Modules[2].Providers[0].Scope)

	t.Run("toml", func(t *testing.T) {
		m, err := LoadManifest(writeManifest(t, "graph.toml", `
root = "app"

[[modules]]
name = "app"
exports = ["A"]

[[modules.providers]]
identity = "A"
scope = "request"
`))
		require.NoError(t, err)
		require.Len(t, m.Modules, 1)
		assert.Equal(t, ScopeRequest, m.Modules[0].Providers[0].Scope)
		assert.Equal(t, []Identity{"A"}, m.Modules[0].Exports)
	})

	t.Run("json", func(t *testing.T) {
		m, err := LoadManifest(writeManifest(t, "graph.json",
			`{"root": "app", "modules": [{"name": "app", "providers": [{"identity": "A", "dependencies": ["B"]}]}]}`))
		require.NoError(t, err)
		assert.Equal(t, []Identity{"B"}, m.Modules[0].Providers[0].Dependencies)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := LoadManifest("graph.xml")
		assert.Error(t, err)
	})
}

func TestManifestCompile(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, "graph.yaml", manifestYAML))
	require.NoError(t, err)

	t.Run("with catalog", func(t *testing.T) {
		catalog := ConstructorCatalog{}
		catalog.Register("Settings", func(...any) (any, error) { return "dsn://local", nil })
		catalog.Register("postgres", func(deps ...any) (any, error) { return "db:" + deps[0].(string), nil })
		catalog.Register("Repo", func(deps ...any) (any, error) { return "repo(" + deps[0].(string) + ")", nil })
		catalog.Register("Handler", func(deps ...any) (any, error) { return "handler(" + deps[0].(string) + ")", nil })

		root, err := m.Compile(catalog)
		require.NoError(t, err)
		assert.Equal(t, "app", root.Name())

		app, err := NewApplication(root)
		require.NoError(t, err)
		handler, err := Resolve[string](app, "Handler")
		require.NoError(t, err)
		assert.Equal(t, "handler(repo(db:dsn://local))", handler)
	})

	t.Run("with placeholders", func(t *testing.T) {
		root, err := m.Compile(PlaceholderConstructors())
		require.NoError(t, err)

		app, err := NewApplication(root)
		require.NoError(t, err)
		repo, err := Resolve[*Placeholder](app, "Repo")
		require.NoError(t, err)
		assert.Equal(t, "Repo", repo.Constructor)
		require.Len(t, repo.Dependencies, 1)
		assert.Equal(t, "postgres", repo.Dependencies[0].(*Placeholder).Constructor)
	})

	t.Run("missing constructor", func(t *testing.T) {
		_, err := m.Compile(ConstructorCatalog{})
		assert.ErrorIs(t, err, ErrConstructorNotFound)
	})

	t.Run("nil catalog entry", func(t *testing.T) {
		_, ok := ConstructorCatalog{"x": nil}.Lookup("x")
		assert.False(t, ok)
	})
}

func TestManifestCompile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		wantErr  error
	}{
		{
			name:     "missing root",
			manifest: Manifest{Modules: []ModuleManifest{{Name: "app"}}},
			wantErr:  ErrManifestRootMissing,
		},
		{
			name:     "undeclared root",
			manifest: Manifest{Root: "app", Modules: []ModuleManifest{{Name: "other"}}},
			wantErr:  ErrManifestModuleNotFound,
		},
		{
			name:     "undeclared import",
			manifest: Manifest{Root: "app", Modules: []ModuleManifest{{Name: "app", Imports: []string{"ghost"}}}},
			wantErr:  ErrManifestModuleNotFound,
		},
		{
			name:     "duplicate module",
			manifest: Manifest{Root: "app", Modules: []ModuleManifest{{Name: "app"}, {Name: "app"}}},
			wantErr:  ErrDuplicateModule,
		},
		{
			name: "invalid scope",
			manifest: Manifest{Root: "app", Modules: []ModuleManifest{{
				Name:      "app",
				Providers: []ProviderManifest{{Identity: "A", Scope: "transient"}},
			}}},
			wantErr: ErrInvalidScope,
		},
		{
			name:     "empty module name",
			manifest: Manifest{Root: "app", Modules: []ModuleManifest{{Name: ""}}},
			wantErr:  ErrEmptyModuleName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manifest.Compile(PlaceholderConstructors())
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestManifestCompile_ImportCycle(t *testing.T) {
	m := Manifest{
		Root: "a",
		Modules: []ModuleManifest{
			{Name: "a", Imports: []string{"b"}},
			{Name: "b", Imports: []string{"c"}},
			{Name: "c", Imports: []string{"a"}},
		},
	}
	root, err := m.Compile(PlaceholderConstructors())
	require.NoError(t, err)

	app, err := NewApplication(root)
	require.NoError(t, err)
	_, err = app.Container()

	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.ModulePath)
}
