package modgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineModule(t *testing.T) {
	db := MustDefineModule("db",
		WithProviders(Value("DB", "conn")),
		WithExports("DB"),
	)

	t.Run("records declaration", func(t *testing.T) {
		m, err := DefineModule("users",
			WithImports(db),
			WithProviders(MustDefineProvider("Repo", nopConstructor, WithDependencies("DB"))),
			WithExports("Repo", "DB"),
			AsGlobal(),
		)
		require.NoError(t, err)
		assert.Equal(t, "users", m.Name())
		assert.True(t, m.IsGlobal())
		assert.Equal(t, []Identity{"Repo", "DB"}, m.Exports())
		require.Len(t, m.Providers(), 1)
		assert.Equal(t, Identity("Repo"), m.Providers()[0].Identity())

		imports, err := m.Imports()
		require.NoError(t, err)
		assert.Equal(t, []*ModuleDescriptor{db}, imports)
	})

	t.Run("forward import resolves late", func(t *testing.T) {
		var later *ModuleDescriptor
		m := MustDefineModule("early", WithForwardImport(func() *ModuleDescriptor { return later }))

		_, err := m.Imports()
		assert.ErrorIs(t, err, ErrModuleNil)

		later = db
		imports, err := m.Imports()
		require.NoError(t, err)
		assert.Equal(t, []*ModuleDescriptor{db}, imports)
	})

	t.Run("exports are copied", func(t *testing.T) {
		exports := db.Exports()
		exports[0] = "Other"
		assert.Equal(t, []Identity{"DB"}, db.Exports())
	})

	tests := []struct {
		name    string
		modName string
		opts    []ModuleOption
		wantErr error
	}{
		{"empty name", "", nil, ErrEmptyModuleName},
		{"nil import", "m", []ModuleOption{WithImports(db, nil)}, ErrModuleNil},
		{"nil forward import", "m", []ModuleOption{WithForwardImport(nil)}, ErrModuleNil},
		{"empty export", "m", []ModuleOption{WithExports("")}, ErrEmptyIdentity},
		{"duplicate export", "m", []ModuleOption{WithExports("A", "A")}, ErrDuplicateExport},
		{"zero provider", "m", []ModuleOption{WithProviders(ProviderDescriptor{})}, ErrEmptyIdentity},
		{"provider without constructor", "m", []ModuleOption{WithProviders(ProviderDescriptor{identity: "A"})}, ErrNilConstructor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefineModule(tt.modName, tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Panics(t, func() { MustDefineModule("") })
}
