package modgraph

// moduleState tracks whether a registered container finished building.
type moduleState int

const (
	moduleBuilding moduleState = iota
	moduleBuilt
)

type moduleEntry struct {
	container *Container
	state     moduleState
}

// registry is the per-application record of built modules and global
// providers. It is only written while the application build lock is held.
type registry struct {
	modules map[string]*moduleEntry
	// order lists module names in the order their builds completed
	order   []string
	globals map[Identity]*binding
	// stack holds the modules currently being built, outermost first
	stack []string
}

func newRegistry() *registry {
	return &registry{
		modules: make(map[string]*moduleEntry),
		globals: make(map[Identity]*binding),
	}
}

// lookup returns the entry registered under the module's name. It fails when a
// different descriptor already claimed the name, or when the module is still
// being built further up the stack (an import cycle).
func (r *registry) lookup(m *ModuleDescriptor) (*moduleEntry, error) {
	entry, ok := r.modules[m.Name()]
	if !ok {
		return nil, nil
	}
	if entry.container.module != m {
		return nil, &DuplicateModuleError{Name: m.Name()}
	}
	if entry.state == moduleBuilding {
		return nil, &CyclicDependencyError{ModulePath: r.cycleTo(m.Name())}
	}
	return entry, nil
}

// begin registers a container as in progress and pushes it on the build stack.
func (r *registry) begin(c *Container) {
	r.modules[c.Name()] = &moduleEntry{container: c, state: moduleBuilding}
	r.stack = append(r.stack, c.Name())
}

// finish marks the container built and pops it from the build stack.
func (r *registry) finish(c *Container) {
	r.modules[c.Name()].state = moduleBuilt
	r.order = append(r.order, c.Name())
	r.stack = r.stack[:len(r.stack)-1]
}

// cycleTo returns the import path from name's first appearance on the build
// stack back to name.
func (r *registry) cycleTo(name string) []string {
	start := 0
	for i, v := range r.stack {
		if v == name {
			start = i
			break
		}
	}
	path := make([]string, 0, len(r.stack)-start+1)
	path = append(path, r.stack[start:]...)
	return append(path, name)
}

// global returns the global binding for id.
func (r *registry) global(id Identity) (*binding, bool) {
	b, ok := r.globals[id]
	return b, ok
}

// registerGlobal adds an exported binding to the global registry. The same
// binding reached twice is not a collision.
func (r *registry) registerGlobal(importer string, id Identity, b *binding) error {
	if existing, ok := r.globals[id]; ok {
		if existing == b {
			return nil
		}
		return &AmbiguousProviderError{
			Identity: id,
			Importer: importer,
			Modules:  []string{existing.module, b.module},
			Global:   true,
		}
	}
	r.globals[id] = b
	return nil
}

// built returns the containers that completed their build, in completion order.
func (r *registry) built() []*Container {
	out := make([]*Container, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.modules[name].container)
	}
	return out
}
