package modgraph

// ModuleSnapshot describes a built module for diagnostics.
type ModuleSnapshot struct {
	Name      string             `json:"name"`
	Global    bool               `json:"global"`
	Imports   []string           `json:"imports"`
	Providers []ProviderSnapshot `json:"providers"`
	Exports   []Identity         `json:"exports"`
	// Order is the construction order of the local providers.
	Order []Identity `json:"order"`
}

// ProviderSnapshot describes one provider of a module.
type ProviderSnapshot struct {
	Identity     Identity   `json:"identity"`
	Scope        Scope      `json:"scope"`
	Dependencies []Identity `json:"dependencies"`
}

// Describe returns a snapshot of the container's module.
func (c *Container) Describe() ModuleSnapshot {
	snap := ModuleSnapshot{
		Name:      c.Name(),
		Global:    c.module.IsGlobal(),
		Imports:   make([]string, 0, len(c.module.imports)),
		Providers: make([]ProviderSnapshot, 0, len(c.module.providers)),
		Exports:   c.Exports(),
		Order:     c.Order(),
	}
	// imports resolved during the build, so forward references are non-nil
	if imports, err := c.module.Imports(); err == nil {
		for _, m := range imports {
			snap.Imports = append(snap.Imports, m.Name())
		}
	}
	for _, p := range c.module.providers {
		snap.Providers = append(snap.Providers, ProviderSnapshot{
			Identity:     p.Identity(),
			Scope:        p.Scope(),
			Dependencies: p.Dependencies(),
		})
	}
	return snap
}
