package modgraph

// visitMark tracks a node during the depth-first ordering.
type visitMark int

const (
	unvisited visitMark = iota
	inProgress
	done
)

// graphNode is one provider in a module's dependency graph.
type graphNode struct {
	provider     ProviderDescriptor
	dependencies []Identity
	mark         visitMark
}

// dependencyGraph maps identities to nodes and remembers declaration order.
type dependencyGraph struct {
	module string
	nodes  map[Identity]*graphNode
	order  []Identity
}

// buildGraph records every provider with its declared dependencies verbatim.
// Dependencies that are not local are left for the instantiator to resolve
// against imports and globals.
func buildGraph(module string, providers []ProviderDescriptor) (*dependencyGraph, error) {
	g := &dependencyGraph{
		module: module,
		nodes:  make(map[Identity]*graphNode, len(providers)),
		order:  make([]Identity, 0, len(providers)),
	}

	for _, p := range providers {
		id := p.Identity()
		if _, exists := g.nodes[id]; exists {
			return nil, &DuplicateProviderError{Module: module, Identity: id}
		}

		deps := p.Dependencies()
		for _, dep := range deps {
			if dep == id {
				return nil, &CyclicDependencyError{Module: module, Path: []Identity{id, id}}
			}
		}

		g.nodes[id] = &graphNode{provider: p, dependencies: deps}
		g.order = append(g.order, id)
	}

	return g, nil
}

// has reports whether id is a provider of this graph.
func (g *dependencyGraph) has(id Identity) bool {
	_, ok := g.nodes[id]
	return ok
}
