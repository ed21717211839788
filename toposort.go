package modgraph

// topologicalSort orders the graph so every provider follows the providers it
// depends on within the same graph. Independent providers keep their
// declaration order. Dependencies outside the graph are skipped.
func topologicalSort(g *dependencyGraph) ([]ProviderDescriptor, error) {
	result := make([]ProviderDescriptor, 0, len(g.order))
	var stack []Identity

	var visit func(id Identity) error
	visit = func(id Identity) error {
		node := g.nodes[id]
		switch node.mark {
		case done:
			return nil
		case inProgress:
			return &CyclicDependencyError{Module: g.module, Path: cyclePath(stack, id)}
		}

		node.mark = inProgress
		stack = append(stack, id)

		for _, dep := range node.dependencies {
			if !g.has(dep) {
				continue // external
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		node.mark = done
		result = append(result, node.provider)
		return nil
	}

	for _, id := range g.order {
		if g.nodes[id].mark != unvisited {
			continue
		}
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// cyclePath cuts the traversal stack at the first occurrence of id and closes
// the loop, e.g. [A B C] + B yields [B C B].
func cyclePath(stack []Identity, id Identity) []Identity {
	start := 0
	for i, v := range stack {
		if v == id {
			start = i
			break
		}
	}
	path := make([]Identity, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	return append(path, id)
}
