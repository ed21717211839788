package modgraph

// binding is a provider made available to containers: the provider, the module
// that declared it, and the bindings its dependencies resolved to. Singleton
// bindings carry their instance; request bindings construct on every get.
type binding struct {
	provider ProviderDescriptor
	module   string
	deps     []*binding
	instance any
	events   *eventEmitter
}

// get returns the cached singleton or constructs a fresh request instance.
func (b *binding) get() (any, error) {
	if b.provider.Scope().IsCacheable() {
		return b.instance, nil
	}
	return b.construct()
}

// construct invokes the constructor with the dependency instances in declared order.
func (b *binding) construct() (any, error) {
	args := make([]any, len(b.deps))
	for i, dep := range b.deps {
		v, err := dep.get()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	instance, err := b.provider.Constructor()(args...)
	if err != nil {
		return nil, &ConstructionError{Module: b.module, Identity: b.provider.Identity(), Err: err}
	}
	b.events.providerInstantiated(b.module, b.provider)
	return instance, nil
}
