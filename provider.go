package modgraph

import (
	"fmt"
	"slices"
)

// Constructor builds a provider instance. Dependencies arrive positionally in
// the order they were declared with WithDependencies.
type Constructor func(deps ...any) (any, error)

// ProviderDescriptor is the immutable declaration of a constructible component.
type ProviderDescriptor struct {
	identity     Identity
	dependencies []Identity
	scope        Scope
	constructor  Constructor
}

// ProviderOption configures a provider declaration.
type ProviderOption func(*ProviderDescriptor) error

// WithDependencies declares the identities passed to the constructor, in order.
func WithDependencies(ids ...Identity) ProviderOption {
	return func(p *ProviderDescriptor) error {
		for i, id := range ids {
			if id == "" {
				return fmt.Errorf("%w: dependency %d of %q", ErrEmptyIdentity, i, p.identity)
			}
		}
		p.dependencies = append(p.dependencies, ids...)
		return nil
	}
}

// WithScope sets the provider scope. Providers are singletons by default.
func WithScope(scope Scope) ProviderOption {
	return func(p *ProviderDescriptor) error {
		if !scope.IsValid() {
			return fmt.Errorf("%w: %q for %q", ErrInvalidScope, scope, p.identity)
		}
		p.scope = scope
		return nil
	}
}

// DefineProvider declares a provider. A provider listing itself as a dependency
// is accepted here and rejected when its module is built.
func DefineProvider(id Identity, ctor Constructor, opts ...ProviderOption) (ProviderDescriptor, error) {
	if id == "" {
		return ProviderDescriptor{}, ErrEmptyIdentity
	}
	if ctor == nil {
		return ProviderDescriptor{}, fmt.Errorf("%w: %q", ErrNilConstructor, id)
	}

	p := ProviderDescriptor{
		identity:    id,
		scope:       DefaultScope(),
		constructor: ctor,
	}
	for _, opt := range opts {
		if err := opt(&p); err != nil {
			return ProviderDescriptor{}, err
		}
	}
	for i, dep := range p.dependencies {
		if slices.Contains(p.dependencies[:i], dep) {
			return ProviderDescriptor{}, fmt.Errorf("%w: %q in %q", ErrDuplicateDependency, dep, id)
		}
	}
	return p, nil
}

// MustDefineProvider is like DefineProvider but panics on error.
func MustDefineProvider(id Identity, ctor Constructor, opts ...ProviderOption) ProviderDescriptor {
	p, err := DefineProvider(id, ctor, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Value declares a singleton provider that always yields v.
func Value[T any](id Identity, v T) ProviderDescriptor {
	return MustDefineProvider(id, func(...any) (any, error) { return v, nil })
}

// Identity returns the provider identity.
func (p ProviderDescriptor) Identity() Identity {
	return p.identity
}

// Dependencies returns a copy of the declared dependency identities.
func (p ProviderDescriptor) Dependencies() []Identity {
	return slices.Clone(p.dependencies)
}

// Scope returns the provider scope.
func (p ProviderDescriptor) Scope() Scope {
	return p.scope
}

// Constructor returns the provider constructor.
func (p ProviderDescriptor) Constructor() Constructor {
	return p.constructor
}
