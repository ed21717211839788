package modgraph

import "fmt"

// Scope defines how often a provider is constructed.
type Scope string

const (
	// ScopeSingleton constructs the provider once per application build and
	// shares the instance with every consumer in the module tree.
	ScopeSingleton Scope = "singleton"

	// ScopeRequest constructs a fresh, uncached instance on every resolve call.
	ScopeRequest Scope = "request"
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid returns true if the scope is one of the defined constants.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeSingleton, ScopeRequest:
		return true
	default:
		return false
	}
}

// ParseScope parses a string into a Scope. An empty string yields the default scope.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return DefaultScope(), nil
	}
	scope := Scope(s)
	if !scope.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidScope, s)
	}
	return scope, nil
}

// DefaultScope returns the scope used when a provider declares none.
func DefaultScope() Scope {
	return ScopeSingleton
}

// IsCacheable returns true if instances of this scope are cached by the container.
func (s Scope) IsCacheable() bool {
	return s == ScopeSingleton
}

// Description returns a brief description of the scope behavior.
func (s Scope) Description() string {
	switch s {
	case ScopeSingleton:
		return "Single instance shared across the module tree"
	case ScopeRequest:
		return "New instance created for each resolve call"
	default:
		return "Unknown scope behavior"
	}
}

// IsCompatibleWith reports whether a provider of scope s can depend on a
// provider of scope dep without capturing it. A singleton holding a
// request-scoped dependency keeps the single instance it was built with.
func (s Scope) IsCompatibleWith(dep Scope) bool {
	switch s {
	case ScopeSingleton:
		return dep != ScopeRequest
	case ScopeRequest:
		return true
	default:
		return false
	}
}
