package modgraph

import "reflect"

// Identity names a provider within a whole application. Any unique token works;
// TypeIdentity derives one from a Go type.
type Identity string

// String returns the identity as a plain string.
func (id Identity) String() string {
	return string(id)
}

// TypeIdentity returns the package-qualified name of T. Pointer types resolve
// to their element type so *Service and Service share an identity.
//
//	modgraph.TypeIdentity[*UserRepository]() // "example.com/app/users.UserRepository"
func TypeIdentity[T any]() Identity {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return Identity(t.String())
	}
	return Identity(t.PkgPath() + "." + t.Name())
}
