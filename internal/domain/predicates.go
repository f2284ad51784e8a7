package domain

import "strings"

// Structural predicates over type descriptors. All are pure, cost at most
// O(|interfaces|) or O(depth of the base chain), and never perform I/O.

// ImplementsInterface reports whether the type implements an interface with
// the given simple name, either directly or as the generic origin of an
// instantiated interface.
func ImplementsInterface(t TypeDescriptor, interfaceName string) bool {
	for _, iface := range t.Interfaces {
		if iface.Name == interfaceName || iface.GenericOrigin == interfaceName {
			return true
		}
	}
	return false
}

// ImplementsInterfaceWithPattern reports whether any implemented interface's
// simple name starts with prefix and ends with suffix. Either pattern may be
// empty; both must match when supplied. Generic instantiations are matched by
// their origin name.
func ImplementsInterfaceWithPattern(t TypeDescriptor, prefix, suffix string) bool {
	for _, iface := range t.Interfaces {
		name := iface.Name
		if iface.GenericOrigin != "" {
			name = iface.GenericOrigin
		}
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if suffix != "" && !strings.HasSuffix(name, suffix) {
			continue
		}
		return true
	}
	return false
}

// InheritsFrom walks the base type chain comparing simple names and generic
// origin names, returning on the first match.
func InheritsFrom(t TypeDescriptor, baseName string) bool {
	for _, base := range t.BaseChain {
		if base.Name == baseName || base.GenericOrigin == baseName {
			return true
		}
	}
	return false
}

// InheritsFromWellKnown resolves the fully qualified name once through the
// resolver and compares the resolved symbol by identity against the base
// chain. An unresolvable symbol means the defining library is absent from the
// compilation, so the result is false rather than an error.
func InheritsFromWellKnown(t TypeDescriptor, r WellKnownResolver, fullyQualifiedName string) bool {
	sym, ok := r.ResolveWellKnown(fullyQualifiedName)
	if !ok {
		return false
	}
	for _, base := range t.BaseChain {
		if base.Symbol == sym {
			return true
		}
	}
	return false
}

// ImplementsWellKnownInterface is the interface-set counterpart of
// InheritsFromWellKnown: resolve once, then compare by symbol identity.
func ImplementsWellKnownInterface(t TypeDescriptor, r WellKnownResolver, fullyQualifiedName string) bool {
	sym, ok := r.ResolveWellKnown(fullyQualifiedName)
	if !ok {
		return false
	}
	for _, iface := range t.Interfaces {
		if iface.Symbol == sym {
			return true
		}
	}
	return false
}
