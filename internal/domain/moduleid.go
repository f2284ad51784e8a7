package domain

import "strings"

// Layer is an architectural layer within a module. Domain, Application and
// Infrastructure are internal to their module; Contracts is the only layer
// other modules may reference.
type Layer string

const (
	LayerDomain         Layer = "Domain"
	LayerApplication    Layer = "Application"
	LayerInfrastructure Layer = "Infrastructure"
	LayerContracts      Layer = "Contracts"
)

// ModuleIdentity is the derived module membership of a compilation unit or a
// referenced namespace. It is recomputed on demand, never stored.
type ModuleIdentity struct {
	Module string
	Layer  Layer
}

// String renders the identity as "<Module>.<Layer>".
func (m ModuleIdentity) String() string { return m.Module + "." + string(m.Layer) }

// SameModule reports whether both identities belong to the same module.
// Module names come from naming conventions, so the comparison is
// case-insensitive.
func (m ModuleIdentity) SameModule(other ModuleIdentity) bool {
	return strings.EqualFold(m.Module, other.Module)
}

// ParseLayer matches a single identity segment against the known layer names,
// case-insensitively.
func ParseLayer(segment string) (Layer, bool) {
	switch strings.ToLower(segment) {
	case "domain":
		return LayerDomain, true
	case "application":
		return LayerApplication, true
	case "infrastructure":
		return LayerInfrastructure, true
	case "contracts":
		return LayerContracts, true
	}
	return "", false
}

// ParseModuleIdentity derives a ModuleIdentity from a compilation unit
// identity string or a type's namespace.
//
// Two strategies, in order:
//
//  1. Structural: a "<...>.Modules.<Module>.<Layer>" segment, where <Layer>
//     is one of the known layer names.
//  2. Fallback: scan dot-separated segments for any known layer name and take
//     the immediately preceding segment as the module name.
//
// When neither strategy matches, ok is false. Callers must treat that as
// "outside the modular convention" and exclude the unit or reference from
// boundary checks; it is never an error.
func ParseModuleIdentity(identity string) (ModuleIdentity, bool) {
	if identity == "" {
		return ModuleIdentity{}, false
	}
	segments := strings.Split(identity, ".")

	for i, seg := range segments {
		if !strings.EqualFold(seg, "Modules") || i+2 >= len(segments) {
			continue
		}
		if layer, ok := ParseLayer(segments[i+2]); ok {
			return ModuleIdentity{Module: segments[i+1], Layer: layer}, true
		}
	}

	for i := 1; i < len(segments); i++ {
		if layer, ok := ParseLayer(segments[i]); ok {
			return ModuleIdentity{Module: segments[i-1], Layer: layer}, true
		}
	}

	return ModuleIdentity{}, false
}
