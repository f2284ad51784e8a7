// Package boundary flags references that cross from one module's internal
// layers into another's. Modules may only touch each other through the
// Contracts layer; everything inside a module, the shared kernel, and the
// platform is always fair game.
package boundary

import (
	"fmt"

	"github.com/melodic-software/medley/internal/domain"
)

// IDCrossModule is the diagnostic identifier for a cross-module reference
// into a non-Contracts layer.
const IDCrossModule = "MDY010"

// Analyzer walks the full reference surface of each declared type in a
// compilation unit. It holds only configuration and is safe for concurrent
// use.
type Analyzer struct {
	cfg domain.AnalysisConfig
}

func New(cfg domain.AnalysisConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// AnalyzeUnit derives the unit's module identity and checks every declared
// type. A unit whose identity cannot be parsed is outside the modular
// convention and produces no work at all.
func (a *Analyzer) AnalyzeUnit(unit domain.CompilationUnitDescriptor, types []domain.TypeDescriptor) []domain.Diagnostic {
	current, ok := domain.ParseModuleIdentity(unit.Identity)
	if !ok {
		return nil
	}
	var diags []domain.Diagnostic
	for _, t := range types {
		diags = append(diags, a.AnalyzeType(current, t)...)
	}
	return diags
}

// AnalyzeType checks one declared type against the current module identity.
// Each referenced type is reported at most once per declaring type, no matter
// how many paths reach it.
func (a *Analyzer) AnalyzeType(current domain.ModuleIdentity, t domain.TypeDescriptor) []domain.Diagnostic {
	var diags []domain.Diagnostic
	seen := make(map[string]bool)

	for _, ref := range ReferenceSurface(t) {
		key := refKey(ref)
		if seen[key] {
			continue
		}
		seen[key] = true

		target, violation := a.check(current, ref)
		if !violation {
			continue
		}
		diags = append(diags, domain.Diagnostic{
			ID:       IDCrossModule,
			Category: domain.CategoryBoundaries,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf(
				"type %q in module %q references %q in %s; cross-module access must go through the Contracts layer",
				t.Name, current.Module, ref.Name, target.String()),
			Args:     []string{current.Module, target.String()},
			TypeName: t.Name,
			Location: t.Location,
		})
	}
	return diags
}

// check applies the allow rules in order: platform, shared kernel,
// unidentified, same module, Contracts layer. Anything left is a violation.
func (a *Analyzer) check(current domain.ModuleIdentity, ref domain.TypeRef) (domain.ModuleIdentity, bool) {
	if a.cfg.IsPlatform(ref.Namespace) {
		return domain.ModuleIdentity{}, false
	}
	if a.cfg.IsSharedKernel(ref.Namespace) {
		return domain.ModuleIdentity{}, false
	}
	target, ok := domain.ParseModuleIdentity(ref.Namespace)
	if !ok {
		// Unidentified references are not part of the modular surface.
		return domain.ModuleIdentity{}, false
	}
	if current.SameModule(target) {
		return domain.ModuleIdentity{}, false
	}
	if target.Layer == domain.LayerContracts {
		return domain.ModuleIdentity{}, false
	}
	return target, true
}

// ReferenceSurface flattens every named type reachable from a descriptor:
// base types, implemented interfaces, member types, method parameter types,
// and the generic arguments of all of those, recursively.
func ReferenceSurface(t domain.TypeDescriptor) []domain.TypeRef {
	var refs []domain.TypeRef
	for _, base := range t.BaseChain {
		refs = appendRef(refs, base)
	}
	for _, iface := range t.Interfaces {
		refs = appendRef(refs, iface)
	}
	for _, m := range t.Members {
		if m.Type.Name != "" {
			refs = appendRef(refs, m.Type)
		}
		for _, p := range m.Params {
			refs = appendRef(refs, p)
		}
	}
	return refs
}

func appendRef(refs []domain.TypeRef, ref domain.TypeRef) []domain.TypeRef {
	refs = append(refs, ref)
	for _, arg := range ref.TypeArgs {
		refs = appendRef(refs, arg)
	}
	return refs
}

func refKey(ref domain.TypeRef) string {
	if ref.Symbol != "" {
		return string(ref.Symbol)
	}
	return ref.Namespace + "." + ref.Name
}
