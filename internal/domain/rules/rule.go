// Package rules holds the suffix convention rules. Each rule is a plain data
// record with a predicate function; the set is closed and evaluated by a
// single dispatch loop.
package rules

import (
	"fmt"
	"strings"

	"github.com/melodic-software/medley/internal/domain"
)

// Env carries the per-pass context a predicate may need beyond the descriptor
// itself: the well-known symbol resolver and the configured canonical names.
type Env struct {
	Resolver  domain.WellKnownResolver
	WellKnown domain.WellKnownNames
}

// SuffixRule requires types matched by its predicate to carry a naming
// suffix. Rules are stateless and constructed once at startup.
type SuffixRule struct {
	ID                string
	Name              string
	RequiredSuffix    string
	AlternateSuffixes []string
	CaseInsensitive   bool
	Severity          string
	MessageTemplate   string
	Predicate         func(env *Env, t domain.TypeDescriptor) bool
}

// HasRequiredSuffix reports whether the name already ends with the rule's
// required suffix or any alternate, under the rule's comparison mode.
func (r SuffixRule) HasRequiredSuffix(name string) bool {
	if r.matches(name, r.RequiredSuffix) {
		return true
	}
	for _, alt := range r.AlternateSuffixes {
		if r.matches(name, alt) {
			return true
		}
	}
	return false
}

func (r SuffixRule) matches(name, suffix string) bool {
	if r.CaseInsensitive {
		return strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix))
	}
	return strings.HasSuffix(name, suffix)
}

// Evaluate runs every rule against one declared type. The guard clauses are
// enforced here, centrally, not per rule: abstract types and interfaces never
// fire, and a type whose name already carries the suffix never fires.
func Evaluate(env *Env, t domain.TypeDescriptor, ruleset []SuffixRule) []domain.Diagnostic {
	if t.Abstract || t.Kind == domain.KindInterface {
		return nil
	}

	var diags []domain.Diagnostic
	for _, r := range ruleset {
		if r.HasRequiredSuffix(t.Name) {
			continue
		}
		if !r.Predicate(env, t) {
			continue
		}
		diags = append(diags, domain.Diagnostic{
			ID:       r.ID,
			Category: domain.CategoryNaming,
			Severity: r.Severity,
			Message:  fmt.Sprintf(r.MessageTemplate, t.Name, r.RequiredSuffix),
			Args:     []string{t.Name, r.RequiredSuffix},
			TypeName: t.Name,
			Location: t.Location,
			Fix:      &domain.FixMetadata{RequiredSuffix: r.RequiredSuffix},
		})
	}
	return diags
}
