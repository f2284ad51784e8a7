package rules

import (
	"strings"

	"github.com/melodic-software/medley/internal/domain"
)

// Diagnostic identifiers, stable across runs.
const (
	IDRepository    = "MDY001"
	IDValidator     = "MDY002"
	IDHandler       = "MDY003"
	IDSpecification = "MDY004"
	IDService       = "MDY005"
	IDConfiguration = "MDY006"
	IDDto           = "MDY007"
)

const suffixMessage = "type %q should end with the %q suffix"

// All returns the full rule set in its fixed evaluation order. The two
// heuristic rules (service, data transfer) are informational because they
// rest on naming signals rather than structural facts; the rest are grounded
// in inheritance and interface facts and report as warnings.
func All() []SuffixRule {
	return []SuffixRule{
		repositoryRule(),
		validatorRule(),
		handlerRule(),
		specificationRule(),
		serviceRule(),
		configurationRule(),
		dtoRule(),
	}
}

// repositoryRule: a concrete type implementing a persistence abstraction
// (an IRepository-prefixed interface or any interface ending in Repository)
// must be named *Repository.
func repositoryRule() SuffixRule {
	return SuffixRule{
		ID:              IDRepository,
		Name:            "repository-suffix",
		RequiredSuffix:  "Repository",
		Severity:        domain.SeverityWarning,
		MessageTemplate: suffixMessage,
		Predicate: func(_ *Env, t domain.TypeDescriptor) bool {
			return domain.ImplementsInterfaceWithPattern(t, "IRepository", "") ||
				domain.ImplementsInterfaceWithPattern(t, "", "Repository")
		},
	}
}

// validatorRule: a type deriving from the well-known abstract validator base
// must be named *Validator.
func validatorRule() SuffixRule {
	return SuffixRule{
		ID:              IDValidator,
		Name:            "validator-suffix",
		RequiredSuffix:  "Validator",
		Severity:        domain.SeverityWarning,
		MessageTemplate: suffixMessage,
		Predicate: func(env *Env, t domain.TypeDescriptor) bool {
			return domain.InheritsFromWellKnown(t, env.Resolver, env.WellKnown.ValidatorBase)
		},
	}
}

// handlerRule: a type implementing the well-known generic request-handler
// interface must be named *Handler.
func handlerRule() SuffixRule {
	return SuffixRule{
		ID:              IDHandler,
		Name:            "handler-suffix",
		RequiredSuffix:  "Handler",
		Severity:        domain.SeverityWarning,
		MessageTemplate: suffixMessage,
		Predicate: func(env *Env, t domain.TypeDescriptor) bool {
			return domain.ImplementsWellKnownInterface(t, env.Resolver, env.WellKnown.RequestHandler)
		},
	}
}

// specificationRule: a type deriving from a Specification base or
// implementing an ISpecification-prefixed interface must be named
// *Specification.
func specificationRule() SuffixRule {
	return SuffixRule{
		ID:              IDSpecification,
		Name:            "specification-suffix",
		RequiredSuffix:  "Specification",
		Severity:        domain.SeverityWarning,
		MessageTemplate: suffixMessage,
		Predicate: func(_ *Env, t domain.TypeDescriptor) bool {
			return domain.InheritsFrom(t, "Specification") ||
				domain.ImplementsInterfaceWithPattern(t, "ISpecification", "")
		},
	}
}

// serviceSuffixWords are the conventional trailing words that signal a
// service-like type. First match wins; the order is fixed and documented
// rather than left to an implicit priority.
var serviceSuffixWords = []string{
	"Manager", "Processor", "Coordinator", "Provider", "Executor", "Dispatcher",
}

// serviceRule (heuristic): a type in a domain or application services
// namespace whose name ends with a service-like word must be named *Service.
func serviceRule() SuffixRule {
	return SuffixRule{
		ID:              IDService,
		Name:            "service-suffix",
		RequiredSuffix:  "Service",
		Severity:        domain.SeverityInfo,
		MessageTemplate: suffixMessage,
		Predicate: func(_ *Env, t domain.TypeDescriptor) bool {
			if !inServicesNamespace(t.Namespace) {
				return false
			}
			return endsWithAny(t.Name, serviceSuffixWords)
		},
	}
}

// configurationRule: a type implementing the well-known generic entity
// configuration interface must be named *Configuration.
func configurationRule() SuffixRule {
	return SuffixRule{
		ID:              IDConfiguration,
		Name:            "configuration-suffix",
		RequiredSuffix:  "Configuration",
		Severity:        domain.SeverityWarning,
		MessageTemplate: suffixMessage,
		Predicate: func(env *Env, t domain.TypeDescriptor) bool {
			return domain.ImplementsWellKnownInterface(t, env.Resolver, env.WellKnown.EntityConfiguration)
		},
	}
}

// dtoSuffixWords are the conventional trailing words of data transfer types.
var dtoSuffixWords = []string{
	"Response", "Request", "Model", "Data", "Info", "Details", "Summary", "Item", "Result",
}

// dtoRule (heuristic): a data-carrying type in a contracts namespace whose
// name ends with a transfer-object word must be named *Dto (or *DTO).
func dtoRule() SuffixRule {
	return SuffixRule{
		ID:                IDDto,
		Name:              "dto-suffix",
		RequiredSuffix:    "Dto",
		AlternateSuffixes: []string{"DTO"},
		Severity:          domain.SeverityInfo,
		MessageTemplate:   suffixMessage,
		Predicate: func(_ *Env, t domain.TypeDescriptor) bool {
			if !hasSegment(t.Namespace, "Contracts") {
				return false
			}
			switch t.Kind {
			case domain.KindClass, domain.KindRecord, domain.KindStruct:
			default:
				return false
			}
			return endsWithAny(t.Name, dtoSuffixWords)
		},
	}
}

// --- helpers ---

// inServicesNamespace requires both a Services segment and a Domain or
// Application segment, matching namespaces like "Orders.Domain.Services".
func inServicesNamespace(namespace string) bool {
	if !hasSegment(namespace, "Services") {
		return false
	}
	return hasSegment(namespace, "Domain") || hasSegment(namespace, "Application")
}

func hasSegment(namespace, segment string) bool {
	for _, s := range strings.Split(namespace, ".") {
		if strings.EqualFold(s, segment) {
			return true
		}
	}
	return false
}

// endsWithAny matches on the final camel-case word so that, say, "Portfolio"
// never matches "Io". First matching word in the list wins.
func endsWithAny(name string, words []string) bool {
	last := domain.LastWord(name)
	for _, w := range words {
		if last == w {
			return true
		}
	}
	return false
}
