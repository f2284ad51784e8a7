package domain

import (
	"fmt"
	"strings"
)

// WellKnownNames carries the fully qualified names of the canonical symbols
// the structural rules resolve against. A name absent from the analyzed
// compilation silently disables the rule that depends on it.
type WellKnownNames struct {
	ValidatorBase       string `yaml:"validator_base" json:"validator_base"`
	RequestHandler      string `yaml:"request_handler" json:"request_handler"`
	EntityConfiguration string `yaml:"entity_configuration" json:"entity_configuration"`
}

// Suppression silences a diagnostic identifier for locations matching a glob
// pattern. An empty ID suppresses every identifier at matching locations.
type Suppression struct {
	ID   string `yaml:"id" json:"id,omitempty"`
	Path string `yaml:"path" json:"path"`
}

// PartialSuffix maps a short or abbreviated suffix form to its full form.
// The rename engine replaces a trailing partial with the full form instead of
// naively appending; rule evaluation never consults this mapping.
type PartialSuffix struct {
	Partial string `yaml:"partial" json:"partial"`
	Full    string `yaml:"full" json:"full"`
}

// AnalysisConfig is the plain-data configuration surface of the engine. The
// host loads it (from .medley.yaml or its own sources) and passes it in; the
// core never reads configuration from disk itself.
type AnalysisConfig struct {
	// ModulesRoot is the directory the provider scans for <module>/<layer>
	// packages. Defaults to "internal".
	ModulesRoot string `yaml:"modules_root" json:"modules_root,omitempty"`

	// ExcludePaths are directory names skipped while scanning.
	ExcludePaths []string `yaml:"exclude_paths" json:"exclude_paths,omitempty"`

	// PlatformPrefixes mark namespaces belonging to the platform or standard
	// library. References into them are always allowed.
	PlatformPrefixes []string `yaml:"platform_prefixes" json:"platform_prefixes,omitempty"`

	// SharedKernel marks the shared-kernel namespace by substring match.
	// References into it are always allowed, from any module.
	SharedKernel string `yaml:"shared_kernel" json:"shared_kernel,omitempty"`

	// Suppressions filter reported diagnostics by identifier and location.
	Suppressions []Suppression `yaml:"suppressions" json:"suppressions,omitempty"`

	// Severities overrides the default severity per diagnostic identifier.
	Severities map[string]string `yaml:"severities" json:"severities,omitempty"`

	// PartialSuffixes extends the built-in partial suffix mapping. Entries
	// here take precedence over the defaults; order matters, first match wins.
	PartialSuffixes []PartialSuffix `yaml:"partial_suffixes" json:"partial_suffixes,omitempty"`

	WellKnown WellKnownNames `yaml:"well_known" json:"well_known"`
}

// DefaultConfig returns the configuration used when a project carries no
// .medley.yaml.
func DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		ModulesRoot: "internal",
		PlatformPrefixes: []string{
			"golang.org/",
			"google.golang.org/",
			"github.com/",
			"gopkg.in/",
			"System.",
			"Microsoft.",
		},
		SharedKernel: "SharedKernel",
		WellKnown: WellKnownNames{
			ValidatorBase:       "Validation.AbstractValidator",
			RequestHandler:      "Messaging.RequestHandler",
			EntityConfiguration: "Persistence.EntityTypeConfiguration",
		},
	}
}

// Validate catches typos before the config is merged with defaults.
func (c AnalysisConfig) Validate() error {
	for id, sev := range c.Severities {
		switch sev {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			return fmt.Errorf("unknown severity %q for %s", sev, id)
		}
	}
	for _, ps := range c.PartialSuffixes {
		if ps.Partial == "" || ps.Full == "" {
			return fmt.Errorf("partial suffix mapping needs both partial and full forms")
		}
	}
	for _, s := range c.Suppressions {
		if s.Path == "" {
			return fmt.Errorf("suppression for %q needs a path pattern", s.ID)
		}
	}
	return nil
}

// IsPlatform reports whether the namespace belongs to the platform or the
// standard library.
func (c AnalysisConfig) IsPlatform(namespace string) bool {
	for _, p := range c.PlatformPrefixes {
		if strings.HasPrefix(namespace, p) {
			return true
		}
	}
	// A namespace without any separator is a bare standard-library package
	// (e.g. "context" from the Go provider).
	return namespace != "" && !strings.ContainsAny(namespace, "./")
}

// IsSharedKernel reports whether the namespace is part of the shared kernel.
func (c AnalysisConfig) IsSharedKernel(namespace string) bool {
	if c.SharedKernel == "" {
		return false
	}
	return strings.Contains(strings.ToLower(namespace), strings.ToLower(c.SharedKernel))
}
