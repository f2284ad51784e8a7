package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/melodic-software/medley/internal/domain"
)

const fileName = ".medley.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .medley.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .medley.yaml from projectPath. A missing file yields the default
// configuration.
func (l *YAMLLoader) Load(projectPath string) (domain.AnalysisConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.AnalysisConfig{}, err
	}

	var cfg domain.AnalysisConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging so typos in the raw input surface early.
	if err := cfg.Validate(); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of the defaults. Explicit
// non-zero values always win; list-valued fields replace the defaults
// entirely rather than appending, so a project can narrow them.
func mergeConfig(base, override domain.AnalysisConfig) domain.AnalysisConfig {
	result := base

	if override.ModulesRoot != "" {
		result.ModulesRoot = override.ModulesRoot
	}
	if len(override.ExcludePaths) > 0 {
		result.ExcludePaths = override.ExcludePaths
	}
	if len(override.PlatformPrefixes) > 0 {
		result.PlatformPrefixes = override.PlatformPrefixes
	}
	if override.SharedKernel != "" {
		result.SharedKernel = override.SharedKernel
	}
	if len(override.Suppressions) > 0 {
		result.Suppressions = override.Suppressions
	}
	if len(override.Severities) > 0 {
		result.Severities = override.Severities
	}
	// Partial suffixes extend the built-ins instead of replacing them; the
	// rename engine handles precedence.
	result.PartialSuffixes = override.PartialSuffixes

	if override.WellKnown.ValidatorBase != "" {
		result.WellKnown.ValidatorBase = override.WellKnown.ValidatorBase
	}
	if override.WellKnown.RequestHandler != "" {
		result.WellKnown.RequestHandler = override.WellKnown.RequestHandler
	}
	if override.WellKnown.EntityConfiguration != "" {
		result.WellKnown.EntityConfiguration = override.WellKnown.EntityConfiguration
	}

	return result
}
