package application

import (
	"errors"
	"fmt"
	"sync"

	"github.com/melodic-software/medley/internal/domain"
)

var (
	// ErrNotFixable means the diagnostic carries no rename fix metadata.
	ErrNotFixable = errors.New("diagnostic has no fix metadata")

	// ErrStaleLocation means the symbol at the diagnostic's location no longer
	// resolves, typically after concurrent edits. Nothing was modified.
	ErrStaleLocation = errors.New("symbol at diagnostic location no longer resolves")
)

// RenameService is the smart rename engine. It computes target names through
// the partial-suffix mapping and requests program-wide renames from the
// provider. Rename transactions are serialized: two interleaved multi-file
// renames could leave the program inconsistent, and renames are rare enough
// that one global lock costs nothing.
type RenameService struct {
	model    domain.ProgramModel
	mappings []domain.PartialSuffix

	mu sync.Mutex // serializes rename transactions
}

func NewRenameService(model domain.ProgramModel, cfg domain.AnalysisConfig) *RenameService {
	return &RenameService{
		model:    model,
		mappings: domain.MergePartialSuffixes(cfg.PartialSuffixes),
	}
}

// Plan computes the rename for one naming diagnostic: the target name via
// partial-suffix replacement or append, plus every affected location. Plans
// are computed on demand and apply nothing.
func (s *RenameService) Plan(d domain.Diagnostic) (*domain.RenamePlan, error) {
	if d.Fix == nil {
		return nil, ErrNotFixable
	}

	sym, ok := s.model.ResolveDeclaring(d.Location)
	if !ok {
		return nil, ErrStaleLocation
	}

	locs, err := s.model.References(sym)
	if err != nil {
		return nil, fmt.Errorf("locating references of %q: %w", d.TypeName, err)
	}

	return &domain.RenamePlan{
		Symbol:      sym,
		CurrentName: d.TypeName,
		TargetName:  domain.TargetName(d.TypeName, d.Fix.RequiredSuffix, s.mappings),
		Locations:   locs,
	}, nil
}

// Apply executes a rename plan as a single atomic transaction. On any
// failure, including a target-name collision, zero edits are applied.
func (s *RenameService) Apply(plan *domain.RenamePlan) (*domain.RenameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.model.Rename(plan.Symbol, plan.TargetName)
	if err != nil {
		return nil, fmt.Errorf("renaming %q to %q: %w", plan.CurrentName, plan.TargetName, err)
	}
	return result, nil
}

// Fix plans and applies the rename for one diagnostic.
func (s *RenameService) Fix(d domain.Diagnostic) (*domain.RenamePlan, *domain.RenameResult, error) {
	plan, err := s.Plan(d)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.Apply(plan)
	if err != nil {
		return plan, nil, err
	}
	return plan, result, nil
}
