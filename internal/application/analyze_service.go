package application

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"github.com/melodic-software/medley/internal/domain"
	"github.com/melodic-software/medley/internal/domain/boundary"
	"github.com/melodic-software/medley/internal/domain/rules"
)

// AnalyzeService orchestrates one analysis pass:
// list units -> fetch descriptors -> evaluate suffix rules and boundary
// checks per type -> merge -> suppress -> summarize.
type AnalyzeService struct {
	model   domain.ProgramModel
	cfg     domain.AnalysisConfig
	workers int
}

func NewAnalyzeService(model domain.ProgramModel, cfg domain.AnalysisConfig) *AnalyzeService {
	return &AnalyzeService{
		model:   model,
		cfg:     cfg,
		workers: runtime.NumCPU(),
	}
}

// typeJob pairs a declared type with its unit's pre-parsed module identity.
// Every job is independent of every other, so jobs fan out across workers
// with no shared mutable state.
type typeJob struct {
	descriptor domain.TypeDescriptor
	module     domain.ModuleIdentity
	modular    bool
}

// Analyze runs the full pass and returns the report. Types that cannot be
// evaluated degrade to "no opinion"; the pass itself only fails when the
// provider cannot supply the model at all.
func (s *AnalyzeService) Analyze() (*domain.Report, error) {
	units, err := s.model.CompilationUnits()
	if err != nil {
		return nil, fmt.Errorf("listing compilation units: %w", err)
	}

	var jobs []typeJob
	for _, unit := range units {
		types, err := s.model.DeclaredTypes(unit)
		if err != nil {
			return nil, fmt.Errorf("loading types for %s: %w", unit.Identity, err)
		}
		module, modular := domain.ParseModuleIdentity(unit.Identity)
		for _, t := range types {
			jobs = append(jobs, typeJob{descriptor: t, module: module, modular: modular})
		}
	}

	diags := s.evaluate(jobs)
	diags = s.applySeverities(diags)
	diags, err = s.suppress(diags)
	if err != nil {
		return nil, err
	}
	sortDiagnostics(diags)

	report := &domain.Report{Diagnostics: diags, Timestamp: time.Now()}
	report.Summarize()
	return report, nil
}

// evaluate fans the jobs out over a worker pool. Each worker appends into its
// own buffer; buffers are merged once all workers are done, so no
// synchronization is needed on the diagnostics themselves.
func (s *AnalyzeService) evaluate(jobs []typeJob) []domain.Diagnostic {
	ruleset := rules.All()
	env := &rules.Env{
		Resolver:  newMemoResolver(s.model),
		WellKnown: s.cfg.WellKnown,
	}
	analyzer := boundary.New(s.cfg)

	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return nil
	}

	jobCh := make(chan typeJob)
	buffers := make([][]domain.Diagnostic, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(buf *[]domain.Diagnostic) {
			defer wg.Done()
			for job := range jobCh {
				*buf = append(*buf, rules.Evaluate(env, job.descriptor, ruleset)...)
				if job.modular {
					*buf = append(*buf, analyzer.AnalyzeType(job.module, job.descriptor)...)
				}
			}
		}(&buffers[w])
	}
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	var diags []domain.Diagnostic
	for _, buf := range buffers {
		diags = append(diags, buf...)
	}
	return diags
}

func (s *AnalyzeService) applySeverities(diags []domain.Diagnostic) []domain.Diagnostic {
	if len(s.cfg.Severities) == 0 {
		return diags
	}
	for i, d := range diags {
		if sev, ok := s.cfg.Severities[d.ID]; ok {
			diags[i].Severity = sev
		}
	}
	return diags
}

// suppress drops diagnostics matched by the configured suppression rules.
// Patterns are globs over the slash-normalized file path.
func (s *AnalyzeService) suppress(diags []domain.Diagnostic) ([]domain.Diagnostic, error) {
	if len(s.cfg.Suppressions) == 0 {
		return diags, nil
	}

	type compiled struct {
		id      string
		pattern glob.Glob
	}
	matchers := make([]compiled, 0, len(s.cfg.Suppressions))
	for _, sup := range s.cfg.Suppressions {
		g, err := glob.Compile(sup.Path, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling suppression pattern %q: %w", sup.Path, err)
		}
		matchers = append(matchers, compiled{id: sup.ID, pattern: g})
	}

	kept := diags[:0]
	for _, d := range diags {
		path := filepath.ToSlash(d.Location.File)
		suppressed := false
		for _, m := range matchers {
			if m.id != "" && m.id != d.ID {
				continue
			}
			if m.pattern.Match(path) {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, d)
		}
	}
	return kept, nil
}

// sortDiagnostics orders the merged per-worker buffers deterministically for
// reporting: by file, then line, then identifier.
func sortDiagnostics(diags []domain.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		return a.ID < b.ID
	})
}

// memoResolver caches well-known symbol lookups for the duration of a pass.
// Negative results are cached too: an absent library stays absent within one
// snapshot.
type memoResolver struct {
	inner domain.WellKnownResolver
	mu    sync.Mutex
	memo  map[string]memoEntry
}

type memoEntry struct {
	sym domain.SymbolID
	ok  bool
}

func newMemoResolver(inner domain.WellKnownResolver) *memoResolver {
	return &memoResolver{inner: inner, memo: make(map[string]memoEntry)}
}

func (r *memoResolver) ResolveWellKnown(fqn string) (domain.SymbolID, bool) {
	r.mu.Lock()
	if e, ok := r.memo[fqn]; ok {
		r.mu.Unlock()
		return e.sym, e.ok
	}
	r.mu.Unlock()

	sym, ok := r.inner.ResolveWellKnown(fqn)

	r.mu.Lock()
	r.memo[fqn] = memoEntry{sym: sym, ok: ok}
	r.mu.Unlock()
	return sym, ok
}

// Fingerprint derives the stable baseline key for a diagnostic.
func Fingerprint(d domain.Diagnostic) string {
	return strings.Join([]string{d.ID, filepath.ToSlash(d.Location.File), d.TypeName}, "|")
}

// NewFindings filters a report down to diagnostics absent from the baseline.
func NewFindings(diags []domain.Diagnostic, baseline map[string]bool) []domain.Diagnostic {
	if len(baseline) == 0 {
		return diags
	}
	var fresh []domain.Diagnostic
	for _, d := range diags {
		if !baseline[Fingerprint(d)] {
			fresh = append(fresh, d)
		}
	}
	return fresh
}
