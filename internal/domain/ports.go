package domain

// WellKnownResolver resolves a canonical symbol by fully qualified name. A
// name that cannot be resolved in the current compilation (for example when
// the defining library is absent) yields ok=false, never an error: rules
// depending on it simply do not fire.
type WellKnownResolver interface {
	ResolveWellKnown(fullyQualifiedName string) (SymbolID, bool)
}

// ProgramModel is the outbound port to the external program model provider.
// Implementations supply structural descriptors for one compilation snapshot
// and carry out symbol renames.
type ProgramModel interface {
	WellKnownResolver

	// CompilationUnits lists the units of the current snapshot.
	CompilationUnits() ([]CompilationUnitDescriptor, error)

	// DeclaredTypes returns fresh descriptors for every type the unit declares.
	DeclaredTypes(unit CompilationUnitDescriptor) ([]TypeDescriptor, error)

	// ResolveDeclaring resolves the symbol declared at a diagnostic's location.
	// ok=false means the location is stale; the caller must abort any rename.
	ResolveDeclaring(loc Location) (SymbolID, bool)

	// References lists every location that refers to the symbol, including its
	// declaration.
	References(symbol SymbolID) ([]Location, error)

	// Rename applies a program-wide rename of the symbol as a single atomic
	// multi-file edit set: either every reference is updated or none is.
	Rename(symbol SymbolID, targetName string) (*RenameResult, error)
}

// DiagnosticSink receives diagnostics as they are produced. Implementations
// must tolerate concurrent calls from independent per-type evaluations.
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// GitInfo exposes repository metadata used to stamp reports.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ConfigLoader loads the analysis configuration for a project.
type ConfigLoader interface {
	Load(projectPath string) (AnalysisConfig, error)
}

// RunHistory persists per-run diagnostic counts.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// RunEntry is one recorded analysis run.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
	Infos      int    `json:"infos"`
}

// BaselineStore persists accepted diagnostic fingerprints so later runs can
// report only new findings.
type BaselineStore interface {
	Save(projectPath string, fingerprints []string) error
	Load(projectPath string) (map[string]bool, error)
}
