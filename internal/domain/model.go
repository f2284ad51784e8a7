package domain

import "time"

// SymbolID is the canonical identity a program model provider assigns to a
// declared symbol. Two distinct declarations never share a SymbolID, even when
// their simple names collide, so identity comparison is plain equality.
type SymbolID string

// TypeKind classifies a declared type.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindRecord    TypeKind = "record"
	KindStruct    TypeKind = "struct"
)

// Location points at a declaration or reference in source.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// TypeRef is a resolved reference to a named type, including generic
// instantiation details when the reference instantiates a generic type.
type TypeRef struct {
	Name          string    `json:"name"`
	Namespace     string    `json:"namespace,omitempty"`
	GenericOrigin string    `json:"generic_origin,omitempty"`
	TypeArgs      []TypeRef `json:"type_args,omitempty"`
	Symbol        SymbolID  `json:"symbol,omitempty"`
}

// MemberKind classifies a type member.
type MemberKind string

const (
	MemberField    MemberKind = "field"
	MemberProperty MemberKind = "property"
	MemberMethod   MemberKind = "method"
)

// MemberDescriptor describes a single member of a type. For methods, Type is
// the resolved return type (zero value when the method returns nothing) and
// Params holds the resolved parameter types.
type MemberDescriptor struct {
	Name   string     `json:"name"`
	Kind   MemberKind `json:"kind"`
	Type   TypeRef    `json:"type"`
	Params []TypeRef  `json:"params,omitempty"`
}

// TypeDescriptor is the structural model of one declared type. Descriptors are
// constructed fresh per analysis pass by the program model provider and are
// immutable for the duration of the pass.
type TypeDescriptor struct {
	Name       string             `json:"name"`
	Namespace  string             `json:"namespace"`
	Unit       string             `json:"unit"`
	Kind       TypeKind           `json:"kind"`
	Abstract   bool               `json:"abstract,omitempty"`
	BaseChain  []TypeRef          `json:"base_chain,omitempty"` // nearest ancestor first
	Interfaces []TypeRef          `json:"interfaces,omitempty"`
	Members    []MemberDescriptor `json:"members,omitempty"`
	Location   Location           `json:"location"`
	Symbol     SymbolID           `json:"symbol"`
}

// CompilationUnitDescriptor is one deployable unit of types. Identity is the
// raw dotted identity string (conventionally "<Module>.<Layer>" or
// "<Root>.Modules.<Module>.<Layer>") from which a ModuleIdentity is derived.
type CompilationUnitDescriptor struct {
	Identity string `json:"identity"`
	Dir      string `json:"dir,omitempty"`
}

// Diagnostic categories.
const (
	CategoryNaming     = "naming"
	CategoryBoundaries = "boundaries"
)

// Severity levels, ordered from most to least severe.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// FixMetadata carries what the rename engine needs to repair a naming
// diagnostic.
type FixMetadata struct {
	RequiredSuffix string `json:"required_suffix"`
}

// Diagnostic is a single detected violation. Diagnostics are recomputed each
// pass and carry no identity across passes.
type Diagnostic struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Args     []string     `json:"args,omitempty"`
	TypeName string       `json:"type_name,omitempty"`
	Location Location     `json:"location"`
	Fix      *FixMetadata `json:"fix,omitempty"`
}

// Fixable reports whether the diagnostic carries rename fix metadata.
func (d Diagnostic) Fixable() bool { return d.Fix != nil }

// RenamePlan is the computed repair for one naming diagnostic. Plans are built
// on demand when a fix is invoked, never speculatively.
type RenamePlan struct {
	Symbol      SymbolID   `json:"symbol"`
	CurrentName string     `json:"current_name"`
	TargetName  string     `json:"target_name"`
	Locations   []Location `json:"locations"`
}

// RenameResult reports an applied rename transaction.
type RenameResult struct {
	Applied   bool       `json:"applied"`
	Locations []Location `json:"locations,omitempty"`
}

// Report is the outcome of one analysis pass.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     Summary      `json:"summary"`
	Timestamp   time.Time    `json:"timestamp"`
	CommitHash  string       `json:"commit_hash,omitempty"`
}

// Summary holds per-severity and per-rule counts for a report.
type Summary struct {
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
	Infos    int            `json:"infos"`
	ByRule   map[string]int `json:"by_rule,omitempty"`
}

// Summarize recomputes the summary from the report's diagnostics.
func (r *Report) Summarize() {
	s := Summary{ByRule: make(map[string]int)}
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
		s.ByRule[d.ID]++
	}
	r.Summary = s
}
