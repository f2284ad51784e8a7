// Package provider implements the domain.ProgramModel port for Go projects
// using go/ast. Compilation units are recovered from the conventional
// <modules-root>/<module>/<layer> package layout; descriptors are rebuilt
// from scratch on every Load, one load per analysis pass.
package provider

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/melodic-software/medley/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"testdata":     true,
	"dist":         true,
	"bin":          true,
	".medley":      true,
}

// layerAliases maps conventional directory names to canonical layers.
var layerAliases = map[string]domain.Layer{
	"domain":         domain.LayerDomain,
	"application":    domain.LayerApplication,
	"app":            domain.LayerApplication,
	"core":           domain.LayerApplication,
	"adapters":       domain.LayerInfrastructure,
	"adapter":        domain.LayerInfrastructure,
	"infrastructure": domain.LayerInfrastructure,
	"infra":          domain.LayerInfrastructure,
	"contracts":      domain.LayerContracts,
	"api":            domain.LayerContracts,
}

// sourceFile is one parsed Go file together with everything needed to edit it
// later.
type sourceFile struct {
	relPath   string
	absPath   string
	dir       string // slash-separated directory relative to root; package key
	namespace string
	unit      string // unit identity the file belongs to
	test      bool
	file      *ast.File
	src       []byte
}

// typeInfo is the intermediate record for one declared type, kept so base
// chains and conformance assertions can be resolved across files of the same
// package.
type typeInfo struct {
	name       string
	kind       domain.TypeKind
	file       *sourceFile
	spec       *ast.TypeSpec
	directBase []domain.TypeRef
	interfaces []domain.TypeRef
	members    []domain.MemberDescriptor
	location   domain.Location
}

// GoModel is a program model for one Go project snapshot. Load parses the
// whole tree once; afterwards the model is read-only except for Rename, which
// edits source files and marks the snapshot stale.
type GoModel struct {
	root        string
	modulePath  string
	modulesRoot string
	exclude     map[string]bool

	fset    *token.FileSet
	files   []*sourceFile
	units   []domain.CompilationUnitDescriptor
	byUnit  map[string][]domain.TypeDescriptor
	types   map[string]*typeInfo         // "dir|name"
	byFQN   map[string]domain.SymbolID   // dotted namespace.Name and importpath.Name
	byPlace map[string]domain.SymbolID   // "file:line" of the declaration
	pkgName map[string]string            // dir -> package name
	stale   bool
}

// New creates an unloaded model rooted at projectPath.
func New(projectPath string, cfg domain.AnalysisConfig) *GoModel {
	root := cfg.ModulesRoot
	if root == "" {
		root = "internal"
	}
	exclude := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		exclude[strings.TrimSuffix(p, "/")] = true
	}
	return &GoModel{
		root:        projectPath,
		modulesRoot: root,
		exclude:     exclude,
	}
}

// Load parses the project and builds all descriptors for this pass. Files
// that fail to parse are skipped, not fatal.
func (m *GoModel) Load() error {
	absRoot, err := filepath.Abs(m.root)
	if err != nil {
		return err
	}
	m.root = absRoot
	m.modulePath = readModulePath(absRoot)

	m.fset = token.NewFileSet()
	m.files = nil
	m.types = make(map[string]*typeInfo)
	m.byFQN = make(map[string]domain.SymbolID)
	m.byPlace = make(map[string]domain.SymbolID)
	m.byUnit = make(map[string][]domain.TypeDescriptor)
	m.pkgName = make(map[string]string)
	m.units = nil
	m.stale = false

	if err := m.parseTree(); err != nil {
		return err
	}
	m.collectTypes()
	m.resolveTypes()
	m.buildUnits()
	return nil
}

func (m *GoModel) parseTree() error {
	return filepath.WalkDir(m.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || m.exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return nil // unreadable file is out of scope, not fatal
		}
		parsed, err := goparser.ParseFile(m.fset, path, src, goparser.ParseComments)
		if err != nil {
			return nil // unparseable file is out of scope, not fatal
		}

		relPath, _ := filepath.Rel(m.root, path)
		relPath = filepath.ToSlash(relPath)
		dir := filepath.ToSlash(filepath.Dir(relPath))
		if dir == "." {
			dir = ""
		}

		sf := &sourceFile{
			relPath: relPath,
			absPath: path,
			dir:     dir,
			test:    strings.HasSuffix(d.Name(), "_test.go"),
			file:    parsed,
			src:     src,
		}
		sf.namespace, sf.unit = m.identify(dir)
		m.files = append(m.files, sf)
		if !sf.test {
			m.pkgName[dir] = parsed.Name.Name
		}
		return nil
	})
}

// identify derives (namespace, unit identity) from a directory. Directories
// matching <modulesRoot>/<module>/<layer> become modular units with a
// "<Module>.<Layer>" identity; anything else keeps its camelized path, which
// the boundary analyzer treats as outside the modular surface.
func (m *GoModel) identify(dir string) (namespace, unit string) {
	if dir == "" {
		return "Root", "Root"
	}
	parts := strings.Split(dir, "/")
	if parts[0] == m.modulesRoot && len(parts) >= 3 {
		if layer, ok := layerAliases[strings.ToLower(parts[2])]; ok {
			module := camelize(parts[1])
			unit = module + "." + string(layer)
			segments := append([]string{module, string(layer)}, camelizeAll(parts[3:])...)
			return strings.Join(segments, "."), unit
		}
	}
	ns := strings.Join(camelizeAll(parts), ".")
	return ns, ns
}

// dirNamespace converts an in-project package directory to its namespace.
func (m *GoModel) dirNamespace(dir string) string {
	ns, _ := m.identify(dir)
	return ns
}

func (m *GoModel) buildUnits() {
	byIdentity := make(map[string]string) // identity -> shortest dir
	for _, sf := range m.files {
		if sf.test {
			continue
		}
		if cur, ok := byIdentity[sf.unit]; !ok || len(sf.dir) < len(cur) {
			byIdentity[sf.unit] = sf.dir
		}
	}
	for identity, dir := range byIdentity {
		m.units = append(m.units, domain.CompilationUnitDescriptor{Identity: identity, Dir: dir})
	}
	sort.Slice(m.units, func(i, j int) bool { return m.units[i].Identity < m.units[j].Identity })
}

// CompilationUnits implements domain.ProgramModel.
func (m *GoModel) CompilationUnits() ([]domain.CompilationUnitDescriptor, error) {
	if m.fset == nil {
		return nil, fmt.Errorf("model not loaded")
	}
	if m.stale {
		return nil, fmt.Errorf("model is stale after a rename; reload before analyzing")
	}
	return m.units, nil
}

// DeclaredTypes implements domain.ProgramModel.
func (m *GoModel) DeclaredTypes(unit domain.CompilationUnitDescriptor) ([]domain.TypeDescriptor, error) {
	if m.fset == nil {
		return nil, fmt.Errorf("model not loaded")
	}
	return m.byUnit[unit.Identity], nil
}

// ResolveWellKnown implements domain.WellKnownResolver. Symbols are known
// when they are declared in the project or referenced through an import.
func (m *GoModel) ResolveWellKnown(fqn string) (domain.SymbolID, bool) {
	sym, ok := m.byFQN[fqn]
	return sym, ok
}

// ResolveDeclaring implements domain.ProgramModel.
func (m *GoModel) ResolveDeclaring(loc domain.Location) (domain.SymbolID, bool) {
	sym, ok := m.byPlace[fmt.Sprintf("%s:%d", filepath.ToSlash(loc.File), loc.Line)]
	return sym, ok
}

// readModulePath extracts the module path from go.mod so in-project imports
// can be mapped back to directories. Missing go.mod means no imports resolve
// as in-project, which degrades to "no opinion" downstream.
func readModulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// position converts a token position to a root-relative location.
func (m *GoModel) position(pos token.Pos) domain.Location {
	p := m.fset.Position(pos)
	rel, err := filepath.Rel(m.root, p.Filename)
	if err != nil {
		rel = p.Filename
	}
	return domain.Location{File: filepath.ToSlash(rel), Line: p.Line, Column: p.Column}
}

func locKey(loc domain.Location) string {
	return fmt.Sprintf("%s:%d", filepath.ToSlash(loc.File), loc.Line)
}

func sortDescriptors(types []domain.TypeDescriptor) {
	sort.Slice(types, func(i, j int) bool {
		if types[i].Namespace != types[j].Namespace {
			return types[i].Namespace < types[j].Namespace
		}
		return types[i].Name < types[j].Name
	})
}

// camelize turns a directory segment into a namespace segment:
// "orders" -> "Orders", "shared_kernel" -> "SharedKernel".
func camelize(segment string) string {
	pieces := strings.FieldsFunc(segment, func(r rune) bool { return r == '_' || r == '-' })
	var b strings.Builder
	for _, p := range pieces {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return segment
	}
	return b.String()
}

func camelizeAll(segments []string) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = camelize(s)
	}
	return out
}
