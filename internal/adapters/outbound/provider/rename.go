package provider

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"sort"
	"strings"

	"github.com/melodic-software/medley/internal/domain"
)

var (
	// ErrUnknownSymbol means the symbol does not exist in this snapshot.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrNameCollision means the target name is already declared in the
	// symbol's package. The rename is rejected before any edit.
	ErrNameCollision = errors.New("target name already declared in package")
)

// edit is one pending replacement, expressed in byte offsets so edits apply
// independently of earlier edits on later lines.
type edit struct {
	file   *sourceFile
	offset int
	length int
	loc    domain.Location
}

// References implements domain.ProgramModel. Occurrences are gathered
// syntactically: unqualified identifiers within the declaring package and
// package-qualified selectors everywhere else. Test files are included so a
// rename never strands them.
func (m *GoModel) References(symbol domain.SymbolID) ([]domain.Location, error) {
	edits, err := m.collectEdits(symbol)
	if err != nil {
		return nil, err
	}
	locs := make([]domain.Location, len(edits))
	for i, e := range edits {
		locs[i] = e.loc
	}
	return locs, nil
}

// Rename implements domain.ProgramModel. The full edit set is computed before
// any file is touched; writes either all land or are rolled back, so a failed
// rename leaves every file exactly as it was.
func (m *GoModel) Rename(symbol domain.SymbolID, targetName string) (*domain.RenameResult, error) {
	if !token.IsIdentifier(targetName) {
		return nil, fmt.Errorf("invalid identifier %q", targetName)
	}

	info := m.lookupBySymbol(symbol)
	if info == nil {
		return nil, ErrUnknownSymbol
	}
	if m.declaredInPackage(info.file.dir, targetName) {
		return nil, fmt.Errorf("%w: %s", ErrNameCollision, targetName)
	}

	edits, err := m.collectEdits(symbol)
	if err != nil {
		return nil, err
	}

	byFile := make(map[*sourceFile][]edit)
	for _, e := range edits {
		byFile[e.file] = append(byFile[e.file], e)
	}

	// Build every new file content up front; only then start writing.
	type pending struct {
		sf       *sourceFile
		original []byte
		updated  []byte
	}
	var writes []pending
	for sf, fileEdits := range byFile {
		sort.Slice(fileEdits, func(i, j int) bool { return fileEdits[i].offset > fileEdits[j].offset })
		updated := append([]byte(nil), sf.src...)
		for _, e := range fileEdits {
			updated = append(updated[:e.offset], append([]byte(targetName), updated[e.offset+e.length:]...)...)
		}
		writes = append(writes, pending{sf: sf, original: sf.src, updated: updated})
	}
	sort.Slice(writes, func(i, j int) bool { return writes[i].sf.relPath < writes[j].sf.relPath })

	var written []pending
	for _, w := range writes {
		if err := os.WriteFile(w.sf.absPath, w.updated, 0644); err != nil {
			for _, undo := range written {
				os.WriteFile(undo.sf.absPath, undo.original, 0644)
			}
			return nil, fmt.Errorf("writing %s (rename rolled back): %w", w.sf.relPath, err)
		}
		written = append(written, w)
	}

	m.stale = true

	locs := make([]domain.Location, len(edits))
	for i, e := range edits {
		locs[i] = e.loc
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].File != locs[j].File {
			return locs[i].File < locs[j].File
		}
		return locs[i].Line < locs[j].Line
	})
	return &domain.RenameResult{Applied: true, Locations: locs}, nil
}

func (m *GoModel) collectEdits(symbol domain.SymbolID) ([]edit, error) {
	info := m.lookupBySymbol(symbol)
	if info == nil {
		return nil, ErrUnknownSymbol
	}
	name := info.name
	dir := info.file.dir
	pkg := m.pkgName[dir]

	var edits []edit
	for _, sf := range m.files {
		// External test packages (pkg_test) live in the same directory but
		// reference the symbol through a qualified selector.
		if sf.dir == dir && sf.file.Name.Name == pkg {
			edits = append(edits, m.unqualifiedUses(sf, name)...)
			continue
		}
		edits = append(edits, m.qualifiedUses(sf, dir, pkg, name)...)
	}
	return edits, nil
}

// unqualifiedUses finds identifiers named name inside the declaring package,
// skipping positions where an identical spelling declares something else
// (field names, value names, function names, selector fields, labels).
func (m *GoModel) unqualifiedUses(sf *sourceFile, name string) []edit {
	excluded := make(map[*ast.Ident]bool)
	ast.Inspect(sf.file, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.SelectorExpr:
			excluded[v.Sel] = true
		case *ast.Field:
			for _, id := range v.Names {
				excluded[id] = true
			}
		case *ast.ValueSpec:
			for _, id := range v.Names {
				excluded[id] = true
			}
		case *ast.FuncDecl:
			excluded[v.Name] = true
		case *ast.ImportSpec:
			if v.Name != nil {
				excluded[v.Name] = true
			}
		case *ast.LabeledStmt:
			excluded[v.Label] = true
		case *ast.KeyValueExpr:
			if id, ok := v.Key.(*ast.Ident); ok {
				excluded[id] = true
			}
		}
		return true
	})

	var edits []edit
	ast.Inspect(sf.file, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok || id.Name != name || excluded[id] {
			return true
		}
		edits = append(edits, m.editAt(sf, id))
		return true
	})
	return edits
}

// qualifiedUses finds pkg.Name selectors in files that import the declaring
// package.
func (m *GoModel) qualifiedUses(sf *sourceFile, dir, pkg, name string) []edit {
	if m.modulePath == "" {
		return nil
	}
	importPath := m.modulePath + "/" + dir

	local := ""
	for _, imp := range sf.file.Imports {
		if strings.Trim(imp.Path.Value, `"`) != importPath {
			continue
		}
		local = pkg
		if imp.Name != nil {
			local = imp.Name.Name
		}
	}
	if local == "" || local == "_" {
		return nil
	}

	var edits []edit
	ast.Inspect(sf.file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != name {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); ok && x.Name == local {
			edits = append(edits, m.editAt(sf, sel.Sel))
		}
		return true
	})
	return edits
}

func (m *GoModel) editAt(sf *sourceFile, id *ast.Ident) edit {
	p := m.fset.Position(id.Pos())
	return edit{
		file:   sf,
		offset: p.Offset,
		length: len(id.Name),
		loc:    domain.Location{File: sf.relPath, Line: p.Line, Column: p.Column},
	}
}

// declaredInPackage reports whether any package-scope declaration in dir
// already uses the name.
func (m *GoModel) declaredInPackage(dir, name string) bool {
	for _, sf := range m.files {
		if sf.dir != dir || sf.test {
			continue
		}
		for _, decl := range sf.file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name.Name == name {
					return true
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						if s.Name.Name == name {
							return true
						}
					case *ast.ValueSpec:
						for _, id := range s.Names {
							if id.Name == name {
								return true
							}
						}
					}
				}
			}
		}
	}
	return false
}
