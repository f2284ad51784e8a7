package provider

import (
	"go/ast"
	"strings"

	"github.com/melodic-software/medley/internal/domain"
)

// collectTypes registers every named type declared in non-test files so later
// resolution can see across files of the same package.
func (m *GoModel) collectTypes() {
	for _, sf := range m.files {
		if sf.test {
			continue
		}
		for _, decl := range sf.file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				info := &typeInfo{
					name:     ts.Name.Name,
					kind:     kindOf(ts),
					file:     sf,
					spec:     ts,
					location: m.position(ts.Name.Pos()),
				}
				m.types[sf.dir+"|"+ts.Name.Name] = info

				sym := domain.SymbolID(sf.namespace + "." + ts.Name.Name)
				m.byFQN[sf.namespace+"."+ts.Name.Name] = sym
				m.byPlace[locKey(info.location)] = sym
			}
		}
	}
}

// resolveTypes runs after collection: base chains, conformance assertions,
// members, and finally the per-unit descriptor lists.
func (m *GoModel) resolveTypes() {
	for _, sf := range m.files {
		if sf.test {
			continue
		}
		m.resolveFile(sf)
	}
	m.expandBaseChains()

	for _, info := range m.types {
		sf := info.file
		descriptor := domain.TypeDescriptor{
			Name:       info.name,
			Namespace:  sf.namespace,
			Unit:       sf.unit,
			Kind:       info.kind,
			BaseChain:  info.directBase,
			Interfaces: info.interfaces,
			Members:    info.members,
			Location:   info.location,
			Symbol:     domain.SymbolID(sf.namespace + "." + info.name),
		}
		m.byUnit[sf.unit] = append(m.byUnit[sf.unit], descriptor)
	}
	for unit := range m.byUnit {
		sortDescriptors(m.byUnit[unit])
	}
}

func (m *GoModel) resolveFile(sf *sourceFile) {
	imports := importMap(sf.file)

	for _, decl := range sf.file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					m.resolveTypeSpec(sf, imports, s)
				case *ast.ValueSpec:
					m.resolveConformance(sf, imports, s)
				}
			}
		case *ast.FuncDecl:
			m.resolveMethod(sf, imports, d)
		}
	}
}

func (m *GoModel) resolveTypeSpec(sf *sourceFile, imports map[string]string, ts *ast.TypeSpec) {
	info := m.types[sf.dir+"|"+ts.Name.Name]
	if info == nil {
		return
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		for _, field := range t.Fields.List {
			ref, ok := m.resolveExpr(sf, imports, field.Type)
			if !ok {
				continue
			}
			if len(field.Names) == 0 {
				// Embedded type: an interface joins the implemented set, a
				// concrete type starts the base chain.
				if m.refersToInterface(ref) {
					info.interfaces = append(info.interfaces, ref)
				} else {
					info.directBase = append(info.directBase, ref)
				}
				continue
			}
			for _, name := range field.Names {
				info.members = append(info.members, domain.MemberDescriptor{
					Name: name.Name,
					Kind: domain.MemberField,
					Type: ref,
				})
			}
		}
	case *ast.InterfaceType:
		for _, method := range t.Methods.List {
			if len(method.Names) == 0 {
				// Embedded interface.
				if ref, ok := m.resolveExpr(sf, imports, method.Type); ok {
					info.interfaces = append(info.interfaces, ref)
				}
				continue
			}
			fn, ok := method.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			for _, name := range method.Names {
				info.members = append(info.members, m.methodMember(sf, imports, name.Name, fn))
			}
		}
	}
}

// resolveConformance records interface conformance declared through the
// "var _ Iface = ..." idiom.
func (m *GoModel) resolveConformance(sf *sourceFile, imports map[string]string, vs *ast.ValueSpec) {
	if vs.Type == nil || len(vs.Names) != 1 || vs.Names[0].Name != "_" || len(vs.Values) != 1 {
		return
	}
	ifaceRef, ok := m.resolveExpr(sf, imports, vs.Type)
	if !ok {
		return
	}
	implName, ok := conformingType(vs.Values[0])
	if !ok {
		return
	}
	info := m.types[sf.dir+"|"+implName]
	if info == nil {
		return
	}
	info.interfaces = append(info.interfaces, ifaceRef)
}

// conformingType extracts the concrete type name T from the value side of a
// conformance assertion: T{}, &T{}, (*T)(nil), T(nil) or new(T).
func conformingType(expr ast.Expr) (string, bool) {
	switch v := expr.(type) {
	case *ast.CompositeLit:
		return identName(v.Type)
	case *ast.UnaryExpr:
		if lit, ok := v.X.(*ast.CompositeLit); ok {
			return identName(lit.Type)
		}
	case *ast.CallExpr:
		switch fun := v.Fun.(type) {
		case *ast.ParenExpr:
			if star, ok := fun.X.(*ast.StarExpr); ok {
				return identName(star.X)
			}
		case *ast.Ident:
			if fun.Name == "new" && len(v.Args) == 1 {
				return identName(v.Args[0])
			}
			return fun.Name, true
		}
	}
	return "", false
}

func identName(expr ast.Expr) (string, bool) {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name, true
	}
	return "", false
}

func (m *GoModel) resolveMethod(sf *sourceFile, imports map[string]string, fn *ast.FuncDecl) {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return
	}
	recvName, ok := receiverTypeName(fn.Recv.List[0].Type)
	if !ok {
		return
	}
	info := m.types[sf.dir+"|"+recvName]
	if info == nil {
		return
	}
	info.members = append(info.members, m.methodMember(sf, imports, fn.Name.Name, fn.Type))
}

func (m *GoModel) methodMember(sf *sourceFile, imports map[string]string, name string, fn *ast.FuncType) domain.MemberDescriptor {
	member := domain.MemberDescriptor{Name: name, Kind: domain.MemberMethod}
	if fn.Results != nil && len(fn.Results.List) > 0 {
		if ref, ok := m.resolveExpr(sf, imports, fn.Results.List[0].Type); ok {
			member.Type = ref
		}
	}
	if fn.Params != nil {
		for _, p := range fn.Params.List {
			ref, ok := m.resolveExpr(sf, imports, p.Type)
			if !ok {
				continue
			}
			n := len(p.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				member.Params = append(member.Params, ref)
			}
		}
	}
	return member
}

func receiverTypeName(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name, true
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return "", false
}

// resolveExpr turns a type expression into a resolved TypeRef. ok=false means
// the expression carries no named type worth tracking (func types, anonymous
// structs, unresolvable idents).
func (m *GoModel) resolveExpr(sf *sourceFile, imports map[string]string, expr ast.Expr) (domain.TypeRef, bool) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return m.resolveExpr(sf, imports, t.X)
	case *ast.ParenExpr:
		return m.resolveExpr(sf, imports, t.X)
	case *ast.ArrayType:
		return m.resolveExpr(sf, imports, t.Elt)
	case *ast.ChanType:
		return m.resolveExpr(sf, imports, t.Value)
	case *ast.Ellipsis:
		return m.resolveExpr(sf, imports, t.Elt)
	case *ast.MapType:
		ref := domain.TypeRef{Name: "map"}
		if k, ok := m.resolveExpr(sf, imports, t.Key); ok {
			ref.TypeArgs = append(ref.TypeArgs, k)
		}
		if v, ok := m.resolveExpr(sf, imports, t.Value); ok {
			ref.TypeArgs = append(ref.TypeArgs, v)
		}
		return ref, true
	case *ast.Ident:
		return m.resolveIdent(sf, t.Name), true
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return domain.TypeRef{}, false
		}
		path, ok := imports[pkg.Name]
		if !ok {
			return domain.TypeRef{}, false
		}
		return m.resolveImported(path, t.Sel.Name), true
	case *ast.IndexExpr:
		base, ok := m.resolveExpr(sf, imports, t.X)
		if !ok {
			return domain.TypeRef{}, false
		}
		base.GenericOrigin = base.Name
		if arg, ok := m.resolveExpr(sf, imports, t.Index); ok {
			base.TypeArgs = append(base.TypeArgs, arg)
		}
		return base, true
	case *ast.IndexListExpr:
		base, ok := m.resolveExpr(sf, imports, t.X)
		if !ok {
			return domain.TypeRef{}, false
		}
		base.GenericOrigin = base.Name
		for _, idx := range t.Indices {
			if arg, ok := m.resolveExpr(sf, imports, idx); ok {
				base.TypeArgs = append(base.TypeArgs, arg)
			}
		}
		return base, true
	}
	return domain.TypeRef{}, false
}

func (m *GoModel) resolveIdent(sf *sourceFile, name string) domain.TypeRef {
	if _, ok := m.types[sf.dir+"|"+name]; ok {
		return domain.TypeRef{
			Name:      name,
			Namespace: sf.namespace,
			Symbol:    domain.SymbolID(sf.namespace + "." + name),
		}
	}
	// Builtin or type parameter: a bare name with no namespace, which the
	// boundary analyzer ignores.
	return domain.TypeRef{Name: name}
}

// resolveImported maps an imported package selector to a TypeRef. In-project
// imports resolve to dotted namespaces; external imports keep their import
// path as the namespace.
func (m *GoModel) resolveImported(importPath, name string) domain.TypeRef {
	if m.modulePath != "" && strings.HasPrefix(importPath, m.modulePath+"/") {
		dir := strings.TrimPrefix(importPath, m.modulePath+"/")
		ns := m.dirNamespace(dir)
		return domain.TypeRef{
			Name:      name,
			Namespace: ns,
			Symbol:    domain.SymbolID(ns + "." + name),
		}
	}
	sym := domain.SymbolID(importPath + "." + name)
	// External symbols become well-known-resolvable once referenced.
	m.byFQN[importPath+"."+name] = sym
	return domain.TypeRef{Name: name, Namespace: importPath, Symbol: sym}
}

// refersToInterface reports whether an in-project reference names an
// interface type. External references default to concrete.
func (m *GoModel) refersToInterface(ref domain.TypeRef) bool {
	for key, info := range m.types {
		if info.name == ref.Name && strings.HasSuffix(key, "|"+ref.Name) &&
			info.file.namespace == ref.Namespace {
			return info.kind == domain.KindInterface
		}
	}
	return false
}

// expandBaseChains follows in-project embedded bases transitively so each
// chain lists every ancestor, nearest first. Direct bases are snapshotted
// first so expansion order cannot double-count already-expanded chains.
func (m *GoModel) expandBaseChains() {
	direct := make(map[*typeInfo][]domain.TypeRef, len(m.types))
	for _, info := range m.types {
		direct[info] = info.directBase
	}
	for _, info := range m.types {
		info.directBase = m.chainFor(direct, info, make(map[string]bool))
	}
}

func (m *GoModel) chainFor(direct map[*typeInfo][]domain.TypeRef, info *typeInfo, visiting map[string]bool) []domain.TypeRef {
	var chain []domain.TypeRef
	for _, base := range direct[info] {
		chain = append(chain, base)
		key := string(base.Symbol)
		if key == "" || visiting[key] {
			continue
		}
		visiting[key] = true
		if parent := m.lookupBySymbol(base.Symbol); parent != nil {
			chain = append(chain, m.chainFor(direct, parent, visiting)...)
		}
	}
	return chain
}

func (m *GoModel) lookupBySymbol(sym domain.SymbolID) *typeInfo {
	for _, info := range m.types {
		if domain.SymbolID(info.file.namespace+"."+info.name) == sym {
			return info
		}
	}
	return nil
}

func kindOf(ts *ast.TypeSpec) domain.TypeKind {
	switch ts.Type.(type) {
	case *ast.StructType:
		return domain.KindStruct
	case *ast.InterfaceType:
		return domain.KindInterface
	default:
		// Defined non-struct types carry value semantics.
		return domain.KindRecord
	}
}

func importMap(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, imp := range f.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		imports[name] = path
	}
	return imports
}
