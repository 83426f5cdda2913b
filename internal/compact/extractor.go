package compact

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"fastcraft/internal/fcerrors"
)

// Extractor parses Python source and produces the ordered Declaration
// sequence for one file. Only module- and class-scope declarations
// participate; nested/local definitions are skipped.
type Extractor struct {
	language *sitter.Language
}

// NewExtractor creates an extractor backed by the Python grammar.
func NewExtractor() *Extractor {
	return &Extractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

// Extract parses source and returns its declarations in source order.
// A file whose tree contains syntax errors fails with a parse error;
// the caller skips it and continues with the remaining files.
func (e *Extractor) Extract(source []byte) ([]Declaration, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fcerrors.Wrap(fcerrors.ErrParse, "parser produced no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fcerrors.Wrap(fcerrors.ErrParse, "syntax error")
	}

	var decls []Declaration
	sawStatement := false
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() == "comment" {
			continue
		}
		first := !sawStatement
		sawStatement = true
		switch stmt.Kind() {
		case "expression_statement":
			if first {
				if doc, ok := docstringOf(stmt, source); ok {
					// An empty docstring earns no line.
					if doc != "" {
						decls = append(decls, Declaration{Kind: KindModuleDoc, Name: doc})
					}
					continue
				}
			}
			if assign := childOfKind(stmt, "assignment"); assign != nil {
				if d, ok := e.extractConstant(assign, source); ok {
					decls = append(decls, d)
				}
			}
		case "import_statement", "import_from_statement":
			decls = append(decls, e.extractImports(stmt, source)...)
		case "function_definition":
			decls = append(decls, e.extractFunction(stmt, source, KindFunction))
		case "class_definition":
			decls = append(decls, e.extractClass(stmt, source)...)
		case "decorated_definition":
			inner := stmt.ChildByFieldName("definition")
			if inner == nil {
				continue
			}
			switch inner.Kind() {
			case "function_definition":
				decls = append(decls, e.extractFunction(inner, source, KindFunction))
			case "class_definition":
				decls = append(decls, e.extractClass(inner, source)...)
			}
		}
	}

	return decls, nil
}

// extractImports records one Import declaration per imported module.
// Only the dotted module path survives; names brought in by a
// from-import are elided.
func (e *Extractor) extractImports(node *sitter.Node, source []byte) []Declaration {
	var decls []Declaration

	if node.Kind() == "import_from_statement" {
		if mod := node.ChildByFieldName("module_name"); mod != nil {
			decls = append(decls, Declaration{Kind: KindImport, Name: nodeText(mod, source)})
		}
		return decls
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "dotted_name":
			decls = append(decls, Declaration{Kind: KindImport, Name: nodeText(child, source)})
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				decls = append(decls, Declaration{Kind: KindImport, Name: nodeText(name, source)})
			}
		}
	}
	return decls
}

// extractConstant records module-scope assignments to upper-case
// identifiers. Lower-case module variables are not part of the notation.
func (e *Extractor) extractConstant(assign *sitter.Node, source []byte) (Declaration, bool) {
	left := assign.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return Declaration{}, false
	}
	name := nodeText(left, source)
	if !isConstantName(name) {
		return Declaration{}, false
	}
	return Declaration{Kind: KindConstant, Name: name}, true
}

// extractFunction builds a function-like declaration. Parameter order
// is preserved exactly; default values are dropped, annotations kept.
func (e *Extractor) extractFunction(node *sitter.Node, source []byte, kind DeclKind) Declaration {
	d := Declaration{Kind: kind}
	if name := node.ChildByFieldName("name"); name != nil {
		d.Name = nodeText(name, source)
	}
	if kind != KindFunction && isDunderName(d.Name) {
		d.Kind = KindDunder
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		d.Params = e.extractParams(params, source)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		d.Returns = normalizeType(nodeText(ret, source))
	}
	return d
}

// extractParams walks a parameters node. Splat parameters keep their
// * / ** prefix as part of the name; bare separators (/ and *) are not
// parameters and are skipped.
func (e *Extractor) extractParams(params *sitter.Node, source []byte) []Param {
	var out []Param
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			out = append(out, Param{Name: nodeText(child, source)})
		case "typed_parameter":
			p := Param{}
			if inner := child.NamedChild(0); inner != nil {
				p.Name = nodeText(inner, source)
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				p.Type = normalizeType(nodeText(typ, source))
			}
			out = append(out, p)
		case "default_parameter":
			if name := child.ChildByFieldName("name"); name != nil {
				out = append(out, Param{Name: nodeText(name, source)})
			}
		case "typed_default_parameter":
			p := Param{}
			if name := child.ChildByFieldName("name"); name != nil {
				p.Name = nodeText(name, source)
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				p.Type = normalizeType(nodeText(typ, source))
			}
			out = append(out, p)
		case "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, Param{Name: nodeText(child, source)})
		}
	}
	return out
}

// extractClass emits either one Record declaration or a Class
// declaration followed by its method declarations in body order.
//
// Record boundary: a class is record-like when every body statement is
// an annotated field assignment, a docstring, or pass, and at least
// one field exists. Any method at all, including __post_init__, makes
// it a general class. Decorators do not participate in the decision.
func (e *Extractor) extractClass(node *sitter.Node, source []byte) []Declaration {
	name := ""
	if n := node.ChildByFieldName("name"); n != nil {
		name = nodeText(n, source)
	}

	var bases []string
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			arg := supers.NamedChild(i)
			// metaclass= and other keyword arguments are not base types
			if arg.Kind() == "keyword_argument" {
				continue
			}
			bases = append(bases, normalizeType(nodeText(arg, source)))
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return []Declaration{{Kind: KindClass, Name: name, Bases: bases}}
	}

	var fields []Field
	var methods []*sitter.Node
	recordLike := true

	sawStmt := false
	for i := uint(0); i < body.NamedChildCount(); i++ {
		stmt := body.NamedChild(i)
		if stmt.Kind() == "comment" {
			continue
		}
		first := !sawStmt
		sawStmt = true
		switch stmt.Kind() {
		case "expression_statement":
			if first {
				if _, ok := docstringOf(stmt, source); ok {
					continue
				}
			}
			if f, ok := annotatedField(stmt, source); ok {
				fields = append(fields, f)
				continue
			}
			recordLike = false
		case "pass_statement":
			// fine either way
		case "function_definition":
			recordLike = false
			methods = append(methods, stmt)
		case "decorated_definition":
			recordLike = false
			if inner := stmt.ChildByFieldName("definition"); inner != nil && inner.Kind() == "function_definition" {
				methods = append(methods, inner)
			}
		default:
			recordLike = false
		}
	}

	if recordLike && len(fields) > 0 {
		return []Declaration{{Kind: KindRecord, Name: name, Fields: fields}}
	}

	decls := []Declaration{{Kind: KindClass, Name: name, Bases: bases}}
	for _, m := range methods {
		decls = append(decls, e.extractFunction(m, source, KindMethod))
	}
	return decls
}

// annotatedField matches `name: type` or `name: type = default` at
// class scope.
func annotatedField(stmt *sitter.Node, source []byte) (Field, bool) {
	assign := childOfKind(stmt, "assignment")
	if assign == nil {
		return Field{}, false
	}
	left := assign.ChildByFieldName("left")
	typ := assign.ChildByFieldName("type")
	if left == nil || typ == nil || left.Kind() != "identifier" {
		return Field{}, false
	}
	return Field{
		Name: nodeText(left, source),
		Type: normalizeType(nodeText(typ, source)),
	}, true
}

// docstringOf returns the first line of a bare string literal wrapped
// in an expression statement. The text may be empty; callers decide
// whether an empty docstring is worth a declaration.
func docstringOf(stmt *sitter.Node, source []byte) (string, bool) {
	str := childOfKind(stmt, "string")
	if str == nil || stmt.NamedChildCount() != 1 {
		return "", false
	}
	text := nodeText(str, source)
	// r"..." / b"..." / f"..." prefixes sit outside the quotes.
	text = strings.TrimLeft(text, "rRbBuUfF")
	text = strings.Trim(text, `"'`)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text), true
}

// childOfKind finds the first named child with the given kind.
func childOfKind(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// normalizeType strips whitespace from an annotation so rendered lines
// stay dense ("Dict[str, int]" -> "Dict[str,int]").
func normalizeType(t string) string {
	return strings.Join(strings.Fields(t), "")
}

// isConstantName checks the ALL_CAPS Python constant convention.
func isConstantName(name string) bool {
	if len(name) == 0 {
		return false
	}
	hasUpper := false
	for _, ch := range name {
		if ch >= 'a' && ch <= 'z' {
			return false
		}
		if ch >= 'A' && ch <= 'Z' {
			hasUpper = true
		}
	}
	return hasUpper
}

// isDunderName checks the leading-and-trailing double underscore
// naming convention.
func isDunderName(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}
