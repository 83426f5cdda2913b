package compact

// DeclKind identifies the kind of an extracted declaration. The set is
// closed; the renderer matches exhaustively over it.
type DeclKind int

const (
	// KindModuleDoc is a leading bare string literal at module scope.
	KindModuleDoc DeclKind = iota
	// KindImport is an import statement, recorded by dotted module path.
	KindImport
	// KindClass is a general class with optional base types and methods.
	KindClass
	// KindRecord is a record-like class: annotated fields, no behavior.
	KindRecord
	// KindFunction is a module-scope function.
	KindFunction
	// KindMethod is a class-scope function.
	KindMethod
	// KindDunder is a class-scope function named __x__.
	KindDunder
	// KindConstant is a module-scope ALL_CAPS assignment.
	KindConstant
)

// String returns a human-readable kind name, used in diagnostics.
func (k DeclKind) String() string {
	switch k {
	case KindModuleDoc:
		return "module-doc"
	case KindImport:
		return "import"
	case KindClass:
		return "class"
	case KindRecord:
		return "record"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindDunder:
		return "dunder"
	case KindConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// Param is one function or method parameter. Type is empty when the
// parameter carries no annotation. Default values are not recorded;
// only name and declared type survive into the notation.
type Param struct {
	Name string
	Type string
}

// Field is one annotated field of a record-like class.
type Field struct {
	Name string
	Type string
}

// Declaration is one extracted module- or class-scope construct.
// Parameter and field order is preserved exactly as declared; the
// notation is order-sensitive.
type Declaration struct {
	Kind DeclKind
	Name string

	// Bases holds base-type names for KindClass, in declaration order.
	Bases []string

	// Fields holds (name, type) pairs for KindRecord.
	Fields []Field

	// Params and Returns apply to KindFunction, KindMethod, KindDunder.
	Params  []Param
	Returns string
}

// Document is the rendered output for one source file.
type Document struct {
	// Path is the file's root-relative slash path.
	Path string
	// Lines are the rendered notation lines, in extraction order.
	Lines []string
}

// SkippedFile records a tolerated per-file failure.
type SkippedFile struct {
	Path   string
	Reason error
}

// Result summarizes one pipeline run.
type Result struct {
	Processed int
	Skipped   []SkippedFile
	// Text is the aggregated output, retained for token counting.
	Text string
	// OutputPath is empty when output went to the console.
	OutputPath string
}
