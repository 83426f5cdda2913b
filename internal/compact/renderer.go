package compact

import "strings"

// Render converts an ordered Declaration sequence into notation lines,
// one line per declaration. Rendering is a pure function of its input:
// the same declarations always yield the same text, which keeps the
// artifact stable and diff-able across runs.
//
// Grammar:
//
//	S:docstring first line
//	i:dotted.module.path
//	C:Name<Base1,Base2>        (no angle brackets without bases)
//	D:Name;field1:type1;field2
//	F:name(param1:type1,param2)->ret
//	m:name(...)                (method)
//	d:name(...)                (dunder method)
//	E:NAME
func Render(decls []Declaration) []string {
	lines := make([]string, 0, len(decls))
	for _, d := range decls {
		lines = append(lines, renderDecl(d))
	}
	return lines
}

func renderDecl(d Declaration) string {
	switch d.Kind {
	case KindModuleDoc:
		return "S:" + d.Name
	case KindImport:
		return "i:" + d.Name
	case KindClass:
		var sb strings.Builder
		sb.WriteString("C:")
		sb.WriteString(d.Name)
		if len(d.Bases) > 0 {
			sb.WriteByte('<')
			sb.WriteString(strings.Join(d.Bases, ","))
			sb.WriteByte('>')
		}
		return sb.String()
	case KindRecord:
		var sb strings.Builder
		sb.WriteString("D:")
		sb.WriteString(d.Name)
		for _, f := range d.Fields {
			sb.WriteByte(';')
			sb.WriteString(f.Name)
			if f.Type != "" {
				sb.WriteByte(':')
				sb.WriteString(f.Type)
			}
		}
		return sb.String()
	case KindFunction:
		return "F:" + renderSignature(d)
	case KindMethod:
		return "m:" + renderSignature(d)
	case KindDunder:
		return "d:" + renderSignature(d)
	case KindConstant:
		return "E:" + d.Name
	default:
		return ""
	}
}

// renderSignature renders name(param:type,...)->ret with no spaces.
// Parameters with no annotation omit the :type suffix; a missing
// return annotation omits the arrow entirely.
func renderSignature(d Declaration) string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Name)
		if p.Type != "" {
			sb.WriteByte(':')
			sb.WriteString(p.Type)
		}
	}
	sb.WriteByte(')')
	if d.Returns != "" {
		sb.WriteString("->")
		sb.WriteString(d.Returns)
	}
	return sb.String()
}
