package derive

import (
	"tern/internal/ast"
	"tern/internal/iface"
)

// NonConforming is one field whose type does not satisfy the requested
// interface. Case is NoCaseID for stored members of product/reference
// types.
type NonConforming struct {
	Case  ast.CaseID
	Field ast.FieldID
}

// FieldsNotConforming returns every payload field (for variants) or stored
// field (for products and references) whose declared type does not itself
// satisfy k. Field signatures are resolved lazily on first access. The
// result drives both structural eligibility and the failure reporter.
func FieldsNotConforming(sess *Session, declID ast.DeclID, k iface.Known) []NonConforming {
	decl := sess.AST.Decls.Get(declID)
	if decl == nil {
		return nil
	}
	var out []NonConforming
	if decl.Kind == ast.DeclVariant {
		for _, caseID := range decl.Cases {
			c := sess.AST.Decls.Case(caseID)
			for _, f := range c.Fields {
				if !sess.Conforms(sess.ResolveFieldType(f), k) {
					out = append(out, NonConforming{Case: caseID, Field: f})
				}
			}
		}
		return out
	}
	for _, f := range decl.Fields {
		if !sess.Conforms(sess.ResolveFieldType(f), k) {
			out = append(out, NonConforming{Field: f})
		}
	}
	return out
}

// AllFieldsConform reports whether every field of the declaration
// satisfies k.
func AllFieldsConform(sess *Session, declID ast.DeclID, k iface.Known) bool {
	return len(FieldsNotConforming(sess, declID, k)) == 0
}
