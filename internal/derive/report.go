package derive

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// DiagnoseFailure explains, best-effort, why a derivation the oracle
// approved nonetheless failed to synthesize. Only Equatable and Hashable
// get the expensive recursive scan; each offending field is reported with
// its enclosing case and the interface its type fails to satisfy. When
// the scan does not apply or turns up nothing, a single missing-witness
// error stands in so the failure is never silent.
func DiagnoseFailure(sess *Session, bag *diag.Bag, declID ast.DeclID, k iface.Known) {
	if k == iface.Equatable || k == iface.Hashable {
		if fields := FieldsNotConforming(sess, declID, k); len(fields) > 0 {
			reportNonConforming(sess, bag, declID, k, fields)
			return
		}
	}
	decl := sess.AST.Decls.Get(declID)
	msg := fmt.Sprintf("%s does not produce a witness for %s", displayDeclName(sess, decl), k)
	bag.Add(diag.NewError(diag.DeriveMissingWitness, decl.Span, msg))
}

func reportNonConforming(sess *Session, bag *diag.Bag, declID ast.DeclID, k iface.Known, fields []NonConforming) {
	decl := sess.AST.Decls.Get(declID)
	for _, nc := range fields {
		field := sess.AST.Decls.Field(nc.Field)
		ty := sess.Types.DisplayName(sess.ResolveFieldType(nc.Field), sess.Strings)
		msg := fmt.Sprintf("cannot synthesize %s: %s of type %s does not conform to %s",
			k, describeField(sess, declID, nc), ty, k)
		d := diag.NewError(diag.DeriveFieldNotConforming, fieldSpan(field, decl.Span), msg).
			WithNote(decl.Span, fmt.Sprintf("%s declared here", displayDeclName(sess, decl)))
		bag.Add(d)
	}
}

// describeField names a field for humans: by label when present, by
// position otherwise, with the enclosing case for variant payloads.
func describeField(sess *Session, declID ast.DeclID, nc NonConforming) string {
	field := sess.AST.Decls.Field(nc.Field)
	name := ""
	if field.Label != source.NoStringID {
		name = sess.Strings.MustLookup(field.Label)
	}
	if nc.Case.IsValid() {
		c := sess.AST.Decls.Case(nc.Case)
		caseName := sess.Strings.MustLookup(c.Name)
		if name == "" {
			name = fmt.Sprintf("payload #%d", payloadIndex(c, nc.Field))
		}
		return fmt.Sprintf("%s of case %q", name, caseName)
	}
	if name == "" {
		name = fmt.Sprintf("field #%d", storedIndex(sess.AST.Decls.Get(declID), nc.Field))
	}
	return fmt.Sprintf("field %q", name)
}

func payloadIndex(c *ast.Case, f ast.FieldID) int {
	for i, id := range c.Fields {
		if id == f {
			return i
		}
	}
	return -1
}

func storedIndex(decl *ast.TypeDecl, f ast.FieldID) int {
	for i, id := range decl.Fields {
		if id == f {
			return i
		}
	}
	return -1
}

func fieldSpan(field *ast.Field, fallback source.Span) source.Span {
	if field.Span.Empty() && field.Span.File == 0 {
		return fallback
	}
	return field.Span
}

func displayDeclName(sess *Session, decl *ast.TypeDecl) string {
	name, ok := sess.Strings.Lookup(decl.Name)
	if !ok || name == "" {
		return decl.Kind.String() + " type"
	}
	return fmt.Sprintf("%s %q", decl.Kind, name)
}
