package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// synthCaseIterable produces the static allCases property: an array
// literal holding one reference per case, in declaration order. The
// canonical ordinals guarantee the collection order is reproducible
// across sessions.
func synthCaseIterable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if err := requireLegal(sess, bag, targetID, declID, iface.CaseIterable, ast.MemberProperty); err != nil {
		return nil, err
	}
	decl := sess.AST.Decls.Get(declID)
	arrayType := sess.Types.ArrayOf(decl.Self)

	member, getter := DeclareReadOnlyProperty(sess, targetID, sess.Strings.Intern("allCases"), arrayType, true)

	elems := make([]ast.ExprID, 0, len(decl.Cases))
	for _, caseID := range decl.Cases {
		c := sess.AST.Decls.Case(caseID)
		elems = append(elems, sess.AST.Exprs.NewCaseRef(c.Span, caseID, decl.Self))
	}
	arr := sess.AST.Exprs.NewArray(decl.Span, elems, arrayType)
	data := sess.AST.Members.Func(getter)
	data.Body = []ast.StmtID{sess.AST.Stmts.NewReturn(source.Span{}, arr)}

	return []ast.MemberID{member}, nil
}
