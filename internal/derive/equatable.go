package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// synthEquatable produces the "==" operator. Payload-free variants compare
// canonical ordinals; products compare stored members pairwise, left to
// right, in declaration order.
func synthEquatable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if err := requireLegal(sess, bag, targetID, declID, iface.Equatable, ast.MemberFunc); err != nil {
		return nil, err
	}
	decl := sess.AST.Decls.Get(declID)
	if decl.Kind == ast.DeclVariant {
		return []ast.MemberID{indexComparison(sess, declID, "==", ast.OpEq)}, nil
	}
	if bad := FieldsNotConforming(sess, declID, iface.Equatable); len(bad) > 0 {
		return nil, structuralFailure(sess, bag, declID, iface.Equatable, bad)
	}
	return []ast.MemberID{fieldwiseEquality(sess, declID)}, nil
}

// fieldwiseEquality builds `a.f0 == b.f0 && a.f1 == b.f1 && ...` over the
// stored members. A product with no stored members is trivially equal to
// itself.
func fieldwiseEquality(sess *Session, declID ast.DeclID) ast.MemberID {
	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()

	lhs, lref := newParam(sess, "", "lhs", decl.Self)
	rhs, rref := newParam(sess, "", "rhs", decl.Self)

	result := ast.NoExprID
	for _, f := range decl.Fields {
		ty := sess.ResolveFieldType(f)
		left := sess.AST.Exprs.NewFieldRef(source.Span{}, lref, f, ty)
		right := sess.AST.Exprs.NewFieldRef(source.Span{}, rref, f, ty)
		cmp := sess.AST.Exprs.NewBinary(source.Span{}, ast.OpEq, left, right, b.Bool)
		if result == ast.NoExprID {
			result = cmp
			continue
		}
		result = sess.AST.Exprs.NewBinary(source.Span{}, ast.OpAnd, result, cmp, b.Bool)
	}
	if result == ast.NoExprID {
		result = sess.AST.Exprs.NewBoolLit(source.Span{}, true, b.Bool)
	}

	nameID := sess.Strings.Intern("==")
	fn := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       nameID,
		Params:     []ast.Param{lhs, rhs},
		Result:     b.Bool,
		Body:       []ast.StmtID{sess.AST.Stmts.NewReturn(decl.Span, result)},
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
		Static:     true,
	})
	return sess.AST.Members.NewFuncMember(nameID, decl.Span, fn)
}
