package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
	"tern/internal/types"
)

// synthRawRepresentable produces the rawValue property and the failable
// init(rawValue:). Both insertion points are validated before anything is
// built.
func synthRawRepresentable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if err := requireLegal(sess, bag, targetID, declID, iface.RawRepresentable, ast.MemberProperty); err != nil {
		return nil, err
	}
	if err := requireLegal(sess, bag, targetID, declID, iface.RawRepresentable, ast.MemberInit); err != nil {
		return nil, err
	}
	decl := sess.AST.Decls.Get(declID)
	return []ast.MemberID{
		rawValueProperty(sess, targetID, declID),
		rawValueInit(sess, declID, decl.RawType, "rawValue"),
	}, nil
}

// rawLiteral is the backing value of one case: the declared raw value
// when present, otherwise the case name for string backings and the
// canonical ordinal for integer backings.
func rawLiteral(sess *Session, c *ast.Case, raw types.TypeID) ast.ExprID {
	if sess.Types.KindOf(raw) == types.KindString {
		value := c.Name
		if c.RawIsSet && c.RawString != source.NoStringID {
			value = c.RawString
		}
		return sess.AST.Exprs.NewStringLit(c.Span, value, raw)
	}
	value := uint64(c.Ordinal)
	if c.RawIsSet {
		value = uint64(c.RawInt)
	}
	return sess.AST.Exprs.NewIntLit(c.Span, value, raw)
}

// rawValueProperty switches on self and returns each case's backing
// value. One arm per case in declaration order, no default.
func rawValueProperty(sess *Session, targetID ast.TargetID, declID ast.DeclID) ast.MemberID {
	decl := sess.AST.Decls.Get(declID)
	member, getter := DeclareReadOnlyProperty(sess, targetID, sess.Strings.Intern("rawValue"), decl.RawType, false)

	self := SelfRef(sess, getter)
	arms := make([]ast.ArmID, 0, len(decl.Cases))
	for _, caseID := range decl.Cases {
		c := sess.AST.Decls.Case(caseID)
		pat := sess.AST.Patterns.NewCase(c.Span, caseID, ast.NoPatternID, decl.Self)
		ret := sess.AST.Stmts.NewReturn(c.Span, rawLiteral(sess, c, decl.RawType))
		arms = append(arms, sess.AST.Stmts.NewArm(c.Span, pat, []ast.StmtID{ret}))
	}
	data := sess.AST.Members.Func(getter)
	data.Body = []ast.StmtID{sess.AST.Stmts.NewSwitch(decl.Span, self, arms)}
	return member
}

// rawValueInit builds the failable initializer: dispatch on the scalar
// argument with one literal arm per case, assigning the matched case to
// self, and a default arm that fails.
func rawValueInit(sess *Session, declID ast.DeclID, raw types.TypeID, label string) ast.MemberID {
	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()

	param, paramRef := newParam(sess, label, label, raw)

	nameID := sess.Strings.Intern("init")
	fn := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       nameID,
		Params:     []ast.Param{param},
		Result:     b.Unit,
		Self:       decl.Self,
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
	})
	data := sess.AST.Members.Func(fn)

	self := SelfRef(sess, fn)
	arms := make([]ast.ArmID, 0, len(decl.Cases))
	for _, caseID := range decl.Cases {
		c := sess.AST.Decls.Case(caseID)
		pat := sess.AST.Patterns.NewLiteral(c.Span, rawLiteral(sess, c, raw), raw)
		assign := sess.AST.Stmts.NewAssign(c.Span, self, sess.AST.Exprs.NewCaseRef(c.Span, caseID, decl.Self))
		arms = append(arms, sess.AST.Stmts.NewArm(c.Span, pat, []ast.StmtID{assign}))
	}
	fail := []ast.StmtID{sess.AST.Stmts.NewReturn(decl.Span, ast.NoExprID)}
	data.Body = []ast.StmtID{sess.AST.Stmts.NewSwitchDefault(decl.Span, paramRef, arms, fail)}

	return sess.AST.Members.NewInitMember(nameID, decl.Span, ast.InitData{Fn: fn, Failable: true})
}
