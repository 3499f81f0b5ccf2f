package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/types"
)

// synthCodingKey produces the key-variant accessors: stringValue and the
// failable init(stringValue:) always, plus intValue and init(intValue:)
// when the variant has an integer backing. String keys fall back to the
// case name when no raw value is declared.
func synthCodingKey(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if err := requireLegal(sess, bag, targetID, declID, iface.CodingKey, ast.MemberProperty); err != nil {
		return nil, err
	}
	if err := requireLegal(sess, bag, targetID, declID, iface.CodingKey, ast.MemberInit); err != nil {
		return nil, err
	}

	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()

	stringKey := b.String
	if sess.Types.KindOf(decl.RawType) == types.KindString {
		stringKey = decl.RawType
	}
	members := []ast.MemberID{
		keyValueProperty(sess, targetID, declID, "stringValue", stringKey),
		rawValueInit(sess, declID, stringKey, "stringValue"),
	}

	if sess.Types.KindOf(decl.RawType) == types.KindInt {
		members = append(members,
			keyValueProperty(sess, targetID, declID, "intValue", decl.RawType),
			rawValueInit(sess, declID, decl.RawType, "intValue"),
		)
	}
	return members, nil
}

// keyValueProperty switches on self and returns each case's key in the
// requested scalar representation.
func keyValueProperty(sess *Session, targetID ast.TargetID, declID ast.DeclID, name string, scalar types.TypeID) ast.MemberID {
	decl := sess.AST.Decls.Get(declID)
	member, getter := DeclareReadOnlyProperty(sess, targetID, sess.Strings.Intern(name), scalar, false)

	self := SelfRef(sess, getter)
	arms := make([]ast.ArmID, 0, len(decl.Cases))
	for _, caseID := range decl.Cases {
		c := sess.AST.Decls.Case(caseID)
		pat := sess.AST.Patterns.NewCase(c.Span, caseID, ast.NoPatternID, decl.Self)
		ret := sess.AST.Stmts.NewReturn(c.Span, rawLiteral(sess, c, scalar))
		arms = append(arms, sess.AST.Stmts.NewArm(c.Span, pat, []ast.StmtID{ret}))
	}
	data := sess.AST.Members.Func(getter)
	data.Body = []ast.StmtID{sess.AST.Stmts.NewSwitch(decl.Span, self, arms)}
	return member
}
