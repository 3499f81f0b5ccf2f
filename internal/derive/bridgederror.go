package derive

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// synthBridgedError produces the static errorDomain property, a string
// constant of the form "<module>.<TypeName>".
func synthBridgedError(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if err := requireLegal(sess, bag, targetID, declID, iface.BridgedError, ast.MemberProperty); err != nil {
		return nil, err
	}
	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()

	member, getter := DeclareReadOnlyProperty(sess, targetID, sess.Strings.Intern("errorDomain"), b.String, true)

	domain := fmt.Sprintf("%s.%s", sess.Files.Module(decl.File), sess.Strings.MustLookup(decl.Name))
	lit := sess.AST.Exprs.NewStringLit(decl.Span, sess.Strings.Intern(domain), b.String)
	data := sess.AST.Members.Func(getter)
	data.Body = []ast.StmtID{sess.AST.Stmts.NewReturn(source.Span{}, lit)}

	return []ast.MemberID{member}, nil
}
