package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
)

// synthComparable produces the "<" operator for a payload-free variant:
// case order in source is the canonical order, so comparison reduces to
// the ordinals.
func synthComparable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if err := requireLegal(sess, bag, targetID, declID, iface.Comparable, ast.MemberFunc); err != nil {
		return nil, err
	}
	return []ast.MemberID{indexComparison(sess, declID, "<", ast.OpLt)}, nil
}
