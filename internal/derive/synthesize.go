package derive

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
	"tern/internal/types"
)

// Synthesize derives every member needed to satisfy k for the declared
// type and appends the complete set to the target. The oracle is asked
// first and a refusal is ErrIneligible; context legality is validated per
// member kind before any node is built, so a denial leaves no partial
// members behind. The conformance witness is recorded only after the
// append succeeds.
func Synthesize(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID, k iface.Known) ([]ast.MemberID, error) {
	if !OffersDerivation(sess, targetID, declID, k) {
		return nil, ErrIneligible
	}

	var members []ast.MemberID
	var err error
	switch k {
	case iface.Equatable:
		members, err = synthEquatable(sess, bag, targetID, declID)
	case iface.Hashable:
		members, err = synthHashable(sess, bag, targetID, declID)
	case iface.Comparable:
		members, err = synthComparable(sess, bag, targetID, declID)
	case iface.CaseIterable:
		members, err = synthCaseIterable(sess, bag, targetID, declID)
	case iface.RawRepresentable:
		members, err = synthRawRepresentable(sess, bag, targetID, declID)
	case iface.CodingKey:
		members, err = synthCodingKey(sess, bag, targetID, declID)
	case iface.Encodable:
		members, err = synthEncodable(sess, bag, targetID, declID)
	case iface.Decodable:
		members, err = synthDecodable(sess, bag, targetID, declID)
	case iface.BridgedError:
		members, err = synthBridgedError(sess, bag, targetID, declID)
	default:
		return nil, ErrIneligible
	}
	if err != nil {
		return nil, err
	}

	sess.AST.Targets.Get(targetID).Append(members...)
	decl := sess.AST.Decls.Get(declID)
	sess.RecordConformance(decl.Self, k, Witness{Target: targetID, Synthesized: true})
	return members, nil
}

// requireLegal validates the insertion point for one member kind. A
// denial is reported into the bag and surfaced as IllegalContextError.
func requireLegal(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID, k iface.Known, member ast.MemberKind) error {
	v := CheckLegal(sess, targetID, declID, k, member)
	if v.Allowed {
		return nil
	}
	if bag != nil {
		bag.Add(v.Diagnostic())
	}
	return &IllegalContextError{Verdict: v}
}

// structuralFailure reports every non-conforming field into the bag and
// wraps the list into a StructuralFailure.
func structuralFailure(sess *Session, bag *diag.Bag, declID ast.DeclID, k iface.Known, fields []NonConforming) error {
	if bag != nil {
		reportNonConforming(sess, bag, declID, k, fields)
	}
	return &StructuralFailure{Decl: declID, Iface: k, Fields: fields}
}

// newParam binds one generated parameter through a fresh immutable local.
func newParam(sess *Session, label, name string, ty types.TypeID) (ast.Param, ast.ExprID) {
	labelID := source.NoStringID
	if label != "" {
		labelID = sess.Strings.Intern(label)
	}
	local := sess.AST.Members.NewLocal(ast.Local{
		Name: sess.Strings.Intern(name),
		Type: ty,
		Let:  true,
	})
	ref := sess.AST.Exprs.NewLocalRef(source.Span{}, local, ty)
	return ast.Param{Label: labelID, Local: local, Type: ty}, ref
}

// methodCall builds a generated method call: the receiver rides as the
// leading unlabeled argument.
func methodCall(sess *Session, name string, recv ast.ExprID, args []ast.CallArg, result types.TypeID) ast.ExprID {
	all := make([]ast.CallArg, 0, len(args)+1)
	all = append(all, ast.CallArg{Value: recv})
	all = append(all, args...)
	return sess.AST.Exprs.NewCall(source.Span{}, sess.Strings.Intern(name), all, result)
}

// indexComparison builds the shared shape of "==" and "<" on payload-free
// variants: reduce both operands to their canonical ordinals and compare
// the two integers.
func indexComparison(sess *Session, declID ast.DeclID, name string, op ast.BinaryOp) ast.MemberID {
	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()

	lhs, lref := newParam(sess, "", "lhs", decl.Self)
	rhs, rref := newParam(sess, "", "rhs", decl.Self)

	var body []ast.StmtID
	li := ConvertVariantToIndex(sess, &body, declID, lref, "lhsIndex")
	ri := ConvertVariantToIndex(sess, &body, declID, rref, "rhsIndex")
	cmp := sess.AST.Exprs.NewBinary(source.Span{}, op, li, ri, b.Bool)
	body = append(body, sess.AST.Stmts.NewReturn(decl.Span, cmp))

	nameID := sess.Strings.Intern(name)
	fn := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       nameID,
		Params:     []ast.Param{lhs, rhs},
		Result:     b.Bool,
		Body:       body,
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
		Static:     true,
	})
	return sess.AST.Members.NewFuncMember(nameID, decl.Span, fn)
}

// fieldKeyName is the serialization key of a stored field: its label, or
// a positional key for unlabeled fields.
func fieldKeyName(sess *Session, field *ast.Field, index int) string {
	if field.Label != source.NoStringID {
		return sess.Strings.MustLookup(field.Label)
	}
	return fmt.Sprintf("_%d", index)
}
