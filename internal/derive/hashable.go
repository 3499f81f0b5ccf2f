package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// synthHashable produces the hashValue property and the hash(into:)
// method. Hashable refines Equatable, so synthesis re-verifies both
// conformances per component; the oracle's shape check alone cannot see a
// component that hashes but does not compare.
func synthHashable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if bad := hashableNonConforming(sess, declID); len(bad) > 0 {
		return nil, structuralFailure(sess, bag, declID, iface.Hashable, bad)
	}
	if err := requireLegal(sess, bag, targetID, declID, iface.Hashable, ast.MemberProperty); err != nil {
		return nil, err
	}
	if err := requireLegal(sess, bag, targetID, declID, iface.Hashable, ast.MemberFunc); err != nil {
		return nil, err
	}

	return []ast.MemberID{
		hashValueProperty(sess, targetID),
		hashIntoFunc(sess, declID),
	}, nil
}

// hashableNonConforming merges the fields failing Hashable with those
// failing Equatable, without duplicates.
func hashableNonConforming(sess *Session, declID ast.DeclID) []NonConforming {
	out := FieldsNotConforming(sess, declID, iface.Hashable)
	seen := make(map[ast.FieldID]struct{}, len(out))
	for _, nc := range out {
		seen[nc.Field] = struct{}{}
	}
	for _, nc := range FieldsNotConforming(sess, declID, iface.Equatable) {
		if _, ok := seen[nc.Field]; !ok {
			out = append(out, nc)
		}
	}
	return out
}

// hashValueProperty is the legacy entry point: a computed property that
// defers to the full hasher pipeline.
func hashValueProperty(sess *Session, targetID ast.TargetID) ast.MemberID {
	b := sess.Types.Builtins()
	member, getter := DeclareReadOnlyProperty(sess, targetID, sess.Strings.Intern("hashValue"), b.Int, false)

	self := SelfRef(sess, getter)
	call := sess.AST.Exprs.NewCall(source.Span{}, sess.Strings.Intern("_hashValue"),
		[]ast.CallArg{{Label: sess.Strings.Intern("for"), Value: self}}, b.Int)
	data := sess.AST.Members.Func(getter)
	data.Body = []ast.StmtID{sess.AST.Stmts.NewReturn(source.Span{}, call)}
	return member
}

// hashIntoFunc feeds every discriminating component of the value into the
// hasher: the ordinal and then each payload field for variants, each
// stored member for products and references.
func hashIntoFunc(sess *Session, declID ast.DeclID) ast.MemberID {
	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()

	hasher, hasherRef := newParam(sess, "into", "hasher", sess.WellKnown().Hasher)

	nameID := sess.Strings.Intern("hash")
	fn := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       nameID,
		Params:     []ast.Param{hasher},
		Result:     b.Unit,
		Self:       decl.Self,
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
	})
	data := sess.AST.Members.Func(fn)

	combine := func(value ast.ExprID) ast.StmtID {
		call := methodCall(sess, "combine", hasherRef, []ast.CallArg{{Value: value}}, b.Unit)
		return sess.AST.Stmts.NewExprStmt(source.Span{}, call)
	}

	var body []ast.StmtID
	self := SelfRef(sess, fn)
	switch decl.Kind {
	case ast.DeclVariant:
		if hasOnlyPayloadFreeCases(sess, decl) {
			idx := ConvertVariantToIndex(sess, &body, declID, self, "discriminant")
			body = append(body, combine(idx))
			break
		}
		arms := make([]ast.ArmID, 0, len(decl.Cases))
		for _, caseID := range decl.Cases {
			c := sess.AST.Decls.Case(caseID)
			var bound []ast.LocalID
			sub := PayloadSubpattern(sess, caseID, 'a', &bound)
			pat := sess.AST.Patterns.NewCase(c.Span, caseID, sub, decl.Self)

			armBody := []ast.StmtID{combine(intLit(sess, uint64(c.Ordinal)))}
			for _, local := range bound {
				ref := sess.AST.Exprs.NewLocalRef(source.Span{}, local, sess.AST.Members.Local(local).Type)
				armBody = append(armBody, combine(ref))
			}
			arms = append(arms, sess.AST.Stmts.NewArm(c.Span, pat, armBody))
		}
		body = append(body, sess.AST.Stmts.NewSwitch(decl.Span, self, arms))
	default:
		for _, f := range decl.Fields {
			ty := sess.ResolveFieldType(f)
			body = append(body, combine(sess.AST.Exprs.NewFieldRef(source.Span{}, self, f, ty)))
		}
	}
	data.Body = body

	return sess.AST.Members.NewFuncMember(nameID, decl.Span, fn)
}
