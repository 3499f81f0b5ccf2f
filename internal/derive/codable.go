package derive

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// The serialization pair. Eligibility for these two is optimistic, so
// synthesis performs the real per-field conformance check and raises a
// field-level StructuralFailure when the promise cannot be kept.

// synthEncodable produces encode(to:): one keyed encode call per stored
// member, in declaration order.
func synthEncodable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if bad := FieldsNotConforming(sess, declID, iface.Encodable); len(bad) > 0 {
		return nil, structuralFailure(sess, bag, declID, iface.Encodable, bad)
	}
	if err := requireLegal(sess, bag, targetID, declID, iface.Encodable, ast.MemberFunc); err != nil {
		return nil, err
	}

	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()
	encoder, encoderRef := newParam(sess, "to", "encoder", sess.WellKnown().Encoder)

	nameID := sess.Strings.Intern("encode")
	fn := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       nameID,
		Params:     []ast.Param{encoder},
		Result:     b.Unit,
		Self:       decl.Self,
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
	})
	data := sess.AST.Members.Func(fn)

	self := SelfRef(sess, fn)
	var body []ast.StmtID
	for i, f := range decl.Fields {
		field := sess.AST.Decls.Field(f)
		ty := sess.ResolveFieldType(f)
		value := sess.AST.Exprs.NewFieldRef(source.Span{}, self, f, ty)
		key := sess.AST.Exprs.NewStringLit(source.Span{},
			sess.Strings.Intern(fieldKeyName(sess, field, i)), b.String)
		call := methodCall(sess, "encode", encoderRef, []ast.CallArg{
			{Value: value},
			{Label: sess.Strings.Intern("forKey"), Value: key},
		}, b.Unit)
		body = append(body, sess.AST.Stmts.NewExprStmt(field.Span, call))
	}
	data.Body = body

	return []ast.MemberID{sess.AST.Members.NewFuncMember(nameID, decl.Span, fn)}, nil
}

// synthDecodable produces init(from:): one keyed decode call per stored
// member, assigned into self in declaration order.
func synthDecodable(sess *Session, bag *diag.Bag, targetID ast.TargetID, declID ast.DeclID) ([]ast.MemberID, error) {
	if bad := FieldsNotConforming(sess, declID, iface.Decodable); len(bad) > 0 {
		return nil, structuralFailure(sess, bag, declID, iface.Decodable, bad)
	}
	if err := requireLegal(sess, bag, targetID, declID, iface.Decodable, ast.MemberInit); err != nil {
		return nil, err
	}

	decl := sess.AST.Decls.Get(declID)
	b := sess.Types.Builtins()
	decoder, decoderRef := newParam(sess, "from", "decoder", sess.WellKnown().Decoder)

	nameID := sess.Strings.Intern("init")
	fn := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       nameID,
		Params:     []ast.Param{decoder},
		Result:     b.Unit,
		Self:       decl.Self,
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
	})
	data := sess.AST.Members.Func(fn)

	self := SelfRef(sess, fn)
	var body []ast.StmtID
	for i, f := range decl.Fields {
		field := sess.AST.Decls.Field(f)
		ty := sess.ResolveFieldType(f)
		key := sess.AST.Exprs.NewStringLit(source.Span{},
			sess.Strings.Intern(fieldKeyName(sess, field, i)), b.String)
		call := methodCall(sess, "decode", decoderRef, []ast.CallArg{
			{Label: sess.Strings.Intern("forKey"), Value: key},
		}, ty)
		target := sess.AST.Exprs.NewFieldRef(source.Span{}, self, f, ty)
		body = append(body, sess.AST.Stmts.NewAssign(field.Span, target, call))
	}
	data.Body = body

	member := sess.AST.Members.NewInitMember(nameID, decl.Span, ast.InitData{Fn: fn})
	return []ast.MemberID{member}, nil
}
