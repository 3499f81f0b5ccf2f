package derive

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/source"
	"tern/internal/types"
)

// Synthesis builder primitives. Each produces already-typed fragments;
// nothing here emits an untyped node.

// SelfRef builds a reference to the implicit receiver of fn, typed to the
// receiver's type.
func SelfRef(sess *Session, fn ast.FuncID) ast.ExprID {
	data := sess.AST.Members.Func(fn)
	return sess.AST.Exprs.NewSelf(source.Span{}, fn, data.Self)
}

// intLit builds a type-checked integer literal.
func intLit(sess *Session, value uint64) ast.ExprID {
	return sess.AST.Exprs.NewIntLit(source.Span{}, value, sess.Types.Builtins().Int)
}

// DeclareReadOnlyProperty declares a computed read-only property on the
// target and attaches a generated accessor: empty parameter list, result
// type equal to the property's interface type, implicit, carrying the
// access level and generic environment of the declaration context.
func DeclareReadOnlyProperty(sess *Session, targetID ast.TargetID, name source.StringID, propType types.TypeID, static bool) (ast.MemberID, ast.FuncID) {
	target := sess.AST.Targets.Get(targetID)
	decl := sess.AST.Decls.Get(target.Of)

	self := decl.Self
	if static {
		self = types.NoTypeID
	}
	getter := sess.AST.Members.NewFunc(ast.FuncData{
		Name:       name,
		Result:     propType,
		Self:       self,
		Implicit:   true,
		Access:     decl.Access,
		GenericEnv: decl.GenericEnv,
		Static:     static,
	})
	member := sess.AST.Members.NewProperty(name, target.Span, ast.PropertyData{
		Type:     propType,
		Storage:  ast.StorageImmutableComputed,
		Accessor: getter,
		Static:   static,
	})
	return member, getter
}

// DeclareLocal declares a named local binding of the given type with an
// unbound initializer, returning both the binding and its declaration
// statement.
func DeclareLocal(sess *Session, name source.StringID, ty types.TypeID) (ast.LocalID, ast.StmtID) {
	local := sess.AST.Members.NewLocal(ast.Local{Name: name, Type: ty})
	bind := sess.AST.Stmts.NewLocalBind(source.Span{}, local, ast.NoExprID)
	return local, bind
}

// IndexedVarDecl builds exactly one immutable local named <prefix><index>.
// The naming is deterministic, so repeated synthesis of the same case
// reproduces identical bindings.
func IndexedVarDecl(sess *Session, prefix byte, index int, ty types.TypeID) ast.LocalID {
	name := sess.Strings.Intern(fmt.Sprintf("%c%d", prefix, index))
	return sess.AST.Members.NewLocal(ast.Local{Name: name, Type: ty, Let: true})
}

// ConvertVariantToIndex reduces a variant value to its integer ordinal.
// It appends to stmts: one fresh int-typed local, and one dispatch
// statement with exactly one arm per case in declaration order, each arm
// assigning the case's canonical ordinal to the local. No default arm
// exists: the case set is closed. The returned expression reads the
// local's final value.
func ConvertVariantToIndex(sess *Session, stmts *[]ast.StmtID, declID ast.DeclID, subject ast.ExprID, indexName string) ast.ExprID {
	decl := sess.AST.Decls.Get(declID)
	intType := sess.Types.Builtins().Int

	indexVar, bind := DeclareLocal(sess, sess.Strings.Intern(indexName), intType)

	arms := make([]ast.ArmID, 0, len(decl.Cases))
	for _, caseID := range decl.Cases {
		c := sess.AST.Decls.Case(caseID)
		pat := sess.AST.Patterns.NewCase(c.Span, caseID, ast.NoPatternID, decl.Self)
		ref := sess.AST.Exprs.NewLocalRef(source.Span{}, indexVar, intType)
		assign := sess.AST.Stmts.NewAssign(source.Span{}, ref, intLit(sess, uint64(c.Ordinal)))
		arms = append(arms, sess.AST.Stmts.NewArm(c.Span, pat, []ast.StmtID{assign}))
	}

	dispatch := sess.AST.Stmts.NewSwitch(decl.Span, subject, arms)

	*stmts = append(*stmts, bind, dispatch)
	return sess.AST.Exprs.NewLocalRef(source.Span{}, indexVar, intType)
}

// PayloadSubpattern builds the pattern that matches and binds the payload
// of one variant case. It returns NoPatternID for a payload-free case, a
// parenthesized binding for a single unlabeled field, and otherwise a
// tuple pattern with one immutable binding per field, preserving each
// field's label. Every generated binding is named <prefix><i> by field
// position and appended to bound in field order.
func PayloadSubpattern(sess *Session, caseID ast.CaseID, prefix byte, bound *[]ast.LocalID) ast.PatternID {
	c := sess.AST.Decls.Case(caseID)
	if !c.HasPayload() {
		return ast.NoPatternID
	}

	if len(c.Fields) == 1 {
		fieldID := c.Fields[0]
		field := sess.AST.Decls.Field(fieldID)
		if field.Label == source.NoStringID {
			ty := sess.ResolveFieldType(fieldID)
			v := IndexedVarDecl(sess, prefix, 0, ty)
			*bound = append(*bound, v)
			inner := sess.AST.Patterns.NewBind(field.Span, v, ty)
			return sess.AST.Patterns.NewParen(c.Span, inner, ty)
		}
	}

	elems := make([]ast.TupleElt, 0, len(c.Fields))
	elemTypes := make([]types.TypeID, 0, len(c.Fields))
	for i, fieldID := range c.Fields {
		field := sess.AST.Decls.Field(fieldID)
		ty := sess.ResolveFieldType(fieldID)
		v := IndexedVarDecl(sess, prefix, i, ty)
		*bound = append(*bound, v)
		elems = append(elems, ast.TupleElt{
			Label: field.Label,
			Sub:   sess.AST.Patterns.NewBind(field.Span, v, ty),
		})
		elemTypes = append(elemTypes, ty)
	}
	return sess.AST.Patterns.NewTuple(c.Span, elems, sess.Types.TupleOf(elemTypes))
}
