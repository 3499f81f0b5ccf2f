package derive_test

import (
	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/source"
	"tern/internal/types"
)

// fixture wires a session with one virtual file, enough for most tests.
type fixture struct {
	sess *derive.Session
	file source.FileID
}

func newFixture() *fixture {
	sess := derive.NewSession()
	return &fixture{
		sess: sess,
		file: sess.Files.AddVirtual("app.tn", "app"),
	}
}

func (fx *fixture) otherFile() source.FileID {
	return fx.sess.Files.AddVirtual("other.tn", "app")
}

func (fx *fixture) newDecl(kind ast.DeclKind, name string) ast.DeclID {
	sess := fx.sess
	nameID := sess.Strings.Intern(name)
	decl := sess.AST.Decls.New(ast.TypeDecl{
		Kind:   kind,
		Name:   nameID,
		File:   fx.file,
		Self:   sess.Types.RegisterNominal(nameID, source.Span{}),
		Access: ast.AccessInternal,
	})
	sess.RegisterDecl(decl)
	return decl
}

// variant declares a payload-free variant with the given case names.
func (fx *fixture) variant(name string, caseNames ...string) ast.DeclID {
	decl := fx.newDecl(ast.DeclVariant, name)
	for _, cn := range caseNames {
		fx.sess.AST.Decls.AddCase(decl, fx.sess.Strings.Intern(cn), source.Span{})
	}
	return decl
}

type fieldSpec struct {
	label string
	ty    types.TypeID
}

// product declares a product type with the given stored fields.
func (fx *fixture) product(name string, fields ...fieldSpec) ast.DeclID {
	decl := fx.newDecl(ast.DeclProduct, name)
	for _, f := range fields {
		label := source.NoStringID
		if f.label != "" {
			label = fx.sess.Strings.Intern(f.label)
		}
		fx.sess.AST.Decls.AddStoredField(decl, label, f.ty, source.Span{})
	}
	return decl
}

// bodyTarget is the type's own declaration body as an insertion point.
func (fx *fixture) bodyTarget(decl ast.DeclID) ast.TargetID {
	return fx.sess.AST.Targets.New(ast.TargetTypeBody, decl, fx.file, source.Span{})
}

// extTarget is an extension insertion point in the given file.
func (fx *fixture) extTarget(decl ast.DeclID, file source.FileID) ast.TargetID {
	return fx.sess.AST.Targets.New(ast.TargetExtension, decl, file, source.Span{})
}

// opaque registers a nominal type with no conformances at all.
func (fx *fixture) opaque(name string) types.TypeID {
	return fx.sess.Types.RegisterNominal(fx.sess.Strings.Intern(name), source.Span{})
}
