package derive_test

import (
	"testing"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

func TestCheckLegal_SameFileAllowed(t *testing.T) {
	fx := newFixture()
	b := fx.sess.Types.Builtins()
	decl := fx.product("Point", fieldSpec{label: "x", ty: b.Int})

	v := derive.CheckLegal(fx.sess, fx.bodyTarget(decl), decl, iface.Equatable, ast.MemberFunc)
	if !v.Allowed {
		t.Fatalf("same-file body target denied: %s", v.Reason)
	}
	v = derive.CheckLegal(fx.sess, fx.extTarget(decl, fx.file), decl, iface.Equatable, ast.MemberFunc)
	if !v.Allowed {
		t.Fatalf("same-file extension denied: %s", v.Reason)
	}
}

func TestCheckLegal_CrossFileDenied(t *testing.T) {
	fx := newFixture()
	b := fx.sess.Types.Builtins()
	decl := fx.product("Point", fieldSpec{label: "x", ty: b.Int})
	away := fx.extTarget(decl, fx.otherFile())

	v := derive.CheckLegal(fx.sess, away, decl, iface.Equatable, ast.MemberFunc)
	if v.Allowed {
		t.Fatal("cross-file product synthesis must be denied")
	}
	if v.Code != diag.DeriveCrossFileExtension {
		t.Fatalf("code = %s, want %s", v.Code, diag.DeriveCrossFileExtension)
	}
}

// Payload-free variants keep the historical cross-file allowance for
// Equatable and Hashable only.
func TestCheckLegal_CrossFileVariantException(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("Direction", "north", "south")
	away := fx.extTarget(decl, fx.otherFile())

	for _, k := range []iface.Known{iface.Equatable, iface.Hashable} {
		if v := derive.CheckLegal(fx.sess, away, decl, k, ast.MemberFunc); !v.Allowed {
			t.Errorf("%s: payload-free variant cross-file denied: %s", k, v.Reason)
		}
	}
	if v := derive.CheckLegal(fx.sess, away, decl, iface.Comparable, ast.MemberFunc); v.Allowed {
		t.Error("the exception does not extend to Comparable")
	}
	if v := derive.CheckLegal(fx.sess, away, decl, iface.CaseIterable, ast.MemberProperty); v.Allowed {
		t.Error("the exception does not extend to CaseIterable")
	}
}

func TestCheckLegal_CrossFileExceptionNeedsPayloadFree(t *testing.T) {
	fx := newFixture()
	b := fx.sess.Types.Builtins()
	decl := fx.variant("Wrapper")
	c := fx.sess.AST.Decls.AddCase(decl, fx.sess.Strings.Intern("full"), source.Span{})
	fx.sess.AST.Decls.AddPayloadField(c, fx.sess.Strings.Intern("value"), b.Int, source.Span{})
	away := fx.extTarget(decl, fx.otherFile())

	if v := derive.CheckLegal(fx.sess, away, decl, iface.Hashable, ast.MemberFunc); v.Allowed {
		t.Fatal("payload-bearing variant must not use the cross-file exception")
	}
}

func TestCheckLegal_InitInNonFinalReferenceExtension(t *testing.T) {
	fx := newFixture()
	decl := fx.newDecl(ast.DeclReference, "Session")
	ext := fx.extTarget(decl, fx.file)

	v := derive.CheckLegal(fx.sess, ext, decl, iface.Decodable, ast.MemberInit)
	if v.Allowed {
		t.Fatal("initializer into an extension of a non-final reference must be denied")
	}
	if v.Code != diag.DeriveInitInNonFinalExtension {
		t.Fatalf("code = %s, want %s", v.Code, diag.DeriveInitInNonFinalExtension)
	}

	// A function member in the same extension is fine.
	if v := derive.CheckLegal(fx.sess, ext, decl, iface.Encodable, ast.MemberFunc); !v.Allowed {
		t.Fatalf("function member denied: %s", v.Reason)
	}
	// The type body is fine even for initializers.
	if v := derive.CheckLegal(fx.sess, fx.bodyTarget(decl), decl, iface.Decodable, ast.MemberInit); !v.Allowed {
		t.Fatalf("type body initializer denied: %s", v.Reason)
	}
	// A final reference lifts the restriction.
	fx.sess.AST.Decls.Get(decl).IsFinal = true
	if v := derive.CheckLegal(fx.sess, ext, decl, iface.Decodable, ast.MemberInit); !v.Allowed {
		t.Fatalf("final reference extension initializer denied: %s", v.Reason)
	}
}
