package derive_test

import (
	"testing"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/iface"
	"tern/internal/source"
)

func TestOffersDerivation_PayloadFreeVariant(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("Direction", "north", "south", "east", "west")
	target := fx.bodyTarget(decl)

	want := map[iface.Known]bool{
		iface.Equatable:        true,
		iface.Hashable:         true,
		iface.Comparable:       true,
		iface.CaseIterable:     true,
		iface.CodingKey:        true,
		iface.RawRepresentable: false, // no backing type declared
		iface.BridgedError:     false, // not an interop type
		iface.Encodable:        false,
		iface.Decodable:        false,
	}
	for k, offered := range want {
		if got := derive.OffersDerivation(fx.sess, target, decl, k); got != offered {
			t.Errorf("%s: got %v, want %v", k, got, offered)
		}
	}
}

func TestOffersDerivation_PayloadVariant(t *testing.T) {
	fx := newFixture()
	b := fx.sess.Types.Builtins()
	decl := fx.variant("Shape", "point")
	c := fx.sess.AST.Decls.AddCase(decl, fx.sess.Strings.Intern("circle"), source.Span{})
	fx.sess.AST.Decls.AddPayloadField(c, fx.sess.Strings.Intern("radius"), b.Int, source.Span{})
	target := fx.bodyTarget(decl)

	want := map[iface.Known]bool{
		iface.Equatable:    false,
		iface.Comparable:   false,
		iface.CaseIterable: false,
		iface.CodingKey:    false,
		iface.Hashable:     true, // Int payload hashes
	}
	for k, offered := range want {
		if got := derive.OffersDerivation(fx.sess, target, decl, k); got != offered {
			t.Errorf("%s: got %v, want %v", k, got, offered)
		}
	}
}

func TestOffersDerivation_HashableFollowsPayloadConformance(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("Wrapper", "empty")
	c := fx.sess.AST.Decls.AddCase(decl, fx.sess.Strings.Intern("full"), source.Span{})
	fx.sess.AST.Decls.AddPayloadField(c, source.NoStringID, fx.opaque("Blob"), source.Span{})
	target := fx.bodyTarget(decl)

	if derive.OffersDerivation(fx.sess, target, decl, iface.Hashable) {
		t.Fatal("opaque payload must block Hashable")
	}
}

func TestOffersDerivation_RawBacked(t *testing.T) {
	fx := newFixture()
	b := fx.sess.Types.Builtins()
	decl := fx.variant("Level", "low", "high")
	fx.sess.AST.Decls.Get(decl).RawType = b.Int
	target := fx.bodyTarget(decl)

	if !derive.OffersDerivation(fx.sess, target, decl, iface.RawRepresentable) {
		t.Fatal("declared backing type must offer RawRepresentable")
	}
	if !derive.OffersDerivation(fx.sess, target, decl, iface.CodingKey) {
		t.Fatal("int backing must offer CodingKey")
	}
}

func TestOffersDerivation_UnavailableCaseBlocksOrdinalOrder(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("Version", "v1", "v2")
	fx.sess.AST.Decls.Get(decl).HasUnavailableCase = true
	target := fx.bodyTarget(decl)

	if derive.OffersDerivation(fx.sess, target, decl, iface.Comparable) {
		t.Error("unavailable case must block Comparable")
	}
	if derive.OffersDerivation(fx.sess, target, decl, iface.CaseIterable) {
		t.Error("unavailable case must block CaseIterable")
	}
	if !derive.OffersDerivation(fx.sess, target, decl, iface.Equatable) {
		t.Error("Equatable does not depend on availability")
	}
}

func TestOffersDerivation_BridgedError(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("NetError", "timeout", "refused")
	fx.sess.AST.Decls.Get(decl).Interop = true
	target := fx.bodyTarget(decl)

	if !derive.OffersDerivation(fx.sess, target, decl, iface.BridgedError) {
		t.Fatal("interop payload-free variant must offer BridgedError")
	}

	empty := fx.variant("Empty")
	fx.sess.AST.Decls.Get(empty).Interop = true
	if derive.OffersDerivation(fx.sess, fx.bodyTarget(empty), empty, iface.BridgedError) {
		t.Fatal("caseless variant must not offer BridgedError")
	}
}

func TestOffersDerivation_ProductOptimisticCodable(t *testing.T) {
	fx := newFixture()
	b := fx.sess.Types.Builtins()
	decl := fx.product("Mixed",
		fieldSpec{label: "x", ty: b.Int},
		fieldSpec{label: "y", ty: fx.opaque("Blob")},
	)
	target := fx.bodyTarget(decl)

	// The answer stays yes even though the opaque field cannot encode;
	// synthesis performs the real check.
	if !derive.OffersDerivation(fx.sess, target, decl, iface.Encodable) {
		t.Fatal("Encodable must be offered optimistically")
	}
	if !derive.OffersDerivation(fx.sess, target, decl, iface.Decodable) {
		t.Fatal("Decodable must be offered optimistically")
	}
	if derive.OffersDerivation(fx.sess, target, decl, iface.Equatable) {
		t.Fatal("Equatable must verify stored member conformance")
	}
}

func TestOffersDerivation_Deterministic(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("Coin", "heads", "tails")
	target := fx.bodyTarget(decl)

	for _, k := range iface.All() {
		first := derive.OffersDerivation(fx.sess, target, decl, k)
		for i := 0; i < 3; i++ {
			if got := derive.OffersDerivation(fx.sess, target, decl, k); got != first {
				t.Fatalf("%s: answer changed between calls", k)
			}
		}
	}
	if derive.OffersDerivation(fx.sess, ast.NoTargetID, decl, iface.Equatable) !=
		derive.OffersDerivation(fx.sess, target, decl, iface.Equatable) {
		t.Fatal("answer must not depend on the target context")
	}
}
