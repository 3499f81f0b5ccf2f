package derive_test

import (
	"testing"

	"tern/internal/derive"
	"tern/internal/iface"
	"tern/internal/project"
	"tern/internal/source"
)

func TestShapeDigest_StableAndSensitive(t *testing.T) {
	fx1 := newFixture()
	d1 := fx1.variant("Direction", "north", "south")
	fx2 := newFixture()
	d2 := fx2.variant("Direction", "north", "south")

	if derive.ShapeDigest(fx1.sess, d1) != derive.ShapeDigest(fx2.sess, d2) {
		t.Fatal("identical shapes must digest identically across sessions")
	}

	fx2.sess.AST.Decls.AddCase(d2, fx2.sess.Strings.Intern("east"), source.Span{})
	if derive.ShapeDigest(fx1.sess, d1) == derive.ShapeDigest(fx2.sess, d2) {
		t.Fatal("adding a case must change the digest")
	}

	fx3 := newFixture()
	d3 := fx3.variant("Direction", "south", "north")
	if derive.ShapeDigest(fx1.sess, d1) == derive.ShapeDigest(fx3.sess, d3) {
		t.Fatal("case order is part of the shape")
	}
}

func TestDiskCache_PutGet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := derive.OpenDiskCache("tern-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	var key project.Digest
	key[0] = 7
	in := &derive.DecisionPayload{
		Schema:  1,
		Shape:   key,
		Offered: map[uint8]bool{uint8(iface.Equatable): true},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out derive.DecisionPayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if out.Shape != key || !out.Offered[uint8(iface.Equatable)] {
		t.Fatalf("payload mismatch: %+v", out)
	}

	var other project.Digest
	other[0] = 8
	if hit, err := cache.Get(other, &out); err != nil || hit {
		t.Fatalf("expected clean miss, hit=%v err=%v", hit, err)
	}
}

func TestCachedOffers_WarmAnswersMatchOracle(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := derive.OpenDiskCache("tern-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	fx := newFixture()
	decl := fx.variant("Direction", "north", "south")
	target := fx.bodyTarget(decl)

	for _, k := range iface.All() {
		cold, err := derive.CachedOffers(fx.sess, cache, target, decl, k)
		if err != nil {
			t.Fatalf("%s cold: %v", k, err)
		}
		warm, err := derive.CachedOffers(fx.sess, cache, target, decl, k)
		if err != nil {
			t.Fatalf("%s warm: %v", k, err)
		}
		direct := derive.OffersDerivation(fx.sess, target, decl, k)
		if cold != direct || warm != direct {
			t.Fatalf("%s: cold=%v warm=%v direct=%v", k, cold, warm, direct)
		}
	}
}
