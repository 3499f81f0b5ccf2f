package driver_test

import (
	"context"
	"errors"
	"testing"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/diag"
	"tern/internal/driver"
	"tern/internal/iface"
	"tern/internal/project"
	"tern/internal/source"
	"tern/internal/types"
)

const manifest = `
module = "app"

[[type]]
name = "Direction"
kind = "variant"
derive = ["Equatable", "CaseIterable", "Hashable"]
case = [{ name = "north" }, { name = "south" }, { name = "east" }]

[[type]]
name = "Point"
kind = "product"
derive = ["Equatable", "Comparable"]
field = [{ label = "x", type = "Int" }, { label = "y", type = "Int" }]

[[type]]
name = "Mixed"
kind = "product"
derive = ["Encodable"]
field = [{ label = "n", type = "Int" }, { label = "blob", type = "Blob" }]
`

func load(t *testing.T) (*derive.Session, []driver.Entry) {
	t.Helper()
	man, err := project.ParseManifest(manifest)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	sess, entries, err := driver.BuildSession(man)
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}
	return sess, entries
}

func TestDeriveAll_MixedOutcomes(t *testing.T) {
	sess, entries := load(t)
	requests := driver.Requests(entries)

	results, err := driver.DeriveAll(context.Background(), sess, requests, driver.Options{Jobs: 4})
	if err != nil {
		t.Fatalf("DeriveAll: %v", err)
	}
	if len(results) != len(requests) {
		t.Fatalf("results = %d, want %d", len(results), len(requests))
	}

	byName := func(name string, k iface.Known) driver.Result {
		for i, r := range results {
			var e driver.Entry
			for _, cand := range entries {
				if cand.Decl == r.Request.Decl {
					e = cand
				}
			}
			if e.Name == name && r.Request.Iface == k {
				return results[i]
			}
		}
		t.Fatalf("no result for %s/%s", name, k)
		return driver.Result{}
	}

	if r := byName("Direction", iface.Equatable); r.Err != nil || len(r.Members) != 1 {
		t.Fatalf("Direction/Equatable: %+v", r)
	}
	if r := byName("Direction", iface.CaseIterable); r.Err != nil || len(r.Members) != 1 {
		t.Fatalf("Direction/CaseIterable: %+v", r)
	}
	if r := byName("Point", iface.Equatable); r.Err != nil {
		t.Fatalf("Point/Equatable: %v", r.Err)
	}
	if r := byName("Point", iface.Comparable); !errors.Is(r.Err, derive.ErrIneligible) {
		t.Fatalf("Point/Comparable err = %v, want ErrIneligible", r.Err)
	}

	var sf *derive.StructuralFailure
	r := byName("Mixed", iface.Encodable)
	if !errors.As(r.Err, &sf) {
		t.Fatalf("Mixed/Encodable err = %v, want StructuralFailure", r.Err)
	}
	if !r.Bag.HasErrors() {
		t.Fatal("structural failure must report the offending field")
	}
}

// Two identical runs over identically loaded sessions must agree member
// for member.
func TestDeriveAll_Deterministic(t *testing.T) {
	run := func() []driver.Result {
		sess, entries := load(t)
		results, err := driver.DeriveAll(context.Background(), sess, driver.Requests(entries), driver.Options{Jobs: 8})
		if err != nil {
			t.Fatalf("DeriveAll: %v", err)
		}
		return results
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if (a[i].Err == nil) != (b[i].Err == nil) {
			t.Fatalf("request %d: outcome differs", i)
		}
		if len(a[i].Members) != len(b[i].Members) {
			t.Fatalf("request %d: member counts differ", i)
		}
		for j := range a[i].Members {
			if a[i].Members[j] != b[i].Members[j] {
				t.Fatalf("request %d member %d: handle differs", i, j)
			}
		}
	}
}

// Field signatures left unresolved at load time must be resolved before
// the eligibility workers fan out, so the workers only ever read shared
// declaration state. The unsynchronized call count doubles as the check:
// it is only safe to increment because resolution runs up front on one
// goroutine.
func TestDeriveAll_ResolvesSignaturesBeforeFanOut(t *testing.T) {
	sess := derive.NewSession()
	file := sess.Files.AddVirtual("app.tn", "app")
	nameID := sess.Strings.Intern("Pair")
	decl := sess.AST.Decls.New(ast.TypeDecl{
		Kind:   ast.DeclProduct,
		Name:   nameID,
		File:   file,
		Self:   sess.Types.RegisterNominal(nameID, source.Span{}),
		Access: ast.AccessInternal,
	})
	sess.RegisterDecl(decl)
	for _, label := range []string{"a", "b"} {
		sess.AST.Decls.AddStoredField(decl, sess.Strings.Intern(label), types.NoTypeID, source.Span{})
	}
	calls := 0
	sess.FieldResolver = func(ast.FieldID) types.TypeID {
		calls++
		return sess.Types.Builtins().Int
	}
	target := sess.AST.Targets.New(ast.TargetTypeBody, decl, file, source.Span{})

	var requests []driver.Request
	for _, k := range iface.All() {
		requests = append(requests, driver.Request{Decl: decl, Target: target, Iface: k})
	}
	results, err := driver.DeriveAll(context.Background(), sess, requests, driver.Options{Jobs: 4})
	if err != nil {
		t.Fatalf("DeriveAll: %v", err)
	}
	if calls != 2 {
		t.Fatalf("resolver calls = %d, want one per field", calls)
	}
	for _, r := range results {
		if r.Request.Iface == iface.Equatable && (r.Err != nil || len(r.Members) != 1) {
			t.Fatalf("Equatable after lazy resolution: %+v", r)
		}
	}
}

func TestDeriveAll_CanceledContext(t *testing.T) {
	sess, entries := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.DeriveAll(ctx, sess, driver.Requests(entries), driver.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBuildSession_UnknownInterface(t *testing.T) {
	man, err := project.ParseManifest(`
module = "app"
[[type]]
name = "T"
kind = "product"
derive = ["Flyable"]
`)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	_, _, err = driver.BuildSession(man)
	var unknown *driver.UnknownInterfaceError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownInterfaceError", err)
	}
	if d := unknown.Diagnostic(); d.Code != diag.DeriveUnknownInterface {
		t.Fatalf("diagnostic code = %s", d.Code)
	}
}
