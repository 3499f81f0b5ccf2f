package diag

import (
	"testing"

	"tern/internal/source"
)

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 1, Start: 0, End: 1}
	if !b.Add(NewError(DeriveNotEligible, sp, "first")) {
		t.Fatalf("first add must fit")
	}
	if !b.Add(NewError(DeriveNotEligible, sp, "second")) {
		t.Fatalf("second add must fit")
	}
	if b.Add(NewError(DeriveNotEligible, sp, "third")) {
		t.Fatalf("cap of 2 must reject the third diagnostic")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(DeriveFieldNotConforming, source.Span{File: 2, Start: 5, End: 6}, "b"))
	b.Add(NewError(DeriveCrossFileExtension, source.Span{File: 1, Start: 9, End: 12}, "a"))
	b.Add(New(SevWarning, DeriveInfo, source.Span{File: 1, Start: 9, End: 12}, "w"))
	b.Sort()
	items := b.Items()
	if items[0].Primary.File != 1 || items[0].Severity != SevError {
		t.Fatalf("sort must order by file then severity desc: %+v", items[0])
	}
	if items[2].Primary.File != 2 {
		t.Fatalf("file 2 must sort last")
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(4)
	sp := source.Span{File: 1, Start: 3, End: 7}
	b.Add(NewError(DeriveFieldNotConforming, sp, "field y"))
	b.Add(NewError(DeriveFieldNotConforming, sp, "field y"))
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("dedup must collapse identical code+span, got %d", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(New(SevInfo, DeriveInfo, source.Span{}, "note"))
	if b.HasErrors() {
		t.Fatalf("info-only bag must not report errors")
	}
	b.Add(NewError(DeriveNotEligible, source.Span{}, "boom"))
	if !b.HasErrors() {
		t.Fatalf("bag with an error must report it")
	}
}
