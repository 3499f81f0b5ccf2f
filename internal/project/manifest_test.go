package project

import (
	"strings"
	"testing"
)

const suitManifest = `
module = "cards"

[[type]]
name = "Suit"
kind = "variant"
derive = ["Equatable", "CaseIterable"]

  [[type.case]]
  name = "hearts"

  [[type.case]]
  name = "spades"
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(suitManifest)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if m.Module != "cards" {
		t.Fatalf("module = %q", m.Module)
	}
	if len(m.Types) != 1 || m.Types[0].Name != "Suit" {
		t.Fatalf("types = %+v", m.Types)
	}
	if len(m.Types[0].Cases) != 2 || m.Types[0].Cases[1].Name != "spades" {
		t.Fatalf("case order lost: %+v", m.Types[0].Cases)
	}
	if m.Types[0].File != "Suit.tn" {
		t.Fatalf("default file = %q", m.Types[0].File)
	}
}

func TestParseManifestRejectsUnknownKind(t *testing.T) {
	_, err := ParseManifest(`
[[type]]
name = "X"
kind = "tagged"
`)
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("expected unknown-kind error, got %v", err)
	}
}

func TestParseManifestRejectsDuplicates(t *testing.T) {
	_, err := ParseManifest(`
[[type]]
name = "X"
kind = "product"

[[type]]
name = "X"
kind = "product"
`)
	if err == nil || !strings.Contains(err.Error(), "duplicate type") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestParseManifestVariantFieldsRejected(t *testing.T) {
	_, err := ParseManifest(`
[[type]]
name = "X"
kind = "variant"

  [[type.field]]
  label = "x"
  type = "int"
`)
	if err == nil {
		t.Fatalf("variant with stored fields must be rejected")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var a, b Digest
	a[0] = 1
	b[0] = 2
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("combine must be order sensitive")
	}
}
