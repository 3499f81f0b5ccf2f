package iface

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for _, k := range All() {
		got, ok := Parse(k.String())
		if !ok || got != k {
			t.Fatalf("Parse(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := Parse("Sendable"); ok {
		t.Fatalf("interfaces outside the closed set must not parse")
	}
}

func TestEveryKnownHasRequirements(t *testing.T) {
	for _, k := range All() {
		if len(Requirements(k)) == 0 {
			t.Fatalf("%v has no requirement table", k)
		}
	}
}

func TestLookupRequirement(t *testing.T) {
	r, ok := LookupRequirement(RawRepresentable, "rawValue")
	if !ok || r.Kind != ReqProperty {
		t.Fatalf("rawValue must be a property requirement of RawRepresentable")
	}
	if _, ok := LookupRequirement(Equatable, "rawValue"); ok {
		t.Fatalf("lookup must stay within the interface's own set")
	}
}

func TestRequirementMatchLabels(t *testing.T) {
	r, _ := LookupRequirement(Encodable, "encode")
	if !r.Match(ReqMethod, "encode", []string{"to"}) {
		t.Fatalf("encode(to:) must match its own descriptor")
	}
	if r.Match(ReqMethod, "encode", []string{"into"}) {
		t.Fatalf("label list is part of the requirement identity")
	}
	if r.Match(ReqMethod, "encode", nil) {
		t.Fatalf("arity is part of the requirement identity")
	}
}
