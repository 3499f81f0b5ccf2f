package iface

// ReqKind classifies a requirement by declaration kind.
type ReqKind uint8

const (
	ReqProperty ReqKind = iota
	ReqOperator
	ReqMethod
	ReqInitializer
	ReqAssociatedType
)

func (k ReqKind) String() string {
	switch k {
	case ReqProperty:
		return "property"
	case ReqOperator:
		return "operator"
	case ReqMethod:
		return "method"
	case ReqInitializer:
		return "initializer"
	case ReqAssociatedType:
		return "associated type"
	default:
		return "requirement"
	}
}

// Requirement is one named member an interface obliges a conforming type to
// supply. Matching is by base name plus ordered argument labels; full
// signature unification is deliberately not performed here.
type Requirement struct {
	Kind     ReqKind
	Name     string
	Labels   []string
	Failable bool
	Static   bool
}

// requirements holds the fixed per-interface tables. Adding an interface
// means one Known constant and one row here.
var requirements = map[Known][]Requirement{
	Equatable: {
		{Kind: ReqOperator, Name: "=="},
	},
	Hashable: {
		{Kind: ReqProperty, Name: "hashValue"},
		{Kind: ReqMethod, Name: "hash", Labels: []string{"into"}},
	},
	Comparable: {
		{Kind: ReqOperator, Name: "<"},
	},
	CaseIterable: {
		{Kind: ReqProperty, Name: "allCases", Static: true},
		{Kind: ReqAssociatedType, Name: "AllCases"},
	},
	RawRepresentable: {
		{Kind: ReqProperty, Name: "rawValue"},
		{Kind: ReqInitializer, Name: "init", Labels: []string{"rawValue"}, Failable: true},
		{Kind: ReqAssociatedType, Name: "RawValue"},
	},
	CodingKey: {
		{Kind: ReqProperty, Name: "stringValue"},
		{Kind: ReqProperty, Name: "intValue"},
		{Kind: ReqInitializer, Name: "init", Labels: []string{"stringValue"}, Failable: true},
		{Kind: ReqInitializer, Name: "init", Labels: []string{"intValue"}, Failable: true},
	},
	Encodable: {
		{Kind: ReqMethod, Name: "encode", Labels: []string{"to"}},
	},
	Decodable: {
		{Kind: ReqInitializer, Name: "init", Labels: []string{"from"}},
	},
	BridgedError: {
		{Kind: ReqProperty, Name: "errorDomain", Static: true},
	},
}

// Requirements returns the fixed requirement set of a known interface.
func Requirements(k Known) []Requirement {
	return requirements[k]
}

// LookupRequirement finds a requirement of k by base name. Direct member
// lookup within the interface's declared set, nothing transitive.
func LookupRequirement(k Known, name string) (Requirement, bool) {
	for _, r := range requirements[k] {
		if r.Name == name {
			return r, true
		}
	}
	return Requirement{}, false
}

func labelsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Match reports whether a member with the given kind, base name and ordered
// argument labels matches r.
func (r Requirement) Match(kind ReqKind, name string, labels []string) bool {
	return r.Kind == kind && r.Name == name && labelsEqual(r.Labels, labels)
}
