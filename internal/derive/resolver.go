package derive

import (
	"tern/internal/ast"
	"tern/internal/iface"
)

// Unmet describes an unsatisfied named member of some type: its
// declaration kind, base name, and ordered argument labels. This is the
// syntactic shape the resolver pre-filters on; no type unification
// happens here.
type Unmet struct {
	Kind     iface.ReqKind
	Name     string
	Labels   []string
	Failable bool
}

// ResolveSynthesizer maps an unmet requirement back to the known
// interface whose synthesis path is responsible for producing it. The
// candidate found by name/label matching is returned only when the
// eligibility oracle still approves deriving that interface for the
// enclosing type; when the type already satisfies the interface through a
// witness, the oracle is re-asked in that witness's context.
func ResolveSynthesizer(sess *Session, declID ast.DeclID, unmet Unmet) (iface.Known, bool) {
	decl := sess.AST.Decls.Get(declID)
	if decl == nil {
		return iface.Unknown, false
	}

	attempt := func(k iface.Known) (iface.Known, bool) {
		if _, ok := sess.LookupRequirement(k, unmet.Name); !ok {
			return iface.Unknown, false
		}
		ctx := ast.NoTargetID
		if w, ok := sess.TestSatisfaction(decl.Self, k); ok {
			ctx = w.Target
		}
		if !OffersDerivation(sess, ctx, declID, k) {
			return iface.Unknown, false
		}
		return k, true
	}

	switch unmet.Kind {
	case iface.ReqProperty:
		switch unmet.Name {
		case "rawValue":
			return attempt(iface.RawRepresentable)
		case "hashValue":
			return attempt(iface.Hashable)
		case "allCases":
			return attempt(iface.CaseIterable)
		case "errorDomain":
			return attempt(iface.BridgedError)
		case "stringValue", "intValue":
			return attempt(iface.CodingKey)
		}

	case iface.ReqOperator:
		switch unmet.Name {
		case "<":
			return attempt(iface.Comparable)
		case "==":
			return attempt(iface.Equatable)
		}

	case iface.ReqMethod:
		if len(unmet.Labels) == 1 {
			if unmet.Name == "encode" && unmet.Labels[0] == "to" {
				return attempt(iface.Encodable)
			}
			if unmet.Name == "hash" && unmet.Labels[0] == "into" {
				return attempt(iface.Hashable)
			}
		}

	case iface.ReqInitializer:
		if len(unmet.Labels) == 1 {
			switch unmet.Labels[0] {
			case "rawValue":
				return attempt(iface.RawRepresentable)
			case "stringValue", "intValue":
				if unmet.Failable {
					return attempt(iface.CodingKey)
				}
			case "from":
				return attempt(iface.Decodable)
			}
		}

	case iface.ReqAssociatedType:
		switch unmet.Name {
		case "RawValue":
			return attempt(iface.RawRepresentable)
		case "AllCases":
			return attempt(iface.CaseIterable)
		}
	}
	return iface.Unknown, false
}
