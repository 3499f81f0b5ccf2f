package derive

import (
	"tern/internal/ast"
	"tern/internal/iface"
	"tern/internal/types"
)

// OffersDerivation reports whether automatic derivation of k is offered
// for the declared type. Pure and deterministic over the declaration's
// shape: calling it twice with an unchanged declaration yields the same
// answer.
//
// For Encodable and Decodable the answer is optimistic: the oracle says
// yes for any product or reference type without verifying that every
// stored member can actually produce a witness. Callers must treat those
// two answers as provisional; Synthesize performs the real check and
// raises a diagnosable failure when the promise cannot be kept.
func OffersDerivation(sess *Session, target ast.TargetID, declID ast.DeclID, k iface.Known) bool {
	_ = target // eligibility depends on type shape only; legality owns the context rules
	decl := sess.AST.Decls.Get(declID)
	if decl == nil || k == iface.Unknown {
		return false
	}

	// Hashable can always be re-derived, even to complete a partial
	// hand-written implementation, as long as every component hashes.
	if k == iface.Hashable {
		return AllFieldsConform(sess, declID, iface.Hashable)
	}

	switch decl.Kind {
	case ast.DeclVariant:
		switch k {
		case iface.RawRepresentable:
			// A declared backing type is an explicit request to derive.
			return hasRawType(decl)
		case iface.Equatable:
			return canDeriveEquatable(sess, declID, decl)
		case iface.Comparable:
			// An availability-guarded case would make ordinals
			// non-portable across deployment targets.
			return !decl.HasUnavailableCase && hasOnlyPayloadFreeCases(sess, decl)
		case iface.CaseIterable:
			return !decl.HasUnavailableCase && hasOnlyPayloadFreeCases(sess, decl)
		case iface.BridgedError:
			return decl.Interop && hasCases(decl) && hasOnlyPayloadFreeCases(sess, decl)
		case iface.CodingKey:
			if hasRawType(decl) {
				rk := rawKind(sess, decl)
				return rk == types.KindString || rk == types.KindInt
			}
			// Payload-free variants qualify; the empty variant too.
			return hasOnlyPayloadFreeCases(sess, decl)
		default:
			return false
		}

	case ast.DeclProduct, ast.DeclReference:
		if k == iface.Encodable || k == iface.Decodable {
			return true // provisional, see above
		}
		if decl.Kind == ast.DeclProduct && k == iface.Equatable {
			return canDeriveEquatable(sess, declID, decl)
		}
		return false
	}
	return false
}

// canDeriveEquatable holds for variants with no payload-bearing case and
// for products whose every stored member is itself Equatable.
func canDeriveEquatable(sess *Session, declID ast.DeclID, decl *ast.TypeDecl) bool {
	if decl.Kind == ast.DeclVariant {
		return hasOnlyPayloadFreeCases(sess, decl)
	}
	return AllFieldsConform(sess, declID, iface.Equatable)
}
