package derive

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/source"
)

// Verdict is the outcome of a context-legality check. A denial names the
// rule violated and carries the spans of both the synthesis target and
// the type declaration, for diagnostics.
type Verdict struct {
	Allowed bool
	Code    diag.Code
	Reason  string
	Target  source.Span
	Type    source.Span
}

// Diagnostic renders a denial for the diagnostic path.
func (v Verdict) Diagnostic() diag.Diagnostic {
	return diag.NewError(v.Code, v.Target, v.Reason).
		WithNote(v.Type, "type declared here")
}

// CheckLegal decides whether synthesizing a member of the given kind for
// interface k is permitted at the target context. Rules, in order:
//
//  1. Synthesis across a file or module boundary is denied, except for
//     Equatable and Hashable on variants whose cases are all payload-free
//     (a narrow source-compatibility exception).
//  2. An initializer may not land in an extension of a non-final
//     reference type; the required initializer would be unsound under
//     subclassing.
//
// A denial aborts synthesis for the current requirement and has no side
// effects.
func CheckLegal(sess *Session, targetID ast.TargetID, declID ast.DeclID, k iface.Known, member ast.MemberKind) Verdict {
	target := sess.AST.Targets.Get(targetID)
	decl := sess.AST.Decls.Get(declID)
	if target == nil || decl == nil {
		return Verdict{
			Allowed: false,
			Code:    diag.UnknownCode,
			Reason:  "invalid synthesis request",
		}
	}

	allowCrossfile := false
	if k == iface.Equatable || k == iface.Hashable {
		allowCrossfile = decl.Kind == ast.DeclVariant && hasOnlyPayloadFreeCases(sess, decl)
	}
	if !allowCrossfile && target.File != decl.File {
		return Verdict{
			Allowed: false,
			Code:    diag.DeriveCrossFileExtension,
			Reason: fmt.Sprintf(
				"implementation of %s cannot be automatically synthesized in an extension in a different file or module",
				k),
			Target: target.Span,
			Type:   decl.Span,
		}
	}

	if decl.Kind == ast.DeclReference && !decl.IsFinal &&
		member == ast.MemberInit && target.Kind == ast.TargetExtension {
		return Verdict{
			Allowed: false,
			Code:    diag.DeriveInitInNonFinalExtension,
			Reason: fmt.Sprintf(
				"initializer requirement of %s cannot be synthesized in an extension of a non-final reference type",
				k),
			Target: target.Span,
			Type:   decl.Span,
		}
	}

	return Verdict{Allowed: true}
}
