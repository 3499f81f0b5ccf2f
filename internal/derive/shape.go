package derive

import (
	"tern/internal/ast"
	"tern/internal/types"
)

// Shape predicates: pure reads over a declaration's structure. Everything
// the eligibility oracle decides reduces to these.

// hasOnlyPayloadFreeCases reports whether no case of the variant carries
// associated fields. True for the empty variant.
func hasOnlyPayloadFreeCases(sess *Session, decl *ast.TypeDecl) bool {
	for _, c := range decl.Cases {
		if sess.AST.Decls.Case(c).HasPayload() {
			return false
		}
	}
	return true
}

func hasCases(decl *ast.TypeDecl) bool {
	return len(decl.Cases) > 0
}

func hasRawType(decl *ast.TypeDecl) bool {
	return decl.RawType != types.NoTypeID
}

// rawKind is the kind of the variant's backing representation, KindInvalid
// when no backing type is declared.
func rawKind(sess *Session, decl *ast.TypeDecl) types.Kind {
	if !hasRawType(decl) {
		return types.KindInvalid
	}
	return sess.Types.KindOf(decl.RawType)
}
