package derive

import (
	"errors"
	"fmt"

	"tern/internal/ast"
	"tern/internal/iface"
)

// ErrIneligible marks a synthesis request the oracle never offered. Not a
// defect: a definitive "do not attempt," surfaced upstream as an ordinary
// unmet-requirement diagnostic.
var ErrIneligible = errors.New("derivation not offered for this type")

// IllegalContextError is a context-legality denial.
type IllegalContextError struct {
	Verdict Verdict
}

func (e *IllegalContextError) Error() string {
	return e.Verdict.Reason
}

// StructuralFailure reports that synthesis could not produce a body even
// though eligibility looked fine: either the optimistic Encodable /
// Decodable approval turned out wrong, or a payload field does not
// conform. Always traceable to specific fields.
type StructuralFailure struct {
	Decl   ast.DeclID
	Iface  iface.Known
	Fields []NonConforming
}

func (e *StructuralFailure) Error() string {
	return fmt.Sprintf("cannot synthesize %s: %d field(s) do not conform", e.Iface, len(e.Fields))
}
