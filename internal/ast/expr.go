package ast

import (
	"tern/internal/source"
	"tern/internal/types"
)

// ExprKind enumerates synthesized expression forms.
type ExprKind uint8

const (
	ExprSelf ExprKind = iota
	ExprLocalRef
	ExprIntLit
	ExprStringLit
	ExprCaseRef
	ExprBinary
	ExprArray
	ExprCall
	ExprFieldRef
	ExprBoolLit
)

// BinaryOp enumerates the operators the synthesis builder emits.
type BinaryOp uint8

const (
	OpEq BinaryOp = iota
	OpLt
	OpAnd
)

func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpLt:
		return "<"
	case OpAnd:
		return "&&"
	default:
		return "?"
	}
}

// Expr is a synthesized expression. Every expression carries its type:
// the builder never produces untyped fragments.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Type    types.TypeID
	Payload uint32
}

type ExprSelfData struct {
	Fn FuncID
}

type ExprLocalRefData struct {
	Local LocalID
}

type ExprIntLitData struct {
	Value uint64
}

type ExprStringLitData struct {
	Value source.StringID
}

type ExprCaseRefData struct {
	Case CaseID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprArrayData struct {
	Elems []ExprID
}

// CallArg is one (optionally labeled) argument of a generated call.
type CallArg struct {
	Label source.StringID
	Value ExprID
}

type ExprCallData struct {
	Callee source.StringID
	Args   []CallArg
}

// ExprFieldRefData projects a stored field out of a base expression.
type ExprFieldRefData struct {
	Base  ExprID
	Field FieldID
}

type ExprBoolLitData struct {
	Value bool
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Selfs      *Arena[ExprSelfData]
	LocalRefs  *Arena[ExprLocalRefData]
	IntLits    *Arena[ExprIntLitData]
	StringLits *Arena[ExprStringLitData]
	CaseRefs   *Arena[ExprCaseRefData]
	Binaries   *Arena[ExprBinaryData]
	Arrays     *Arena[ExprArrayData]
	Calls      *Arena[ExprCallData]
	FieldRefs  *Arena[ExprFieldRefData]
	BoolLits   *Arena[ExprBoolLitData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Selfs:      NewArena[ExprSelfData](capHint),
		LocalRefs:  NewArena[ExprLocalRefData](capHint),
		IntLits:    NewArena[ExprIntLitData](capHint),
		StringLits: NewArena[ExprStringLitData](capHint),
		CaseRefs:   NewArena[ExprCaseRefData](capHint),
		Binaries:   NewArena[ExprBinaryData](capHint),
		Arrays:     NewArena[ExprArrayData](capHint),
		Calls:      NewArena[ExprCallData](capHint),
		FieldRefs:  NewArena[ExprFieldRefData](capHint),
		BoolLits:   NewArena[ExprBoolLitData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, ty types.TypeID, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Type:    ty,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewSelf creates a reference to the implicit receiver of fn, typed to the
// receiver's type.
func (e *Exprs) NewSelf(span source.Span, fn FuncID, receiver types.TypeID) ExprID {
	payload := e.Selfs.Allocate(ExprSelfData{Fn: fn})
	return e.new(ExprSelf, span, receiver, payload)
}

// Self returns the self-reference data for the given expression ID.
func (e *Exprs) Self(id ExprID) (*ExprSelfData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSelf {
		return nil, false
	}
	return e.Selfs.Get(expr.Payload), true
}

// NewLocalRef creates a reference to a generated local binding.
func (e *Exprs) NewLocalRef(span source.Span, local LocalID, ty types.TypeID) ExprID {
	payload := e.LocalRefs.Allocate(ExprLocalRefData{Local: local})
	return e.new(ExprLocalRef, span, ty, payload)
}

// LocalRef returns the local-reference data for the given expression ID.
func (e *Exprs) LocalRef(id ExprID) (*ExprLocalRefData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLocalRef {
		return nil, false
	}
	return e.LocalRefs.Get(expr.Payload), true
}

// NewIntLit creates an already-typed integer literal.
func (e *Exprs) NewIntLit(span source.Span, value uint64, ty types.TypeID) ExprID {
	payload := e.IntLits.Allocate(ExprIntLitData{Value: value})
	return e.new(ExprIntLit, span, ty, payload)
}

// IntLit returns the integer-literal data for the given expression ID.
func (e *Exprs) IntLit(id ExprID) (*ExprIntLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIntLit {
		return nil, false
	}
	return e.IntLits.Get(expr.Payload), true
}

// NewStringLit creates an already-typed string literal.
func (e *Exprs) NewStringLit(span source.Span, value source.StringID, ty types.TypeID) ExprID {
	payload := e.StringLits.Allocate(ExprStringLitData{Value: value})
	return e.new(ExprStringLit, span, ty, payload)
}

// StringLit returns the string-literal data for the given expression ID.
func (e *Exprs) StringLit(id ExprID) (*ExprStringLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStringLit {
		return nil, false
	}
	return e.StringLits.Get(expr.Payload), true
}

// NewCaseRef creates a reference to a variant case value.
func (e *Exprs) NewCaseRef(span source.Span, c CaseID, ty types.TypeID) ExprID {
	payload := e.CaseRefs.Allocate(ExprCaseRefData{Case: c})
	return e.new(ExprCaseRef, span, ty, payload)
}

// CaseRef returns the case-reference data for the given expression ID.
func (e *Exprs) CaseRef(id ExprID) (*ExprCaseRefData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCaseRef {
		return nil, false
	}
	return e.CaseRefs.Get(expr.Payload), true
}

// NewBinary creates a binary expression with the given result type.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID, ty types.TypeID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, ty, payload)
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(expr.Payload), true
}

// NewArray creates an array literal expression.
func (e *Exprs) NewArray(span source.Span, elems []ExprID, ty types.TypeID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, ty, payload)
}

// Array returns the array data for the given expression ID.
func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(expr.Payload), true
}

// NewCall creates a generated call expression.
func (e *Exprs) NewCall(span source.Span, callee source.StringID, args []CallArg, ty types.TypeID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, ty, payload)
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(expr.Payload), true
}

// NewFieldRef projects a stored field out of base, typed to the field's type.
func (e *Exprs) NewFieldRef(span source.Span, base ExprID, field FieldID, ty types.TypeID) ExprID {
	payload := e.FieldRefs.Allocate(ExprFieldRefData{Base: base, Field: field})
	return e.new(ExprFieldRef, span, ty, payload)
}

// FieldRef returns the field-reference data for the given expression ID.
func (e *Exprs) FieldRef(id ExprID) (*ExprFieldRefData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFieldRef {
		return nil, false
	}
	return e.FieldRefs.Get(expr.Payload), true
}

// NewBoolLit creates an already-typed boolean literal.
func (e *Exprs) NewBoolLit(span source.Span, value bool, ty types.TypeID) ExprID {
	payload := e.BoolLits.Allocate(ExprBoolLitData{Value: value})
	return e.new(ExprBoolLit, span, ty, payload)
}

// BoolLit returns the boolean-literal data for the given expression ID.
func (e *Exprs) BoolLit(id ExprID) (*ExprBoolLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBoolLit {
		return nil, false
	}
	return e.BoolLits.Get(expr.Payload), true
}
