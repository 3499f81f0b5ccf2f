package ast

import (
	"tern/internal/source"
	"tern/internal/types"
)

// PatternKind enumerates synthesized pattern forms.
type PatternKind uint8

const (
	// PatternCase matches one variant case, with an optional payload
	// subpattern.
	PatternCase PatternKind = iota
	// PatternBind binds a freshly named immutable local.
	PatternBind
	// PatternParen wraps a single unlabeled payload binding.
	PatternParen
	// PatternTuple destructures a multi-field payload, preserving labels.
	PatternTuple
	// PatternLiteral matches a scalar literal, used by raw-value dispatch.
	PatternLiteral
)

// Pattern is a synthesized, already-typed pattern fragment.
type Pattern struct {
	Kind    PatternKind
	Span    source.Span
	Type    types.TypeID
	Payload uint32
}

type PatternCaseData struct {
	Case CaseID
	Sub  PatternID // NoPatternID when the case has no payload
}

type PatternBindData struct {
	Local LocalID
}

type PatternParenData struct {
	Sub PatternID
}

// TupleElt is one element of a tuple pattern; Label preserves the payload
// field's original label.
type TupleElt struct {
	Label source.StringID
	Sub   PatternID
}

type PatternTupleData struct {
	Elems []TupleElt
}

type PatternLiteralData struct {
	Value ExprID
}

// Patterns manages allocation of patterns.
type Patterns struct {
	Arena  *Arena[Pattern]
	Cases  *Arena[PatternCaseData]
	Binds  *Arena[PatternBindData]
	Parens *Arena[PatternParenData]
	Tuples *Arena[PatternTupleData]
	Lits   *Arena[PatternLiteralData]
}

func NewPatterns(capHint uint) *Patterns {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Patterns{
		Arena:  NewArena[Pattern](capHint),
		Cases:  NewArena[PatternCaseData](capHint),
		Binds:  NewArena[PatternBindData](capHint),
		Parens: NewArena[PatternParenData](capHint),
		Tuples: NewArena[PatternTupleData](capHint),
		Lits:   NewArena[PatternLiteralData](capHint),
	}
}

func (p *Patterns) new(kind PatternKind, span source.Span, ty types.TypeID, payload uint32) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{
		Kind:    kind,
		Span:    span,
		Type:    ty,
		Payload: payload,
	}))
}

// Get returns the pattern with the given ID.
func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}

// NewCase creates a case pattern typed to the variant's type.
func (p *Patterns) NewCase(span source.Span, c CaseID, sub PatternID, ty types.TypeID) PatternID {
	payload := p.Cases.Allocate(PatternCaseData{Case: c, Sub: sub})
	return p.new(PatternCase, span, ty, payload)
}

// Case returns the case-pattern data for the given ID.
func (p *Patterns) Case(id PatternID) (*PatternCaseData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatternCase {
		return nil, false
	}
	return p.Cases.Get(pat.Payload), true
}

// NewBind creates a binding pattern for a generated local.
func (p *Patterns) NewBind(span source.Span, local LocalID, ty types.TypeID) PatternID {
	payload := p.Binds.Allocate(PatternBindData{Local: local})
	return p.new(PatternBind, span, ty, payload)
}

// Bind returns the bind-pattern data for the given ID.
func (p *Patterns) Bind(id PatternID) (*PatternBindData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatternBind {
		return nil, false
	}
	return p.Binds.Get(pat.Payload), true
}

// NewParen wraps a subpattern in parentheses.
func (p *Patterns) NewParen(span source.Span, sub PatternID, ty types.TypeID) PatternID {
	payload := p.Parens.Allocate(PatternParenData{Sub: sub})
	return p.new(PatternParen, span, ty, payload)
}

// Paren returns the paren-pattern data for the given ID.
func (p *Patterns) Paren(id PatternID) (*PatternParenData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatternParen {
		return nil, false
	}
	return p.Parens.Get(pat.Payload), true
}

// NewTuple creates a tuple pattern.
func (p *Patterns) NewTuple(span source.Span, elems []TupleElt, ty types.TypeID) PatternID {
	payload := p.Tuples.Allocate(PatternTupleData{Elems: elems})
	return p.new(PatternTuple, span, ty, payload)
}

// Tuple returns the tuple-pattern data for the given ID.
func (p *Patterns) Tuple(id PatternID) (*PatternTupleData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatternTuple {
		return nil, false
	}
	return p.Tuples.Get(pat.Payload), true
}

// NewLiteral creates a literal pattern.
func (p *Patterns) NewLiteral(span source.Span, value ExprID, ty types.TypeID) PatternID {
	payload := p.Lits.Allocate(PatternLiteralData{Value: value})
	return p.new(PatternLiteral, span, ty, payload)
}

// Literal returns the literal-pattern data for the given ID.
func (p *Patterns) Literal(id PatternID) (*PatternLiteralData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatternLiteral {
		return nil, false
	}
	return p.Lits.Get(pat.Payload), true
}
