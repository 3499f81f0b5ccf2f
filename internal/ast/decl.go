package ast

import (
	"tern/internal/source"
	"tern/internal/types"
)

// DeclKind classifies a user-declared nominal type.
type DeclKind uint8

const (
	DeclVariant DeclKind = iota
	DeclProduct
	DeclReference
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariant:
		return "variant"
	case DeclProduct:
		return "product"
	case DeclReference:
		return "reference"
	default:
		return "decl"
	}
}

// Access is the declared access level of a type or member.
type Access uint8

const (
	AccessPrivate Access = iota
	AccessInternal
	AccessPublic
)

// TypeDecl is a user-visible nominal type declaration. The derivation
// engine reads it and never mutates its shape; synthesized members go
// into a Target instead.
type TypeDecl struct {
	Kind DeclKind
	Name source.StringID
	Span source.Span
	File source.FileID
	Self types.TypeID

	// RawType is the backing representation of a variant with a scalar
	// encoding, NoTypeID when absent.
	RawType types.TypeID

	HasUnavailableCase bool
	Interop            bool
	IsFinal            bool // references only

	Access     Access
	GenericEnv uint32 // 0 = no generic environment

	Cases  []CaseID  // variants, declaration order
	Fields []FieldID // product/reference stored members, declaration order
}

// Case is one alternative of a variant type. Ordinal is the 0-based
// declaration-order index and is assigned exactly once, at append time.
type Case struct {
	Name    source.StringID
	Span    source.Span
	Decl    DeclID
	Ordinal uint32

	Fields []FieldID // payload, field order

	// Raw value for variants with a backing representation.
	RawInt    int64
	RawString source.StringID
	RawIsSet  bool
}

// HasPayload reports whether the case carries associated fields.
func (c *Case) HasPayload() bool {
	return len(c.Fields) > 0
}

// Field is a typed (optionally labeled) component: a case payload field or
// a stored member of a product/reference type.
type Field struct {
	Label source.StringID // NoStringID = unlabeled
	Type  types.TypeID    // may stay NoTypeID until lazily resolved
	Span  source.Span
}

// Decls manages allocation of type declarations and their parts.
type Decls struct {
	Arena  *Arena[TypeDecl]
	Cases  *Arena[Case]
	Fields *Arena[Field]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{
		Arena:  NewArena[TypeDecl](capHint),
		Cases:  NewArena[Case](capHint),
		Fields: NewArena[Field](capHint),
	}
}

// New allocates a declaration shell; cases and fields are appended after.
func (d *Decls) New(decl TypeDecl) DeclID {
	return DeclID(d.Arena.Allocate(decl))
}

func (d *Decls) Get(id DeclID) *TypeDecl {
	return d.Arena.Get(uint32(id))
}

// AddCase appends a case to a variant declaration, assigning the next
// ordinal. The ordinal is canonical from this point on and is never
// recomputed elsewhere.
func (d *Decls) AddCase(declID DeclID, name source.StringID, span source.Span) CaseID {
	decl := d.Get(declID)
	id := CaseID(d.Cases.Allocate(Case{
		Name:    name,
		Span:    span,
		Decl:    declID,
		Ordinal: uint32(len(decl.Cases)),
	}))
	decl.Cases = append(decl.Cases, id)
	return id
}

func (d *Decls) Case(id CaseID) *Case {
	return d.Cases.Get(uint32(id))
}

// AddPayloadField appends a payload field to a case.
func (d *Decls) AddPayloadField(caseID CaseID, label source.StringID, ty types.TypeID, span source.Span) FieldID {
	id := FieldID(d.Fields.Allocate(Field{Label: label, Type: ty, Span: span}))
	c := d.Case(caseID)
	c.Fields = append(c.Fields, id)
	return id
}

// AddStoredField appends a stored member field to a product or reference
// declaration.
func (d *Decls) AddStoredField(declID DeclID, label source.StringID, ty types.TypeID, span source.Span) FieldID {
	id := FieldID(d.Fields.Allocate(Field{Label: label, Type: ty, Span: span}))
	decl := d.Get(declID)
	decl.Fields = append(decl.Fields, id)
	return id
}

func (d *Decls) Field(id FieldID) *Field {
	return d.Fields.Get(uint32(id))
}

// SetRawValue records the scalar raw value of a case.
func (d *Decls) SetRawValue(caseID CaseID, intVal int64, strVal source.StringID) {
	c := d.Case(caseID)
	c.RawInt = intVal
	c.RawString = strVal
	c.RawIsSet = true
}
