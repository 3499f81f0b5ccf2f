package ast

import (
	"tern/internal/source"
	"tern/internal/types"
)

// MemberKind classifies a synthesized member.
type MemberKind uint8

const (
	MemberProperty MemberKind = iota
	MemberFunc
	MemberInit
	MemberLocal
)

func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberFunc:
		return "function"
	case MemberInit:
		return "initializer"
	case MemberLocal:
		return "local binding"
	default:
		return "member"
	}
}

// StorageKind is the storage classification of a property.
type StorageKind uint8

const (
	StorageStored StorageKind = iota
	StorageImmutableComputed
)

// Member is one synthesized declaration attached to a Target.
type Member struct {
	Kind    MemberKind
	Name    source.StringID
	Span    source.Span
	Payload uint32
}

// PropertyData backs MemberProperty: a computed read-only property plus
// its generated accessor.
type PropertyData struct {
	Type     types.TypeID
	Storage  StorageKind
	Accessor FuncID
	Static   bool
}

// Param is one parameter of a generated function or initializer. The
// parameter's value is bound through a generated local so function bodies
// can reference it.
type Param struct {
	Label source.StringID // NoStringID = unlabeled
	Local LocalID
	Type  types.TypeID
}

// FuncData backs MemberFunc and property accessors.
type FuncData struct {
	Name       source.StringID
	Params     []Param
	Result     types.TypeID
	Self       types.TypeID // receiver type; NoTypeID when static
	Body       []StmtID
	Implicit   bool
	Access     Access
	GenericEnv uint32
	Static     bool
}

// InitData backs MemberInit. The generated function carries the
// initializer's parameters and body; in a failable initializer a return
// with no value means "fail" (return nil).
type InitData struct {
	Fn       FuncID
	Failable bool
}

// Local is a generated local variable binding, used standalone inside
// generated bodies and as the target of destructuring patterns.
type Local struct {
	Name source.StringID
	Span source.Span
	Type types.TypeID
	Let  bool // immutable binding
}

// Members manages allocation of synthesized members and their parts.
type Members struct {
	Arena      *Arena[Member]
	Properties *Arena[PropertyData]
	Funcs      *Arena[FuncData]
	Inits      *Arena[InitData]
	Locals     *Arena[Local]
}

func NewMembers(capHint uint) *Members {
	return &Members{
		Arena:      NewArena[Member](capHint),
		Properties: NewArena[PropertyData](capHint),
		Funcs:      NewArena[FuncData](capHint),
		Inits:      NewArena[InitData](capHint),
		Locals:     NewArena[Local](capHint),
	}
}

func (m *Members) new(kind MemberKind, name source.StringID, span source.Span, payload uint32) MemberID {
	return MemberID(m.Arena.Allocate(Member{
		Kind:    kind,
		Name:    name,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the member with the given ID.
func (m *Members) Get(id MemberID) *Member {
	return m.Arena.Get(uint32(id))
}

// NewFunc allocates a generated function body container.
func (m *Members) NewFunc(data FuncData) FuncID {
	return FuncID(m.Funcs.Allocate(data))
}

// Func returns the function data for the given ID.
func (m *Members) Func(id FuncID) *FuncData {
	return m.Funcs.Get(uint32(id))
}

// NewLocal allocates a generated local binding.
func (m *Members) NewLocal(local Local) LocalID {
	return LocalID(m.Locals.Allocate(local))
}

// Local returns the local binding for the given ID.
func (m *Members) Local(id LocalID) *Local {
	return m.Locals.Get(uint32(id))
}

// NewProperty wraps property data into a member.
func (m *Members) NewProperty(name source.StringID, span source.Span, data PropertyData) MemberID {
	payload := m.Properties.Allocate(data)
	return m.new(MemberProperty, name, span, payload)
}

// Property returns the property data of a MemberProperty.
func (m *Members) Property(id MemberID) (*PropertyData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberProperty {
		return nil, false
	}
	return m.Properties.Get(member.Payload), true
}

// NewFuncMember wraps an allocated function into a member.
func (m *Members) NewFuncMember(name source.StringID, span source.Span, fn FuncID) MemberID {
	return m.new(MemberFunc, name, span, uint32(fn))
}

// FuncOf returns the function data of a MemberFunc.
func (m *Members) FuncOf(id MemberID) (*FuncData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberFunc {
		return nil, false
	}
	return m.Funcs.Get(member.Payload), true
}

// NewInitMember wraps initializer data into a member.
func (m *Members) NewInitMember(name source.StringID, span source.Span, data InitData) MemberID {
	payload := m.Inits.Allocate(data)
	return m.new(MemberInit, name, span, payload)
}

// Init returns the initializer data of a MemberInit.
func (m *Members) Init(id MemberID) (*InitData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberInit {
		return nil, false
	}
	return m.Inits.Get(member.Payload), true
}

// NewLocalMember wraps a local binding into a member.
func (m *Members) NewLocalMember(name source.StringID, span source.Span, local LocalID) MemberID {
	return m.new(MemberLocal, name, span, uint32(local))
}

// LocalOf returns the local binding of a MemberLocal.
func (m *Members) LocalOf(id MemberID) (*Local, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberLocal {
		return nil, false
	}
	return m.Locals.Get(member.Payload), true
}
