package ast

import (
	"tern/internal/source"
)

// StmtKind enumerates synthesized statement forms.
type StmtKind uint8

const (
	StmtLocalBind StmtKind = iota
	StmtAssign
	StmtSwitch
	StmtReturn
	StmtExpr
)

// Stmt is a synthesized statement.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload uint32
}

// StmtLocalBindData declares a local binding with an optional initializer
// (NoExprID means unbound).
type StmtLocalBindData struct {
	Local LocalID
	Init  ExprID
}

type StmtAssignData struct {
	Target ExprID
	Value  ExprID
}

// StmtSwitchData is a case-dispatch statement. Dispatch over a variant
// subject is exhaustive and carries no default arm (the case set is
// closed); dispatch over scalar raw values keeps a Default body.
type StmtSwitchData struct {
	Subject ExprID
	Arms    []ArmID
	Default []StmtID // nil = no default arm
}

// Arm is one arm of a generated switch: a pattern and a body, no
// fallthrough.
type Arm struct {
	Pattern PatternID
	Body    []StmtID
	Span    source.Span
}

type StmtReturnData struct {
	Value ExprID
}

type StmtExprData struct {
	Value ExprID
}

// Stmts manages allocation of statements and switch arms.
type Stmts struct {
	Arena      *Arena[Stmt]
	LocalBinds *Arena[StmtLocalBindData]
	Assigns    *Arena[StmtAssignData]
	Switches   *Arena[StmtSwitchData]
	Arms       *Arena[Arm]
	Returns    *Arena[StmtReturnData]
	ExprStmts  *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		LocalBinds: NewArena[StmtLocalBindData](capHint),
		Assigns:    NewArena[StmtAssignData](capHint),
		Switches:   NewArena[StmtSwitchData](capHint),
		Arms:       NewArena[Arm](capHint),
		Returns:    NewArena[StmtReturnData](capHint),
		ExprStmts:  NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewLocalBind declares a local binding statement.
func (s *Stmts) NewLocalBind(span source.Span, local LocalID, init ExprID) StmtID {
	payload := s.LocalBinds.Allocate(StmtLocalBindData{Local: local, Init: init})
	return s.new(StmtLocalBind, span, payload)
}

// LocalBind returns the local-bind data for the given statement ID.
func (s *Stmts) LocalBind(id StmtID) (*StmtLocalBindData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLocalBind {
		return nil, false
	}
	return s.LocalBinds.Get(stmt.Payload), true
}

// NewAssign creates an assignment statement.
func (s *Stmts) NewAssign(span source.Span, target, value ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{Target: target, Value: value})
	return s.new(StmtAssign, span, payload)
}

// Assign returns the assignment data for the given statement ID.
func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(stmt.Payload), true
}

// NewArm allocates one switch arm.
func (s *Stmts) NewArm(span source.Span, pattern PatternID, body []StmtID) ArmID {
	return ArmID(s.Arms.Allocate(Arm{Pattern: pattern, Body: body, Span: span}))
}

// Arm returns the arm with the given ID.
func (s *Stmts) Arm(id ArmID) *Arm {
	return s.Arms.Get(uint32(id))
}

// NewSwitch creates an exhaustive case-dispatch statement.
func (s *Stmts) NewSwitch(span source.Span, subject ExprID, arms []ArmID) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{Subject: subject, Arms: arms})
	return s.new(StmtSwitch, span, payload)
}

// NewSwitchDefault creates a case-dispatch statement with a default body,
// for scalar subjects where the value set is open.
func (s *Stmts) NewSwitchDefault(span source.Span, subject ExprID, arms []ArmID, def []StmtID) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{Subject: subject, Arms: arms, Default: def})
	return s.new(StmtSwitch, span, payload)
}

// Switch returns the switch data for the given statement ID.
func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(stmt.Payload), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, payload)
}

// Return returns the return data for the given statement ID.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(stmt.Payload), true
}

// NewExprStmt wraps an expression as a statement.
func (s *Stmts) NewExprStmt(span source.Span, value ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Value: value})
	return s.new(StmtExpr, span, payload)
}

// ExprStmt returns the expression-statement data for the given ID.
func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(stmt.Payload), true
}
