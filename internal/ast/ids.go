package ast

type (
	// declaration side
	DeclID   uint32
	CaseID   uint32
	FieldID  uint32
	TargetID uint32
	// synthesized side
	MemberID  uint32
	FuncID    uint32
	LocalID   uint32
	ExprID    uint32
	StmtID    uint32
	ArmID     uint32
	PatternID uint32
)

const (
	NoDeclID    DeclID    = 0
	NoCaseID    CaseID    = 0
	NoFieldID   FieldID   = 0
	NoTargetID  TargetID  = 0
	NoMemberID  MemberID  = 0
	NoFuncID    FuncID    = 0
	NoLocalID   LocalID   = 0
	NoExprID    ExprID    = 0
	NoStmtID    StmtID    = 0
	NoArmID     ArmID     = 0
	NoPatternID PatternID = 0
)

func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id CaseID) IsValid() bool    { return id != NoCaseID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id TargetID) IsValid() bool  { return id != NoTargetID }
func (id MemberID) IsValid() bool  { return id != NoMemberID }
func (id FuncID) IsValid() bool    { return id != NoFuncID }
func (id LocalID) IsValid() bool   { return id != NoLocalID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ArmID) IsValid() bool     { return id != NoArmID }
func (id PatternID) IsValid() bool { return id != NoPatternID }
