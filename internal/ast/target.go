package ast

import (
	"slices"
	"sync"

	"tern/internal/source"
)

// TargetKind says where synthesized members land.
type TargetKind uint8

const (
	// TargetTypeBody inserts into the type's own declaration body.
	TargetTypeBody TargetKind = iota
	// TargetExtension inserts into an extension of the type, possibly in
	// another file or module.
	TargetExtension
)

// Target is the declaration context receiving synthesized members. Each
// derivation request owns exactly one target; appended members are never
// shared across targets.
type Target struct {
	mu sync.Mutex

	Kind TargetKind
	Of   DeclID
	File source.FileID
	Span source.Span

	members []MemberID
}

// Append attaches synthesized members. Appending is the only mutation the
// derivation engine performs and is serialized per target: independent
// requests may hit the same underlying type from different files.
func (t *Target) Append(ids ...MemberID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.members = append(t.members, ids...)
}

// Members returns a copy of the appended member list.
func (t *Target) Members() []MemberID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.members)
}

// Targets manages allocation of synthesis targets.
type Targets struct {
	Arena *Arena[Target]
}

func NewTargets(capHint uint) *Targets {
	return &Targets{Arena: NewArena[Target](capHint)}
}

func (t *Targets) New(kind TargetKind, of DeclID, file source.FileID, span source.Span) TargetID {
	return TargetID(t.Arena.Allocate(Target{
		Kind: kind,
		Of:   of,
		File: file,
		Span: span,
	}))
}

func (t *Targets) Get(id TargetID) *Target {
	return t.Arena.Get(uint32(id))
}
