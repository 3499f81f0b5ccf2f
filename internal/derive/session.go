// Package derive decides whether the compiler may automatically synthesize
// an interface implementation for a user-declared type, and builds the
// typed declarations that satisfy each unmet requirement when it may.
//
// The engine is invoked by the satisfaction-search subsystem: the caller
// asks OffersDerivation first, validates the insertion point with
// CheckLegal, then runs Synthesize; DiagnoseFailure explains the cases
// where an eligible-looking derivation still could not produce a body.
package derive

import (
	"tern/internal/ast"
	"tern/internal/iface"
	"tern/internal/source"
	"tern/internal/types"
)

// Witness records how a type satisfies an interface: through which
// declaration context, and whether the engine produced it.
type Witness struct {
	Target      ast.TargetID
	Synthesized bool
}

type conformanceKey struct {
	Type  types.TypeID
	Iface iface.Known
}

// WellKnownTypes are standard-library nominal types the synthesis
// builder references but never declares: the serialization containers
// and the hash accumulator. Registered once per session; nothing is
// looked up by name at synthesis time.
type WellKnownTypes struct {
	Encoder types.TypeID
	Decoder types.TypeID
	Hasher  types.TypeID
}

// Session is the compilation-session state threaded through every engine
// call. It lives for exactly one compilation run; nothing here is global.
// All fields are read-mostly: the only mutations are conformance recording
// and arena appends on the synthesis side.
type Session struct {
	Files   *source.FileSet
	Strings *source.Interner
	Types   *types.Interner
	AST     *ast.Builder

	conformances map[conformanceKey]Witness
	declOfType   map[types.TypeID]ast.DeclID
	wellKnown    WellKnownTypes

	// FieldResolver supplies lazy signature resolution for payload fields
	// whose types are not known at declaration time. Optional.
	FieldResolver func(ast.FieldID) types.TypeID
}

// NewSession builds a session over fresh interners and arenas, seeded with
// the standard library conformances of the builtin types.
func NewSession() *Session {
	s := &Session{
		Files:        source.NewFileSet(),
		Strings:      source.NewInterner(),
		Types:        types.NewInterner(),
		AST:          ast.NewBuilder(ast.Hints{}),
		conformances: make(map[conformanceKey]Witness),
		declOfType:   make(map[types.TypeID]ast.DeclID),
	}
	b := s.Types.Builtins()
	for _, k := range []iface.Known{iface.Equatable, iface.Hashable, iface.Encodable, iface.Decodable} {
		s.RecordConformance(b.Int, k, Witness{})
		s.RecordConformance(b.String, k, Witness{})
		s.RecordConformance(b.Bool, k, Witness{})
	}
	s.RecordConformance(b.Int, iface.Comparable, Witness{})
	s.RecordConformance(b.String, iface.Comparable, Witness{})
	s.wellKnown = WellKnownTypes{
		Encoder: s.Types.RegisterNominal(s.Strings.Intern("Encoder"), source.Span{}),
		Decoder: s.Types.RegisterNominal(s.Strings.Intern("Decoder"), source.Span{}),
		Hasher:  s.Types.RegisterNominal(s.Strings.Intern("Hasher"), source.Span{}),
	}
	return s
}

// WellKnown returns the session's registered standard-library types.
func (s *Session) WellKnown() WellKnownTypes {
	return s.wellKnown
}

// RegisterDecl indexes a declaration by its self type so requirement
// resolution can walk from a type back to its declaration.
func (s *Session) RegisterDecl(id ast.DeclID) {
	decl := s.AST.Decls.Get(id)
	if decl == nil || decl.Self == types.NoTypeID {
		return
	}
	s.declOfType[decl.Self] = id
}

// DeclOf resolves a nominal type back to its declaration.
func (s *Session) DeclOf(t types.TypeID) (ast.DeclID, bool) {
	id, ok := s.declOfType[t]
	return id, ok
}

// RecordConformance registers a witness for (type, interface).
func (s *Session) RecordConformance(t types.TypeID, k iface.Known, w Witness) {
	s.conformances[conformanceKey{Type: t, Iface: k}] = w
}

// TestSatisfaction reports whether the type already satisfies the
// interface through an existing witness, hand-written or synthesized.
func (s *Session) TestSatisfaction(t types.TypeID, k iface.Known) (Witness, bool) {
	w, ok := s.conformances[conformanceKey{Type: t, Iface: k}]
	return w, ok
}

// Conforms is the boolean form of TestSatisfaction.
func (s *Session) Conforms(t types.TypeID, k iface.Known) bool {
	_, ok := s.TestSatisfaction(t, k)
	return ok
}

// ResolveFieldType returns the type of a payload or stored field,
// resolving the field's signature lazily on first access. The lazy write
// is unsynchronized; callers that share a session across goroutines must
// run ResolveSignatures first so every access is a plain read.
func (s *Session) ResolveFieldType(f ast.FieldID) types.TypeID {
	field := s.AST.Decls.Field(f)
	if field == nil {
		return types.NoTypeID
	}
	if field.Type == types.NoTypeID && s.FieldResolver != nil {
		field.Type = s.FieldResolver(f)
	}
	return field.Type
}

// ResolveSignatures eagerly resolves every field signature of the
// declaration: stored members and each case's payload. After it returns,
// ResolveFieldType never writes for this declaration again.
func (s *Session) ResolveSignatures(declID ast.DeclID) {
	decl := s.AST.Decls.Get(declID)
	if decl == nil {
		return
	}
	for _, caseID := range decl.Cases {
		for _, f := range s.AST.Decls.Case(caseID).Fields {
			s.ResolveFieldType(f)
		}
	}
	for _, f := range decl.Fields {
		s.ResolveFieldType(f)
	}
}

// LookupRequirement is direct member lookup within a known interface's
// declared requirement set.
func (s *Session) LookupRequirement(k iface.Known, name string) (iface.Requirement, bool) {
	return iface.LookupRequirement(k, name)
}
