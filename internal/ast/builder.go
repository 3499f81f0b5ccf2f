package ast

// Hints sizes the per-arena preallocation.
type Hints struct{ Decls, Targets, Members, Exprs, Stmts, Patterns uint }

// Builder owns every AST arena of one compilation unit. Synthesized nodes
// live here and die with the unit; nothing is reference-counted.
type Builder struct {
	Decls    *Decls
	Targets  *Targets
	Members  *Members
	Exprs    *Exprs
	Stmts    *Stmts
	Patterns *Patterns
}

func NewBuilder(hints Hints) *Builder {
	if hints.Decls == 0 {
		hints.Decls = 1 << 6
	}
	if hints.Targets == 0 {
		hints.Targets = 1 << 6
	}
	if hints.Members == 0 {
		hints.Members = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Patterns == 0 {
		hints.Patterns = 1 << 7
	}
	return &Builder{
		Decls:    NewDecls(hints.Decls),
		Targets:  NewTargets(hints.Targets),
		Members:  NewMembers(hints.Members),
		Exprs:    NewExprs(hints.Exprs),
		Stmts:    NewStmts(hints.Stmts),
		Patterns: NewPatterns(hints.Patterns),
	}
}
