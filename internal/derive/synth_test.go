package derive_test

import (
	"testing"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/source"
)

func TestDeclareLocal_UnboundBinding(t *testing.T) {
	fx := newFixture()
	sess := fx.sess
	name := sess.Strings.Intern("index")
	intType := sess.Types.Builtins().Int

	local, bind := derive.DeclareLocal(sess, name, intType)
	l := sess.AST.Members.Local(local)
	if l.Name != name || l.Type != intType {
		t.Fatalf("local = %+v", l)
	}
	lb, ok := sess.AST.Stmts.LocalBind(bind)
	if !ok {
		t.Fatal("declaration statement must be a local bind")
	}
	if lb.Local != local || lb.Init != ast.NoExprID {
		t.Fatalf("bind = %+v, want unbound initializer for %d", lb, local)
	}
}

func TestConvertVariantToIndex_OneArmPerCaseNoDefault(t *testing.T) {
	fx := newFixture()
	sess := fx.sess
	decl := fx.variant("Direction", "north", "south", "east")
	d := sess.AST.Decls.Get(decl)

	subjectVar := sess.AST.Members.NewLocal(ast.Local{Name: sess.Strings.Intern("value"), Type: d.Self})
	subject := sess.AST.Exprs.NewLocalRef(source.Span{}, subjectVar, d.Self)

	var body []ast.StmtID
	result := derive.ConvertVariantToIndex(sess, &body, decl, subject, "index")
	if len(body) == 0 {
		t.Fatal("no statements emitted")
	}
	if _, ok := sess.AST.Exprs.LocalRef(result); !ok {
		t.Fatal("result must read the index local")
	}

	sw, ok := sess.AST.Stmts.Switch(body[len(body)-1])
	if !ok {
		t.Fatal("last statement must be the dispatch")
	}
	if sw.Default != nil {
		t.Fatal("variant dispatch must not carry a default arm")
	}
	if len(sw.Arms) != len(d.Cases) {
		t.Fatalf("arms = %d, want %d", len(sw.Arms), len(d.Cases))
	}

	for i, armID := range sw.Arms {
		arm := sess.AST.Stmts.Arm(armID)
		pat, ok := sess.AST.Patterns.Case(arm.Pattern)
		if !ok {
			t.Fatalf("arm %d: not a case pattern", i)
		}
		c := sess.AST.Decls.Case(pat.Case)
		if int(c.Ordinal) != i {
			t.Fatalf("arm %d matches ordinal %d", i, c.Ordinal)
		}
		assign, ok := sess.AST.Stmts.Assign(arm.Body[0])
		if !ok {
			t.Fatalf("arm %d: body is not an assignment", i)
		}
		lit, ok := sess.AST.Exprs.IntLit(assign.Value)
		if !ok || lit.Value != uint64(i) {
			t.Fatalf("arm %d assigns %v, want %d", i, lit, i)
		}
	}
}

// Ordinals are assigned at append time and never move, so repeated
// synthesis of the same declaration reproduces the same dispatch.
func TestCaseOrdinals_StableAcrossSyntheses(t *testing.T) {
	fx := newFixture()
	sess := fx.sess
	decl := fx.variant("State", "idle", "running", "done")
	d := sess.AST.Decls.Get(decl)

	before := make([]uint32, 0, len(d.Cases))
	for _, c := range d.Cases {
		before = append(before, sess.AST.Decls.Case(c).Ordinal)
	}

	for i := 0; i < 2; i++ {
		subjectVar := sess.AST.Members.NewLocal(ast.Local{Name: sess.Strings.Intern("v"), Type: d.Self})
		subject := sess.AST.Exprs.NewLocalRef(source.Span{}, subjectVar, d.Self)
		var body []ast.StmtID
		derive.ConvertVariantToIndex(sess, &body, decl, subject, "index")
	}

	for i, c := range d.Cases {
		if got := sess.AST.Decls.Case(c).Ordinal; got != before[i] {
			t.Fatalf("case %d: ordinal moved from %d to %d", i, before[i], got)
		}
	}
}

func TestPayloadSubpattern_TupleNaming(t *testing.T) {
	fx := newFixture()
	sess := fx.sess
	b := sess.Types.Builtins()
	decl := fx.variant("Event")
	c := sess.AST.Decls.AddCase(decl, sess.Strings.Intern("moved"), source.Span{})
	sess.AST.Decls.AddPayloadField(c, sess.Strings.Intern("dx"), b.Int, source.Span{})
	sess.AST.Decls.AddPayloadField(c, sess.Strings.Intern("dy"), b.Int, source.Span{})
	sess.AST.Decls.AddPayloadField(c, source.NoStringID, b.String, source.Span{})

	var bound []ast.LocalID
	pat := derive.PayloadSubpattern(sess, c, 'a', &bound)
	tuple, ok := sess.AST.Patterns.Tuple(pat)
	if !ok {
		t.Fatal("multi-field payload must destructure as a tuple")
	}
	if len(tuple.Elems) != 3 || len(bound) != 3 {
		t.Fatalf("elems = %d, bound = %d, want 3", len(tuple.Elems), len(bound))
	}

	wantNames := []string{"a0", "a1", "a2"}
	for i, local := range bound {
		if got := sess.Strings.MustLookup(sess.AST.Members.Local(local).Name); got != wantNames[i] {
			t.Errorf("binding %d named %q, want %q", i, got, wantNames[i])
		}
	}
	if got := sess.Strings.MustLookup(tuple.Elems[0].Label); got != "dx" {
		t.Errorf("first element label %q, want dx", got)
	}
	if tuple.Elems[2].Label != source.NoStringID {
		t.Error("unlabeled field must stay unlabeled")
	}
}

func TestPayloadSubpattern_SingleUnlabeledParen(t *testing.T) {
	fx := newFixture()
	sess := fx.sess
	b := sess.Types.Builtins()
	decl := fx.variant("Box")
	c := sess.AST.Decls.AddCase(decl, sess.Strings.Intern("some"), source.Span{})
	sess.AST.Decls.AddPayloadField(c, source.NoStringID, b.Int, source.Span{})

	var bound []ast.LocalID
	pat := derive.PayloadSubpattern(sess, c, 'a', &bound)
	paren, ok := sess.AST.Patterns.Paren(pat)
	if !ok {
		t.Fatal("single unlabeled payload must parenthesize")
	}
	if _, ok := sess.AST.Patterns.Bind(paren.Sub); !ok {
		t.Fatal("paren must wrap a binding")
	}
	if len(bound) != 1 || sess.Strings.MustLookup(sess.AST.Members.Local(bound[0]).Name) != "a0" {
		t.Fatalf("bound = %v, want one binding named a0", bound)
	}
}

func TestPayloadSubpattern_PayloadFree(t *testing.T) {
	fx := newFixture()
	decl := fx.variant("Coin", "heads")
	c := fx.sess.AST.Decls.Get(decl).Cases[0]

	var bound []ast.LocalID
	if pat := derive.PayloadSubpattern(fx.sess, c, 'a', &bound); pat != ast.NoPatternID {
		t.Fatal("payload-free case must produce no subpattern")
	}
	if len(bound) != 0 {
		t.Fatal("payload-free case must bind nothing")
	}
}
