package driver

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/diag"
	"tern/internal/iface"
	"tern/internal/project"
	"tern/internal/source"
	"tern/internal/types"
)

// UnknownInterfaceError rejects a derive clause naming an interface the
// engine cannot synthesize.
type UnknownInterfaceError struct {
	Type string
	Name string
}

func (e *UnknownInterfaceError) Error() string {
	return fmt.Sprintf("type %q: unknown interface %q", e.Type, e.Name)
}

// Diagnostic renders the rejection for diagnostic output.
func (e *UnknownInterfaceError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.DeriveUnknownInterface, source.Span{}, e.Error())
}

// Entry is one manifest type loaded into a session, with its body target
// and the interfaces the manifest asks to derive.
type Entry struct {
	Name   string
	Decl   ast.DeclID
	Target ast.TargetID
	Derive []iface.Known
}

// BuildSession loads a validated manifest into a fresh session. All
// nominal types are registered before any declaration body is built, so
// fields may reference manifest types in any order; unknown field type
// names become opaque nominals with no conformances.
func BuildSession(man *project.Manifest) (*derive.Session, []Entry, error) {
	sess := derive.NewSession()
	b := sess.Types.Builtins()

	named := map[string]types.TypeID{
		"Int":    b.Int,
		"String": b.String,
		"Bool":   b.Bool,
		"Unit":   b.Unit,
	}
	selfs := make([]types.TypeID, len(man.Types))
	for i := range man.Types {
		t := &man.Types[i]
		selfs[i] = sess.Types.RegisterNominal(sess.Strings.Intern(t.Name), source.Span{})
		named[t.Name] = selfs[i]
	}
	resolve := func(name string) types.TypeID {
		if id, ok := named[name]; ok {
			return id
		}
		id := sess.Types.RegisterNominal(sess.Strings.Intern(name), source.Span{})
		named[name] = id
		return id
	}

	entries := make([]Entry, 0, len(man.Types))
	for i := range man.Types {
		t := &man.Types[i]
		file := sess.Files.AddVirtual(t.File, man.Module)

		var kind ast.DeclKind
		switch t.Kind {
		case "variant":
			kind = ast.DeclVariant
		case "product":
			kind = ast.DeclProduct
		case "reference":
			kind = ast.DeclReference
		}
		raw := types.NoTypeID
		switch t.Raw {
		case "int":
			raw = b.Int
		case "string":
			raw = b.String
		}

		decl := sess.AST.Decls.New(ast.TypeDecl{
			Kind:               kind,
			Name:               sess.Strings.Intern(t.Name),
			File:               file,
			Self:               selfs[i],
			RawType:            raw,
			HasUnavailableCase: t.Unavailable,
			Interop:            t.Interop,
			IsFinal:            t.Final,
			Access:             ast.AccessInternal,
		})
		sess.RegisterDecl(decl)

		for _, cm := range t.Cases {
			c := sess.AST.Decls.AddCase(decl, sess.Strings.Intern(cm.Name), source.Span{})
			if cm.RawSet {
				sess.AST.Decls.SetRawValue(c, cm.RawInt, sess.Strings.Intern(cm.RawString))
			}
			for _, fm := range cm.Fields {
				label := source.NoStringID
				if fm.Label != "" {
					label = sess.Strings.Intern(fm.Label)
				}
				sess.AST.Decls.AddPayloadField(c, label, resolve(fm.Type), source.Span{})
			}
		}
		for _, fm := range t.Fields {
			label := source.NoStringID
			if fm.Label != "" {
				label = sess.Strings.Intern(fm.Label)
			}
			sess.AST.Decls.AddStoredField(decl, label, resolve(fm.Type), source.Span{})
		}

		wanted := make([]iface.Known, 0, len(t.Derive))
		for _, name := range t.Derive {
			k, ok := iface.Parse(name)
			if !ok {
				return nil, nil, &UnknownInterfaceError{Type: t.Name, Name: name}
			}
			wanted = append(wanted, k)
		}

		entries = append(entries, Entry{
			Name:   t.Name,
			Decl:   decl,
			Target: sess.AST.Targets.New(ast.TargetTypeBody, decl, file, source.Span{}),
			Derive: wanted,
		})
	}
	return sess, entries, nil
}

// Requests flattens the manifest entries into one request per requested
// interface, preserving manifest order.
func Requests(entries []Entry) []Request {
	var out []Request
	for _, e := range entries {
		for _, k := range e.Derive {
			out = append(out, Request{Decl: e.Decl, Target: e.Target, Iface: k})
		}
	}
	return out
}
