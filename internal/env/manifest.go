package env

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/term"
)

// manifest mirrors the YAML shape documented in SPEC_FULL.md §C.2, in the
// same struct-tag idiom as the retrieval pack's internal/ext/config.go.
type manifest struct {
	Globals   map[string]globalSpec `yaml:"globals"`
	DataTypes []dataTypeSpec        `yaml:"datatypes"`
}

type globalSpec struct {
	Sort uint32 `yaml:"sort"`
}

type binderSpec struct {
	Name string  `yaml:"name"`
	Sort *uint32 `yaml:"sort,omitempty"`
	Type string  `yaml:"type,omitempty"`
}

type ctorSpec struct {
	Name string `yaml:"name"`
	Args int    `yaml:"args"`
}

type dataTypeSpec struct {
	Name    string       `yaml:"name"`
	Params  []binderSpec `yaml:"params"`
	Indices []binderSpec `yaml:"indices"`
	Sort    uint32       `yaml:"sort"`
	Ctors   []ctorSpec   `yaml:"ctors"`
}

// LoadManifest parses a YAML environment manifest into a fresh Env backed
// by f. The manifest format is intentionally minimal (SPEC_FULL.md §C.2):
// a constructor's declared "args" count builds a telescope of that many
// binders, each typed as a recursive occurrence of the owning datatype
// with no parameters or indices applied, and the constructor gets no
// parameter binders (NumParams is 0) — enough to describe Nat-shaped
// recursive datatypes without writing out Term values by hand.
// Constructors of parameterized or indexed datatypes, and constructors
// whose arguments have other types (Cons : A -> List A -> List A), must be
// added to the returned Env directly via AddCtor.
func LoadManifest(f *term.Factory, r io.Reader) (*Env, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	e := New()

	for name, g := range m.Globals {
		e.AddGlobal(ident.Local(name), f.MkSort(g.Sort))
	}

	for _, ds := range m.DataTypes {
		if ds.Name == "" {
			return nil, fmt.Errorf("datatype with no name")
		}
		dtID := ident.Local(ds.Name)

		paramTypes, err := binderTypes(f, ds.Params)
		if err != nil {
			return nil, fmt.Errorf("datatype %s: params: %w", ds.Name, err)
		}
		indexTypes, err := binderTypes(f, ds.Indices)
		if err != nil {
			return nil, fmt.Errorf("datatype %s: indices: %w", ds.Name, err)
		}

		dtType := buildTelescope(f, append(append([]term.Term{}, paramTypes...), indexTypes...), f.MkSort(ds.Sort))

		ctorIDs := make([]ident.Ident, len(ds.Ctors))
		for i, cs := range ds.Ctors {
			ctorIDs[i] = ident.Local(cs.Name)
		}

		dt := &DataType{
			Name:       dtID,
			Type:       dtType,
			NumParams:  len(ds.Params),
			NumIndices: len(ds.Indices),
			Ctors:      ctorIDs,
		}
		e.AddDataType(dt)

		selfApplied := f.Mk(term.DataTypeApp{Data: ds.Name})
		for _, cs := range ds.Ctors {
			if cs.Name == "" {
				return nil, fmt.Errorf("datatype %s: constructor with no name", ds.Name)
			}
			argTypes := make([]term.Term, cs.Args)
			for i := range argTypes {
				argTypes[i] = selfApplied
			}
			cTy := buildTelescope(f, argTypes, selfApplied)
			e.AddCtor(&Ctor{
				Name:     ident.Local(cs.Name),
				Type:     cTy,
				DataType: dtID,
				NumArgs:  cs.Args,
			})
		}
	}

	return e, nil
}

func binderTypes(f *term.Factory, specs []binderSpec) ([]term.Term, error) {
	out := make([]term.Term, len(specs))
	for i, b := range specs {
		switch {
		case b.Sort != nil:
			out[i] = f.MkSort(*b.Sort)
		case b.Type != "":
			out[i] = f.Mk(term.GlobalDef{Name: b.Type})
		default:
			return nil, fmt.Errorf("binder %q: one of sort or type is required", b.Name)
		}
	}
	return out, nil
}

// buildTelescope wraps result in a Pi for each entry of argTypes, outermost
// first, matching the order constructors and datatypes are declared in.
func buildTelescope(f *term.Factory, argTypes []term.Term, result term.Term) term.Term {
	body := result
	for i := len(argTypes) - 1; i >= 0; i-- {
		body = f.Mk(term.Pi{Name: "_", Type: argTypes[i], Body: body})
	}
	return body
}
