package env

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/subst"
	"github.com/vellum-lang/vellum/internal/term"
)

// RecursorMotiveType builds the schematic type a recursor's motive must
// be a subtype of: ∀indices. ∀x:(DataTypeApp d params indices). Sort(sRet)
// (SPEC_FULL.md §4.7.3, the "recursorRetTypeType" collaborator of §6).
func RecursorMotiveType(f *term.Factory, dt *DataType, params []term.Term, sRet ident.Sort) (term.Term, error) {
	ty := dt.Type
	for i, p := range params {
		pi, ok := term.Unwrap(ty).(term.Pi)
		if !ok {
			return nil, fmt.Errorf("datatype %s: too few parameters (at %d)", dt.Name, i)
		}
		ty = subst.InstantiateVarList(f, 0, []term.Term{p}, pi.Body)
	}
	return buildMotiveTelescope(f, ty, dt.Name, params, sRet, 0)
}

func buildMotiveTelescope(f *term.Factory, ty term.Term, dataName ident.Ident, params []term.Term, sRet ident.Sort, depth int) (term.Term, error) {
	pi, ok := term.Unwrap(ty).(term.Pi)
	if !ok {
		liftedParams := make([]term.Term, len(params))
		for i, p := range params {
			liftedParams[i] = subst.IncVars(f, 0, depth, p)
		}
		indices := make([]term.Term, depth)
		for i := 0; i < depth; i++ {
			indices[i] = f.MkLocalVar(depth - 1 - i)
		}
		dtApp := f.Mk(term.DataTypeApp{Data: dataName.String(), Params: liftedParams, Indices: indices})
		return f.Mk(term.Pi{Name: "x", Type: dtApp, Body: f.MkSort(uint32(sRet))}), nil
	}
	rest, err := buildMotiveTelescope(f, pi.Body, dataName, params, sRet, depth+1)
	if err != nil {
		return nil, err
	}
	return f.Mk(term.Pi{Name: pi.Name, Type: pi.Type, Body: rest}), nil
}

// RecursorElimTypes computes the required case type for each constructor
// of dt (the "recursorElimTypes" collaborator of §6). A constructor with
// a directly recursive argument (one whose type is itself a DataTypeApp
// of the same datatype) additionally requires an induction hypothesis
// binder right after it, per the standard large-eliminator schema.
// Mutually/indirectly recursive occurrences (the argument type mentions
// the datatype only after further quantification) get no induction
// hypothesis.
func RecursorElimTypes(f *term.Factory, e Environment, dt *DataType, params []term.Term, motive term.Term) (map[string]term.Term, error) {
	out := make(map[string]term.Term, len(dt.Ctors))
	for _, c := range e.CtorsOf(dt) {
		ty := c.Type
		for i, p := range params {
			pi, ok := term.Unwrap(ty).(term.Pi)
			if !ok {
				return nil, fmt.Errorf("constructor %s: too few parameters (at %d)", c.Name, i)
			}
			ty = subst.InstantiateVarList(f, 0, []term.Term{p}, pi.Body)
		}
		required, err := buildCaseType(f, ty, c.Name.String(), dt.Name.String(), params, motive, 0)
		if err != nil {
			return nil, fmt.Errorf("constructor %s: %w", c.Name, err)
		}
		out[c.Name.String()] = required
	}
	return out, nil
}

func buildCaseType(f *term.Factory, ty term.Term, ctorName, dataName string, params []term.Term, motive term.Term, depth int) (term.Term, error) {
	switch n := term.Unwrap(ty).(type) {
	case term.Pi:
		rest, err := buildCaseType(f, n.Body, ctorName, dataName, params, motive, depth+1)
		if err != nil {
			return nil, err
		}
		if dtApp, ok := term.Unwrap(n.Type).(term.DataTypeApp); ok && dtApp.Data == dataName {
			liftedMotive := subst.IncVars(f, 0, depth+1, motive)
			liftedIndices := make([]term.Term, len(dtApp.Indices))
			for i, idx := range dtApp.Indices {
				liftedIndices[i] = subst.IncVars(f, 0, 1, idx)
			}
			ihArgs := append(liftedIndices, f.MkLocalVar(0))
			ihType := term.ApplyAll(f, liftedMotive, ihArgs)
			shiftedRest := subst.IncVars(f, 0, 1, rest)
			ih := f.Mk(term.Pi{Name: "ih", Type: ihType, Body: shiftedRest})
			return f.Mk(term.Pi{Name: n.Name, Type: n.Type, Body: ih}), nil
		}
		return f.Mk(term.Pi{Name: n.Name, Type: n.Type, Body: rest}), nil
	case term.DataTypeApp:
		if n.Data != dataName {
			return nil, fmt.Errorf("does not conclude in %s", dataName)
		}
		liftedMotive := subst.IncVars(f, 0, depth, motive)
		liftedParams := make([]term.Term, len(params))
		for i, p := range params {
			liftedParams[i] = subst.IncVars(f, 0, depth, p)
		}
		args := make([]term.Term, depth)
		for i := 0; i < depth; i++ {
			args[i] = f.MkLocalVar(depth - 1 - i)
		}
		ctorApp := f.Mk(term.CtorApp{Ctor: ctorName, Params: liftedParams, Args: args})
		motiveArgs := append(append([]term.Term{}, n.Indices...), ctorApp)
		return term.ApplyAll(f, liftedMotive, motiveArgs), nil
	default:
		return nil, fmt.Errorf("does not conclude in a datatype application")
	}
}
