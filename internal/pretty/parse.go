package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vellum-lang/vellum/internal/term"
)

// Parse reads the s-expression-like debug syntax Sprint produces back into
// a term.Term, for cmd/typecheck's "load a term from a debug-syntax file"
// input path (SPEC_FULL.md §A.4). This is a best-effort, practical reader,
// not a formal inverse of Sprint: a CtorApp/DataTypeApp's parameter/argument
// split isn't recoverable from the printed form, so Parse always attributes
// every trailing atom to Args/Indices and leaves Params empty — callers
// needing datatypes with non-empty Params must build those nodes directly.
// Constant and ExtCns, both internal book-keeping nodes rather than terms a
// user would write by hand, are not accepted here.
func Parse(f *term.Factory, src string) (term.Term, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{f: f, toks: toks}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("trailing input after term: %q", p.toks[p.pos:])
	}
	return t, nil
}

func tokenize(src string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("unterminated string literal at %d", i)
			}
			toks = append(toks, src[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(src) && !strings.ContainsRune(" \t\n\r()", rune(src[j])) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		}
	}
	return toks, nil
}

type parser struct {
	f    *term.Factory
	toks []string
	pos  int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (string, error) {
	tok, ok := p.peek()
	if !ok {
		return "", fmt.Errorf("unexpected end of input")
	}
	p.pos++
	return tok, nil
}

func (p *parser) expect(want string) error {
	got, err := p.next()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %q, got %q", want, got)
	}
	return nil
}

// parseSeqUntilClose parses terms until the next token is ")", consuming
// the ")" but not a leading "(" (the caller has already consumed that).
func (p *parser) parseSeqUntilClose() ([]term.Term, error) {
	var out []term.Term
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("unexpected end of input in sequence")
		}
		if tok == ")" {
			p.pos++
			return out, nil
		}
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
}

func (p *parser) parseTerm() (term.Term, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch {
	case tok == "(":
		return p.parseList()
	case strings.HasPrefix(tok, "#"):
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return nil, fmt.Errorf("bad local var %q: %w", tok, err)
		}
		return p.f.MkLocalVar(n), nil
	case strings.HasPrefix(tok, `"`):
		s, err := strconv.Unquote(tok)
		if err != nil {
			return nil, fmt.Errorf("bad string literal %q: %w", tok, err)
		}
		return p.f.Mk(term.StringLit{Value: s}), nil
	default:
		if n, err := strconv.ParseUint(tok, 10, 64); err == nil {
			return p.f.MkNatLit(n), nil
		}
		return nil, fmt.Errorf("unexpected atom %q", tok)
	}
}

func (p *parser) parseList() (term.Term, error) {
	head, err := p.next()
	if err != nil {
		return nil, err
	}

	switch head {
	case "Lambda", "Pi":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		ty, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		if head == "Lambda" {
			return p.f.Mk(term.Lambda{Name: name, Type: ty, Body: body}), nil
		}
		return p.f.Mk(term.Pi{Name: name, Type: ty, Body: body}), nil

	case "Let":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		var defs []term.LetDef
		for {
			tok, ok := p.peek()
			if !ok {
				return nil, fmt.Errorf("unexpected end of input in Let bindings")
			}
			if tok == ")" {
				p.pos++
				break
			}
			if err := p.expect("("); err != nil {
				return nil, err
			}
			name, err := p.next()
			if err != nil {
				return nil, err
			}
			ty, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			val, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			defs = append(defs, term.LetDef{Name: name, Type: ty, Value: val})
		}
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.Let{Defs: defs, Body: body}), nil

	case "App":
		fn, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.MkApp(fn, arg), nil

	case "Global":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.GlobalDef{Name: name}), nil

	case "Sort":
		lvl, err := p.next()
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(lvl, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad sort level %q: %w", lvl, err)
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.MkSort(uint32(n)), nil

	case "Array":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		elems, err := p.parseSeqUntilClose()
		if err != nil {
			return nil, err
		}
		elemTy, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.ArrayValue{ElemType: elemTy, Elems: elems}), nil

	case "Data":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		indices, err := p.parseSeqUntilClose()
		if err != nil {
			return nil, err
		}
		return p.f.Mk(term.DataTypeApp{Data: name, Indices: indices}), nil

	case "Ctor":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		args, err := p.parseSeqUntilClose()
		if err != nil {
			return nil, err
		}
		return p.f.Mk(term.CtorApp{Ctor: name, Args: args}), nil

	case "Recursor":
		data, err := p.next()
		if err != nil {
			return nil, err
		}
		if err := p.expect("("); err != nil {
			return nil, err
		}
		params, err := p.parseSeqUntilClose()
		if err != nil {
			return nil, err
		}
		motive, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect("("); err != nil {
			return nil, err
		}
		var cases []term.RecursorCase
		for {
			tok, ok := p.peek()
			if !ok {
				return nil, fmt.Errorf("unexpected end of input in Recursor cases")
			}
			if tok == ")" {
				p.pos++
				break
			}
			if err := p.expect("("); err != nil {
				return nil, err
			}
			ctorName, err := p.next()
			if err != nil {
				return nil, err
			}
			val, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			cases = append(cases, term.RecursorCase{Ctor: ctorName, Value: val})
		}
		if err := p.expect("("); err != nil {
			return nil, err
		}
		indices, err := p.parseSeqUntilClose()
		if err != nil {
			return nil, err
		}
		scrutinee, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.RecursorApp{
			Data: data, Params: params, Motive: motive,
			Cases: cases, Indices: indices, Scrutinee: scrutinee,
		}), nil

	case "Fst":
		pair, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.PairLeft{Pair: pair}), nil

	case "Snd":
		pair, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.PairRight{Pair: pair}), nil

	case "UnitType":
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.MkUnitType(), nil

	case "UnitValue":
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.MkUnitValue(), nil

	case "PairType":
		left, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.MkPairType(left, right), nil

	case "Pair":
		left, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.MkPairValue(left, right), nil

	case "EmptyRecordType":
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.EmptyRecordType{}), nil

	case "EmptyRecordValue":
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.EmptyRecordValue{}), nil

	case "FieldType":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		ty, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		rest, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.FieldType{Name: name, Type: ty, Rest: rest}), nil

	case "FieldValue":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		rest, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.FieldValue{Name: name, Value: val, Rest: rest}), nil

	case "Select":
		rec, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return p.f.Mk(term.RecordSelector{Record: rec, Name: name}), nil

	default:
		return nil, fmt.Errorf("unknown term head %q", head)
	}
}
