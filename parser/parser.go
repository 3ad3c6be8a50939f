// Package parser turns algebraic text into a normalized expr.Polynomial.
//
// The grammar, loosest binding first:
//
//	input    := side { '=' side }
//	side     := term { ('+' | '-') term }
//	term     := factor { [ '*' | '/' ] factor }
//	factor   := { '+' | '-' } power
//	power    := primary [ '^' factor ]
//	primary  := numeral | symbol | '(' side ')' | root primary
//	root     := '√' | '∛' | '∜' | superscript-digits '√'
//
// Juxtaposition is multiplication, and '/' divides by the next factor only, so 5/2x is (5/2)x.
// Exponent towers are right associative. Every character that is not a digit, an operator, a
// parenthesis or a root glyph is a single-character symbol; that includes whitespace, which the
// caller is expected to strip.
//
// In the default lenient mode malformed input never fails: unbalanced parentheses are closed or
// skipped, operators missing an operand are dropped and '=' inside parentheses is ignored.
// Options.Strict reports these as surderr.MalformedInput with the offending byte offset instead.
// Arithmetic failures such as overflow are reported in both modes.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/number"
	"github.com/cottand/surd/surderr"
)

type Options struct {
	// Strict rejects malformed input instead of repairing it
	Strict bool
}

// Parse reads text in lenient mode
func Parse(text string) (expr.Polynomial, error) {
	return ParseWith(text, Options{})
}

func ParseWith(text string, opts Options) (expr.Polynomial, error) {
	p := &parser{src: text, strict: opts.Strict}
	return p.input()
}

const eof rune = -1

const operators = "+-*/^()="

type parser struct {
	src    string
	pos    int
	depth  int
	strict bool
}

func (p *parser) rawPeek() rune {
	if p.pos >= len(p.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

// peek returns the next rune. In lenient mode it steps over the runes that are ignored
// wherever they appear: '=' inside parentheses and ')' outside of them.
func (p *parser) peek() rune {
	for {
		r := p.rawPeek()
		if p.strict {
			return r
		}
		if (r == '=' && p.depth > 0) || (r == ')' && p.depth == 0) {
			p.advance()
			continue
		}
		return r
	}
}

func (p *parser) advance() {
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
}

func (p *parser) malformed(at int, format string, args ...any) error {
	return surderr.NewAt(surderr.MalformedInput, at, format, args...)
}

func startsPrimary(r rune) bool {
	return r != eof && !strings.ContainsRune(operators, r) || r == '('
}

func (p *parser) input() (expr.Polynomial, error) {
	result := expr.Zero()
	equation, negate := false, false
	for {
		s, ok, err := p.side()
		if err != nil {
			return expr.Polynomial{}, err
		}
		if !ok && p.strict {
			return expr.Polynomial{}, p.malformed(p.pos, "expected an expression")
		}
		if negate {
			s = expr.Neg(s)
		}
		if result, err = expr.Add(result, s); err != nil {
			return expr.Polynomial{}, err
		}

		switch r := p.peek(); r {
		case eof:
			return result.AsEquation(equation), nil
		case '=':
			if equation && p.strict {
				return expr.Polynomial{}, p.malformed(p.pos, "more than one '='")
			}
			p.advance()
			equation = true
			negate = !negate
		default:
			if p.strict {
				return expr.Polynomial{}, p.malformed(p.pos, "unexpected %q", r)
			}
			p.advance()
		}
	}
}

// side parses a sum of terms. ok is false when there was no term at all.
func (p *parser) side() (expr.Polynomial, bool, error) {
	sum := expr.Zero()
	found := false
	for {
		at := p.pos
		t, ok, err := p.term()
		if err != nil {
			return expr.Polynomial{}, false, err
		}
		switch {
		case ok:
			found = true
			if sum, err = expr.Add(sum, t); err != nil {
				return expr.Polynomial{}, false, err
			}
		case p.strict && p.pos != at:
			return expr.Polynomial{}, false, p.malformed(at, "sign without an operand")
		}
		if r := p.peek(); r != '+' && r != '-' {
			return sum, found, nil
		}
	}
}

func (p *parser) term() (expr.Polynomial, bool, error) {
	var acc expr.Polynomial
	for {
		at := p.pos
		f, ok, err := p.factor()
		if err != nil {
			return expr.Polynomial{}, false, err
		}
		if ok {
			acc = f
			break
		}
		// a dropped construct such as () may be followed by the real first factor
		if p.strict || p.pos == at || !startsPrimary(p.peek()) {
			return expr.Zero(), false, nil
		}
	}
	for {
		r := p.peek()
		switch {
		case r == '*' || r == '/':
			at := p.pos
			p.advance()
			f, ok, err := p.factor()
			if err != nil {
				return expr.Polynomial{}, false, err
			}
			if !ok {
				if p.strict {
					return expr.Polynomial{}, false, p.malformed(at, "%q without an operand", r)
				}
				continue
			}
			if r == '/' {
				acc, err = expr.Quotient(acc, f)
			} else {
				acc, err = expr.Mul(acc, f)
			}
			if err != nil {
				return expr.Polynomial{}, false, err
			}

		case r == '^':
			if p.strict {
				return expr.Polynomial{}, false, p.malformed(p.pos, "'^' without a base")
			}
			p.advance()

		case startsPrimary(r):
			at := p.pos
			f, ok, err := p.power()
			if err != nil {
				return expr.Polynomial{}, false, err
			}
			if !ok {
				if p.pos == at {
					return acc, true, nil
				}
				continue
			}
			if acc, err = expr.Mul(acc, f); err != nil {
				return expr.Polynomial{}, false, err
			}

		default:
			return acc, true, nil
		}
	}
}

func (p *parser) factor() (expr.Polynomial, bool, error) {
	neg := false
	for r := p.peek(); r == '+' || r == '-'; r = p.peek() {
		if r == '-' {
			neg = !neg
		}
		p.advance()
	}
	v, ok, err := p.power()
	if err != nil || !ok {
		return v, ok, err
	}
	if neg {
		v = expr.Neg(v)
	}
	return v, true, nil
}

func (p *parser) power() (expr.Polynomial, bool, error) {
	base, ok, err := p.primary()
	if err != nil || !ok {
		return base, ok, err
	}
	if p.peek() != '^' {
		return base, true, nil
	}
	at := p.pos
	p.advance()
	exp, ok, err := p.factor()
	if err != nil {
		return expr.Polynomial{}, false, err
	}
	if !ok {
		if p.strict {
			return expr.Polynomial{}, false, p.malformed(at, "'^' without an exponent")
		}
		return base, true, nil
	}
	v, err := expr.Pow(base, exp)
	return v, err == nil, err
}

func (p *parser) primary() (expr.Polynomial, bool, error) {
	r := p.peek()
	switch {
	case r == '(':
		return p.group()
	case isDigit(r) || r == '.' && isDigit(p.runeAfter()):
		return p.numeral()
	case !startsPrimary(r):
		return expr.Zero(), false, nil
	}
	if index, ok := p.rootGlyph(); ok {
		at := p.pos
		p.skipRootGlyph()
		arg, ok, err := p.primary()
		if err != nil {
			return expr.Polynomial{}, false, err
		}
		if !ok {
			if p.strict {
				return expr.Polynomial{}, false, p.malformed(at, "root without a radicand")
			}
			return expr.Zero(), false, nil
		}
		inv, err := number.New(1, index)
		if err != nil {
			return expr.Polynomial{}, false, err
		}
		v, err := expr.Pow(arg, expr.Constant(inv))
		return v, err == nil, err
	}
	p.advance()
	return expr.Sym(string(r)), true, nil
}

func (p *parser) group() (expr.Polynomial, bool, error) {
	open := p.pos
	p.advance()
	p.depth++
	defer func() { p.depth-- }()

	inner := expr.Zero()
	found := false
	for {
		s, ok, err := p.side()
		if err != nil {
			return expr.Polynomial{}, false, err
		}
		if ok {
			found = true
			if inner, err = expr.Add(inner, s); err != nil {
				return expr.Polynomial{}, false, err
			}
		}
		switch r := p.peek(); r {
		case ')':
			p.advance()
			if !found && p.strict {
				return expr.Polynomial{}, false, p.malformed(open, "empty parentheses")
			}
			return inner, found, nil
		case eof:
			if p.strict {
				return expr.Polynomial{}, false, p.malformed(open, "unclosed '('")
			}
			return inner, found, nil
		default:
			if p.strict {
				return expr.Polynomial{}, false, p.malformed(p.pos, "unexpected %q inside parentheses", r)
			}
			p.advance()
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (p *parser) runeAfter() rune {
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if p.pos+size >= len(p.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos+size:])
	return r
}

// numeral reads digits with at most one decimal point
func (p *parser) numeral() (expr.Polynomial, bool, error) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' && !seenDot {
			seenDot = true
		} else if !isDigit(rune(c)) {
			break
		}
		p.pos++
	}
	n, err := number.Parse(p.src[start:p.pos])
	if err != nil {
		return expr.Polynomial{}, false, err
	}
	return expr.Constant(n), true, nil
}

// rootGlyph reports the index of the root glyph at the current position without consuming it
func (p *parser) rootGlyph() (int64, bool) {
	rest := p.src[p.pos:]
	r, size := utf8.DecodeRuneInString(rest)
	switch r {
	case '√':
		return 2, true
	case '∛':
		return 3, true
	case '∜':
		return 4, true
	}
	index := int64(0)
	digits := 0
	for {
		d := number.SuperscriptDigit(r)
		if d < 0 {
			break
		}
		if index > (1<<62)/10 {
			return 0, false
		}
		index = index*10 + int64(d)
		digits++
		rest = rest[size:]
		r, size = utf8.DecodeRuneInString(rest)
	}
	return index, digits > 0 && r == '√'
}

func (p *parser) skipRootGlyph() {
	for {
		r := p.rawPeek()
		p.advance()
		if r != '√' && number.SuperscriptDigit(r) >= 0 {
			continue
		}
		return
	}
}
