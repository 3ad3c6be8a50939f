package number

import (
	"strconv"
	"strings"

	"github.com/cottand/surd/surderr"
)

var superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

// RootGlyph returns the glyph used to render a root of the given index: √, ∛, ∜, or the
// index in superscript digits followed by √
func RootGlyph(index int64) string {
	switch index {
	case 2:
		return "√"
	case 3:
		return "∛"
	case 4:
		return "∜"
	}
	sb := strings.Builder{}
	for _, d := range strconv.FormatInt(index, 10) {
		sb.WriteRune(superscripts[d-'0'])
	}
	sb.WriteString("√")
	return sb.String()
}

// SuperscriptDigit returns the value of a superscript digit rune, or -1
func SuperscriptDigit(r rune) int {
	for i, s := range superscripts {
		if s == r {
			return i
		}
	}
	return -1
}

func (n Number) String() string {
	return n.StringWith("")
}

// StringWith renders n as the coefficient of a term whose symbolic part is inner.
// The layout is sign, numerator (left out when it is 1 and something follows), radicals,
// inner, then the denominator: 3√(2)x/2.
func (n Number) StringWith(inner string) string {
	if n.IsZero() {
		return "0"
	}
	sb := strings.Builder{}
	num := n.num
	if num < 0 {
		sb.WriteByte('-')
		num = -num
	}
	if num != 1 || (n.IsRational() && inner == "") {
		sb.WriteString(strconv.FormatInt(num, 10))
	}
	itr := n.rads().Iterator()
	for !itr.Done() {
		index, radicand, _ := itr.Next()
		sb.WriteString(RootGlyph(index))
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatInt(radicand, 10))
		sb.WriteByte(')')
	}
	sb.WriteString(inner)
	if d := n.denom(); d != 1 {
		sb.WriteByte('/')
		sb.WriteString(strconv.FormatInt(d, 10))
	}
	return sb.String()
}

// Parse reads a decimal numeral such as 12, -3, 2.5 or .75 into its exact value
func Parse(s string) (Number, error) {
	if s == "" {
		return Number{}, surderr.New(surderr.MalformedInput, "empty numeral")
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	num, den := int64(0), int64(1)
	seenDot, digits := false, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.' && !seenDot:
			seenDot = true
		case c >= '0' && c <= '9':
			var err error
			if num, err = mul64(num, 10); err != nil {
				return Number{}, surderr.New(surderr.Overflow, "numeral %q does not fit in 64 bits", s)
			}
			if num, err = add64(num, int64(c-'0')); err != nil {
				return Number{}, surderr.New(surderr.Overflow, "numeral %q does not fit in 64 bits", s)
			}
			if seenDot {
				if den, err = mul64(den, 10); err != nil {
					return Number{}, surderr.New(surderr.Overflow, "numeral %q has too many decimals", s)
				}
			}
			digits++
		default:
			return Number{}, surderr.NewAt(surderr.MalformedInput, i, "unexpected %q in numeral", c)
		}
	}
	if digits == 0 {
		return Number{}, surderr.New(surderr.MalformedInput, "numeral %q has no digits", s)
	}
	if neg {
		num = -num
	}
	return rational(num, den)
}

// MustParse is Parse for literals known to be valid, it panics otherwise
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}
