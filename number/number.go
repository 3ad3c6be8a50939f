// Package number implements an exact number type: a rational times a product of integer roots.
//
// A Number is always kept in canonical form, so two Numbers denote the same value if and only
// if they are structurally equal:
//   - the rational part is in lowest terms with a positive denominator
//   - every radicand is an integer greater than 1 (nested roots are flattened into a single
//     root whose index is the product of the indices, and denominators are rationalized)
//   - a radicand contains no factor that is a perfect power for its own index, and each index
//     appears at most once
//
// Numbers are immutable values: every operation returns a new Number and leaves its operands
// untouched, so they can be shared freely between goroutines.
package number

import (
	"cmp"
	"iter"
	"math"

	"github.com/benbjohnson/immutable"
)

type Number struct {
	num, den int64
	// radicals maps a root index to its radicand, value = radicand^(1/index)
	radicals *immutable.SortedMap[int64, int64]
}

type indexComparer struct{}

func (indexComparer) Compare(a, b int64) int { return cmp.Compare(a, b) }

var emptyRadicals = immutable.NewSortedMap[int64, int64](indexComparer{})

var (
	Zero = Int(0)
	One  = Int(1)
)

func Int(n int64) Number {
	return Number{num: n, den: 1, radicals: emptyRadicals}
}

// New returns the canonical form of num/den
func New(num, den int64) (Number, error) {
	return rational(num, den)
}

// Radical returns radicand^(1/index)
func Radical(radicand, index int64) (Number, error) {
	return Int(radicand).Root(index)
}

func (n Number) denom() int64 {
	if n.den == 0 {
		return 1
	}
	return n.den
}

func (n Number) rads() *immutable.SortedMap[int64, int64] {
	if n.radicals == nil {
		return emptyRadicals
	}
	return n.radicals
}

// Num returns the numerator of the rational part
func (n Number) Num() int64 { return n.num }

// Den returns the denominator of the rational part
func (n Number) Den() int64 { return n.denom() }

// Radicals yields every root index together with its radicand, in ascending index order
func (n Number) Radicals() iter.Seq2[int64, Number] {
	return func(yield func(int64, Number) bool) {
		itr := n.rads().Iterator()
		for !itr.Done() {
			index, radicand, _ := itr.Next()
			if !yield(index, Int(radicand)) {
				return
			}
		}
	}
}

func (n Number) IsZero() bool     { return n.num == 0 }
func (n Number) IsOne() bool      { return n.num == 1 && n.denom() == 1 && n.IsRational() }
func (n Number) IsRational() bool { return n.rads().Len() == 0 }
func (n Number) IsInteger() bool  { return n.IsRational() && n.denom() == 1 }

// Int64 returns n as an integer if it is one
func (n Number) Int64() (int64, bool) {
	if !n.IsInteger() {
		return 0, false
	}
	return n.num, true
}

func (n Number) Sign() int {
	return cmp.Compare(n.num, 0)
}

func (n Number) Neg() Number {
	return Number{num: -n.num, den: n.denom(), radicals: n.rads()}
}

func (n Number) Abs() Number {
	if n.num < 0 {
		return n.Neg()
	}
	return n
}

// Float64 is a lossy view of n, for ordering and display only
func (n Number) Float64() float64 {
	f := float64(n.num) / float64(n.denom())
	itr := n.rads().Iterator()
	for !itr.Done() {
		index, radicand, _ := itr.Next()
		f *= math.Pow(float64(radicand), 1/float64(index))
	}
	return f
}

// Equal is exact: canonical forms are unique, so structural equality is value equality
func (n Number) Equal(o Number) bool {
	if n.num != o.num || n.denom() != o.denom() {
		return false
	}
	return sameRadicals(n, o)
}

func sameRadicals(a, b Number) bool {
	ra, rb := a.rads(), b.rads()
	if ra.Len() != rb.Len() {
		return false
	}
	ia, ib := ra.Iterator(), rb.Iterator()
	for !ia.Done() {
		ka, va, _ := ia.Next()
		kb, vb, _ := ib.Next()
		if ka != kb || va != vb {
			return false
		}
	}
	return true
}

// Compare orders by value. The value comparison goes through Float64, so it is only used for
// ordering; values that compare equal as floats fall back to their textual form so the order
// stays total and deterministic.
func (n Number) Compare(o Number) int {
	if c := cmp.Compare(n.Float64(), o.Float64()); c != 0 {
		return c
	}
	if n.Equal(o) {
		return 0
	}
	return cmp.Compare(n.String(), o.String())
}
