package backend

import (
	"bytes"
	"fmt"
	goast "go/ast"
	"go/format"
	"go/token"
	"log/slog"
	"strconv"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/internal/log"
	"github.com/cottand/surd/number"
)

const cmplxPkg = "cmplx"

// Transpiler turns a polynomial into Go source for a function
//
//	func Eval(vars map[string]complex128) complex128
//
// which evaluates it numerically. i is the imaginary unit and never read from vars.
type Transpiler struct {
	// FuncName is the name of the generated function, Eval when empty
	FuncName string

	usesCmplx bool

	*slog.Logger
}

func NewTranspiler() *Transpiler {
	return &Transpiler{
		Logger: log.Section("backend"),
	}
}

const varsParam = "vars"

func (tp *Transpiler) funcName() string {
	if tp.FuncName == "" {
		return "Eval"
	}
	return tp.FuncName
}

// TranspileFile returns a Go file in package pkgName holding the evaluation function for p
func (tp *Transpiler) TranspileFile(pkgName string, p expr.Polynomial) (*goast.File, error) {
	if !token.IsIdentifier(pkgName) {
		return nil, fmt.Errorf("invalid package name %q", pkgName)
	}
	if !token.IsIdentifier(tp.funcName()) {
		return nil, fmt.Errorf("invalid function name %q", tp.funcName())
	}
	tp.usesCmplx = false
	body := tp.transpilePolynomial(p)

	var decls []goast.Decl
	if tp.usesCmplx {
		decls = append(decls, &goast.GenDecl{
			Tok: token.IMPORT,
			Specs: []goast.Spec{&goast.ImportSpec{
				Path: &goast.BasicLit{Kind: token.STRING, Value: strconv.Quote("math/cmplx")},
			}},
		})
	}
	decls = append(decls, &goast.FuncDecl{
		Name: goast.NewIdent(tp.funcName()),
		Type: &goast.FuncType{
			Params: &goast.FieldList{List: []*goast.Field{{
				Names: []*goast.Ident{goast.NewIdent(varsParam)},
				Type: &goast.MapType{
					Key:   goast.NewIdent("string"),
					Value: goast.NewIdent("complex128"),
				},
			}}},
			Results: &goast.FieldList{List: []*goast.Field{{Type: goast.NewIdent("complex128")}}},
		},
		Body: &goast.BlockStmt{List: []goast.Stmt{
			&goast.ReturnStmt{Results: []goast.Expr{body}},
		}},
	})
	if tp.Logger != nil {
		tp.Debug("transpiled polynomial", "polynomial", p.String(), "func", tp.funcName())
	}
	return &goast.File{
		Name:  goast.NewIdent(pkgName),
		Decls: decls,
	}, nil
}

// Transpile renders p as a formatted Go file in package main
func Transpile(p expr.Polynomial) (string, error) {
	f, err := NewTranspiler().TranspileFile("main", p)
	if err != nil {
		return "", err
	}
	return Source(f)
}

// Source formats file as Go source
func Source(file *goast.File) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := format.Node(buf, token.NewFileSet(), file); err != nil {
		return "", fmt.Errorf("could not format generated code: %w", err)
	}
	return buf.String(), nil
}

func (tp *Transpiler) transpilePolynomial(p expr.Polynomial) goast.Expr {
	if p.IsZero() {
		return complexLit("0")
	}
	var sum goast.Expr
	for _, t := range p.Terms() {
		term := tp.transpileMonomial(t)
		if sum == nil {
			sum = term
			continue
		}
		sum = &goast.BinaryExpr{X: sum, Op: token.ADD, Y: term}
	}
	return sum
}

func (tp *Transpiler) transpileMonomial(m expr.Monomial) goast.Expr {
	acc := tp.transpileNumber(m.Coefficient())
	for sym, exp := range m.Vars() {
		var base goast.Expr
		if sym == expr.ImaginaryUnit {
			base = &goast.BasicLit{Kind: token.IMAG, Value: "1i"}
		} else {
			base = &goast.IndexExpr{
				X:     goast.NewIdent(varsParam),
				Index: &goast.BasicLit{Kind: token.STRING, Value: strconv.Quote(sym)},
			}
		}
		acc = tp.mulPower(acc, base, exp)
	}
	for pw := range m.Irreducibles() {
		tp.usesCmplx = true
		acc = &goast.BinaryExpr{X: acc, Op: token.MUL, Y: cmplxCall("Pow",
			tp.transpilePolynomial(pw.Base),
			tp.transpilePolynomial(pw.Exp),
		)}
	}
	return acc
}

// maxUnrolled is the largest integer power written out as repeated multiplication
const maxUnrolled = 4

// mulPower returns acc * base^exp, or acc / base^-exp for negative integer exponents
func (tp *Transpiler) mulPower(acc, base goast.Expr, exp number.Number) goast.Expr {
	n, isInt := exp.Int64()
	if !isInt || n > maxUnrolled || n < -maxUnrolled {
		tp.usesCmplx = true
		return &goast.BinaryExpr{X: acc, Op: token.MUL, Y: cmplxCall("Pow", base, tp.transpileNumber(exp))}
	}
	op := token.MUL
	if n < 0 {
		op, n = token.QUO, -n
	}
	var power goast.Expr = base
	for ; n > 1; n-- {
		power = &goast.BinaryExpr{X: power, Op: token.MUL, Y: base}
	}
	if _, product := power.(*goast.BinaryExpr); product {
		power = &goast.ParenExpr{X: power}
	}
	return &goast.BinaryExpr{X: acc, Op: op, Y: power}
}

// transpileNumber writes num/den * prod radicand^(1/index) as a complex128 expression
func (tp *Transpiler) transpileNumber(n number.Number) goast.Expr {
	var acc goast.Expr = complexLit(strconv.FormatInt(n.Num(), 10))
	if d := n.Den(); d != 1 {
		acc = &goast.BinaryExpr{X: acc, Op: token.QUO, Y: complexLit(strconv.FormatInt(d, 10))}
	}
	for index, radicand := range n.Radicals() {
		tp.usesCmplx = true
		r := complexLit(radicand.String())
		var root goast.Expr
		if index == 2 {
			root = cmplxCall("Sqrt", r)
		} else {
			root = cmplxCall("Pow", r, complexLit("1.0/"+strconv.FormatInt(index, 10)))
		}
		acc = &goast.BinaryExpr{X: acc, Op: token.MUL, Y: root}
	}
	return acc
}

// complexLit is complex(v, 0) for a real constant expression v
func complexLit(v string) goast.Expr {
	return &goast.CallExpr{
		Fun: goast.NewIdent("complex"),
		Args: []goast.Expr{
			&goast.BasicLit{Kind: token.FLOAT, Value: v},
			&goast.BasicLit{Kind: token.INT, Value: "0"},
		},
	}
}

func cmplxCall(fn string, args ...goast.Expr) goast.Expr {
	return &goast.CallExpr{
		Fun:  &goast.SelectorExpr{X: goast.NewIdent(cmplxPkg), Sel: goast.NewIdent(fn)},
		Args: args,
	}
}
