package ccgen

import "fmt"

// ArrayDimensionParser resolves array dimension expressions to numeric
// constants where possible, falling back to literal text otherwise
// (spec.md §4.1: "unresolved dimensions are retained as literal text...
// no error is raised here").
//
// Grounded on the teacher's RangeNode/numeric literal handling in
// grammar_ast.go, cross-used here with LiteralEvaluator and the
// registry's constValues table exactly as spec.md §4.1 describes.
type ArrayDimensionParser struct {
	lit *LiteralEvaluator
}

func NewArrayDimensionParser(lit *LiteralEvaluator) *ArrayDimensionParser {
	return &ArrayDimensionParser{lit: lit}
}

// Resolve attempts to turn expr into a concrete positive integer,
// consulting constValues for bare-identifier dimensions (named
// constants). sizeof of a registered primitive is folded per spec.md §9
// Open Question #2; sizeof of a user type is left as text.
func (p *ArrayDimensionParser) Resolve(expr Expression, constValues map[string]int64) ArrayDimension {
	sp := expr.Span()
	switch n := expr.(type) {
	case *IntLiteralExpr:
		if lv, err := p.lit.Eval(n.Text); err == nil {
			return ResolvedDimension(sp, int(lv.Value))
		}
		return UnresolvedDimension(sp, n.Text)

	case *IdentifierExpr:
		if v, ok := constValues[n.Name]; ok {
			return ResolvedDimension(sp, int(v))
		}
		return UnresolvedDimension(sp, n.Name)

	case *CallExpr:
		if callee, ok := n.Callee.(*IdentifierExpr); ok && callee.Name == "sizeof" && len(n.Args) == 1 {
			if arg, ok := n.Args[0].(*IdentifierExpr); ok {
				if width, ok := TypeWidth[arg.Name]; ok {
					return ResolvedDimension(sp, width/8)
				}
			}
		}
		return UnresolvedDimension(sp, exprText(expr))

	case *BinaryExpr:
		left := p.Resolve(n.Left, constValues)
		right := p.Resolve(n.Right, constValues)
		if left.Resolved && right.Resolved {
			v, ok := foldArith(n.Op, left.Value, right.Value)
			if ok {
				return ResolvedDimension(sp, v)
			}
		}
		return UnresolvedDimension(sp, exprText(expr))

	default:
		return UnresolvedDimension(sp, exprText(expr))
	}
}

func foldArith(op string, a, b int) (int, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	default:
		return 0, false
	}
}

// exprText is a best-effort textual fallback for dimensions that cannot
// be resolved, so downstream text is still well-formed C (spec.md §4.1:
// "the backend's unresolved text is passed through to the C compiler").
func exprText(expr Expression) string {
	switch n := expr.(type) {
	case *IdentifierExpr:
		return n.Name
	case *IntLiteralExpr:
		return n.Text
	case *BinaryExpr:
		return fmt.Sprintf("%s %s %s", exprText(n.Left), n.Op, exprText(n.Right))
	case *CallExpr:
		if callee, ok := n.Callee.(*IdentifierExpr); ok {
			args := ""
			for i, a := range n.Args {
				if i > 0 {
					args += ", "
				}
				args += exprText(a)
			}
			return fmt.Sprintf("%s(%s)", callee.Name, args)
		}
	}
	return "/* unresolved */"
}
