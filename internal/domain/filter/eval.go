package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"

	"labstock/internal/core/apperror"
)

// Matcher evaluates a filter tree against in-memory rows without a database
// round-trip. The tree is lowered to a CEL expression over a row map; the
// report preview endpoint and preset sanity checks use it.
type Matcher struct {
	prg  cel.Program
	expr string
}

// CompileMatcher lowers the enabled part of the tree into a CEL program.
func CompileMatcher(g *Group) (*Matcher, error) {
	expr, err := celExpr(g)
	if err != nil {
		return nil, err
	}

	env, err := cel.NewEnv(
		cel.Variable("row", cel.MapType(cel.StringType, cel.DynType)),
		// Rows carry JSON numbers as doubles while literals may be ints.
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewValidation("filter does not compile").
			WithDetail("expr", expr).
			WithCause(iss.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build cel program: %w", err)
	}

	return &Matcher{prg: prg, expr: expr}, nil
}

// Expr returns the generated CEL expression, mainly for logging.
func (m *Matcher) Expr() string {
	return m.expr
}

// Matches evaluates one row.
func (m *Matcher) Matches(row map[string]any) (bool, error) {
	out, _, err := m.prg.Eval(map[string]any{"row": row})
	if err != nil {
		return false, fmt.Errorf("eval filter: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter evaluated to %T, want bool", out.Value())
	}
	return b, nil
}

// CountMatches evaluates all rows and returns the number that match.
func (m *Matcher) CountMatches(rows []map[string]any) (int, error) {
	n := 0
	for _, row := range rows {
		ok, err := m.Matches(row)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// celExpr renders a group. An all-disabled group renders as "true".
func celExpr(g *Group) (string, error) {
	var parts []string
	for _, child := range g.Children {
		if !child.IsEnabled() {
			continue
		}
		switch c := child.(type) {
		case *Group:
			sub, err := celExpr(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, "("+sub+")")
		case *Leaf:
			leaf, err := celLeaf(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, leaf)
		}
	}
	if len(parts) == 0 {
		return "true", nil
	}
	join := " && "
	if g.Combinator == Or {
		join = " || "
	}
	return strings.Join(parts, join), nil
}

func celLeaf(l *Leaf) (string, error) {
	ref := "row[" + strconv.Quote(l.Field) + "]"

	switch l.Operator {
	case IsNull:
		return "!(" + strconv.Quote(l.Field) + " in row)", nil
	case IsNotNull:
		return "(" + strconv.Quote(l.Field) + " in row)", nil
	}

	switch l.Operator {
	case Equal, NotEqual, Greater, GreaterOrEqual, Less, LessOrEqual:
		v, err := celLiteral(l.Value)
		if err != nil {
			return "", err
		}
		sym := map[Key]string{
			Equal: "==", NotEqual: "!=",
			Greater: ">", GreaterOrEqual: ">=",
			Less: "<", LessOrEqual: "<=",
		}[l.Operator]
		return ref + " " + sym + " " + v, nil

	case Like, StartsWith, EndsWith:
		v, err := celLiteral(l.Value)
		if err != nil {
			return "", err
		}
		fn := map[Key]string{
			Like: "contains", StartsWith: "startsWith", EndsWith: "endsWith",
		}[l.Operator]
		return ref + "." + fn + "(" + v + ")", nil

	case InList, NotInList:
		vals := l.ListValues()
		members := make([]string, 0, len(vals))
		for _, v := range vals {
			lit, err := celLiteral(v)
			if err != nil {
				return "", err
			}
			members = append(members, lit)
		}
		expr := ref + " in [" + strings.Join(members, ", ") + "]"
		if l.Operator == NotInList {
			expr = "!(" + expr + ")"
		}
		return expr, nil

	case Between, NotBetween:
		from, to := l.RangeBounds()
		fromLit, err := celLiteral(from)
		if err != nil {
			return "", err
		}
		toLit, err := celLiteral(to)
		if err != nil {
			return "", err
		}
		expr := "(" + ref + " >= " + fromLit + " && " + ref + " <= " + toLit + ")"
		if l.Operator == NotBetween {
			expr = "!" + expr
		}
		return expr, nil
	}

	return "", apperror.NewValidation("unknown filter operator").
		WithDetail("operator", string(l.Operator))
}

func celLiteral(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return strconv.Quote(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	}
	return "", apperror.NewValidation("unsupported filter value type").
		WithDetail("type", fmt.Sprintf("%T", v))
}
