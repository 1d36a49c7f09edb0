package postgres

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"labstock/internal/core/apperror"
	"labstock/internal/domain/filter"
)

// ColumnMap maps wire field names to SQL column expressions. Values are
// spliced into SQL verbatim, so every entry is part of the injection
// whitelist: only fields present in the map compile.
//
// Plain columns map to themselves; computed fields map to expressions,
// e.g. "days_until_expiry" -> "(expires_at::date - CURRENT_DATE)".
type ColumnMap map[string]string

// IdentityColumns builds a ColumnMap where each column maps to itself.
func IdentityColumns(cols []string) ColumnMap {
	m := make(ColumnMap, len(cols))
	for _, c := range cols {
		m[c] = c
	}
	return m
}

// With returns a copy of the map extended with extra entries.
func (m ColumnMap) With(extra ColumnMap) ColumnMap {
	out := make(ColumnMap, len(m)+len(extra))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// BuildPredicate compiles the enabled part of a filter tree into a squirrel
// predicate. Returns nil when nothing in the tree is enabled, meaning no
// WHERE clause should be added.
func BuildPredicate(g *filter.Group, cols ColumnMap) (squirrel.Sqlizer, error) {
	if g == nil || !g.Enabled {
		return nil, nil
	}
	return groupPredicate(g, cols)
}

func groupPredicate(g *filter.Group, cols ColumnMap) (squirrel.Sqlizer, error) {
	var parts []squirrel.Sqlizer
	for _, child := range g.Children {
		if !child.IsEnabled() {
			continue
		}
		switch c := child.(type) {
		case *filter.Group:
			sub, err := groupPredicate(c, cols)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				parts = append(parts, sub)
			}
		case *filter.Leaf:
			pred, err := leafPredicate(c, cols)
			if err != nil {
				return nil, err
			}
			parts = append(parts, pred)
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}
	if g.Combinator == filter.Or {
		return squirrel.Or(parts), nil
	}
	return squirrel.And(parts), nil
}

func leafPredicate(l *filter.Leaf, cols ColumnMap) (squirrel.Sqlizer, error) {
	expr, ok := cols[l.Field]
	if !ok {
		return nil, apperror.NewValidation("invalid filter column").
			WithDetail("field", l.Field)
	}

	switch l.Operator {
	case filter.Equal:
		return squirrel.Eq{expr: l.Value}, nil
	case filter.NotEqual:
		return squirrel.NotEq{expr: l.Value}, nil
	case filter.Greater:
		return squirrel.Gt{expr: l.Value}, nil
	case filter.GreaterOrEqual:
		return squirrel.GtOrEq{expr: l.Value}, nil
	case filter.Less:
		return squirrel.Lt{expr: l.Value}, nil
	case filter.LessOrEqual:
		return squirrel.LtOrEq{expr: l.Value}, nil

	case filter.Like:
		return squirrel.ILike{expr: fmt.Sprintf("%%%v%%", l.Value)}, nil
	case filter.StartsWith:
		return squirrel.ILike{expr: fmt.Sprintf("%v%%", l.Value)}, nil
	case filter.EndsWith:
		return squirrel.ILike{expr: fmt.Sprintf("%%%v", l.Value)}, nil

	case filter.InList:
		return squirrel.Eq{expr: l.ListValues()}, nil
	case filter.NotInList:
		return squirrel.NotEq{expr: l.ListValues()}, nil

	case filter.IsNull:
		return squirrel.Eq{expr: nil}, nil
	case filter.IsNotNull:
		return squirrel.NotEq{expr: nil}, nil

	case filter.Between:
		from, to := l.RangeBounds()
		return squirrel.Expr(expr+" BETWEEN ? AND ?", from, to), nil
	case filter.NotBetween:
		from, to := l.RangeBounds()
		return squirrel.Expr(expr+" NOT BETWEEN ? AND ?", from, to), nil
	}

	return nil, apperror.NewValidation("unknown filter operator").
		WithDetail("operator", string(l.Operator))
}
