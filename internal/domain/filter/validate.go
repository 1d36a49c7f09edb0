package filter

import (
	"labstock/internal/core/apperror"
)

// ValidateAgainst checks every enabled leaf of the tree against a field
// schema: the field must be declared, the operator known, and the operator
// legal for the field's semantic type. The codec deliberately lets unknown
// names pass through; this is the boundary that rejects them.
func (g *Group) ValidateAgainst(schema Schema) error {
	for _, child := range g.Children {
		if !child.IsEnabled() {
			continue
		}
		switch c := child.(type) {
		case *Group:
			if err := c.ValidateAgainst(schema); err != nil {
				return err
			}
		case *Leaf:
			fs, ok := schema.Find(c.Field)
			if !ok {
				return apperror.NewValidation("unknown filter field").
					WithDetail("field", c.Field)
			}
			op, known := Lookup(c.Operator)
			if !known {
				return apperror.NewValidation("unknown filter operator").
					WithDetail("operator", string(c.Operator))
			}
			if !op.AppliesTo(fs.Type) {
				return apperror.NewValidation("operator not applicable to field type").
					WithDetail("operator", string(c.Operator)).
					WithDetail("field", c.Field).
					WithDetail("type", string(fs.Type))
			}
		}
	}
	return nil
}
