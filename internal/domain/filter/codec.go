package filter

import (
	"encoding/json"
	"net/url"

	"labstock/internal/core/apperror"
)

// QueryParam is the query-string parameter carrying a URL-encoded wire
// filter on GET report links.
const QueryParam = "filters"

// WireNode is the JSON wire format exchanged with report endpoints. A node
// is a group when it carries a combinator (or items), otherwise a leaf.
//
//	Group := {"group": "AND"|"OR", "items": [...]}
//	Leaf  := {"field": ..., "operator": ..., "value"?: scalar | array | {"from", "to"}}
type WireNode struct {
	Group Combinator `json:"group,omitempty"`
	Items []WireNode `json:"items,omitempty"`

	Field    string `json:"field,omitempty"`
	Operator Key    `json:"operator,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// Range is the wire value of a range operator.
type Range struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ToWire serializes a tree into its wire form. Disabled leaves and groups
// are pruned recursively, not merely hidden. Node ids never leave the
// process.
func ToWire(g *Group) WireNode {
	w := WireNode{Group: g.Combinator}
	for _, child := range g.Children {
		if !child.IsEnabled() {
			continue
		}
		switch c := child.(type) {
		case *Group:
			w.Items = append(w.Items, ToWire(c))
		case *Leaf:
			w.Items = append(w.Items, leafToWire(c))
		}
	}
	return w
}

func leafToWire(l *Leaf) WireNode {
	w := WireNode{Field: l.Field, Operator: l.Operator}
	op, known := Lookup(l.Operator)

	switch {
	case known && op.NoValue:
		// is_null / is_not_null carry no value key at all.

	case known && op.IsRange:
		from, to := l.RangeBounds()
		w.Value = Range{From: from, To: to}

	case l.Operator == InList || l.Operator == NotInList:
		w.Value = l.ListValues()

	default:
		w.Value = l.Value
	}
	return w
}

// isFalsy mirrors the truthiness rules of the consuming UI: empty members
// of a set value are dropped before transmission.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	}
	return false
}

// FromWire reconstructs a tree from its wire form. Every node receives a
// fresh id and Enabled defaults to true. Range values seed the scalar Value
// from "from" so a leaf edited back to a non-range operator keeps a
// sensible value.
//
// Unknown operator keys and field names pass through uninterpreted; they
// are rejected later, at the SQL compilation boundary. Groups may come back
// empty when every serialized child was pruned — only Builder mutations
// maintain the non-empty invariant.
func FromWire(w WireNode) (*Group, error) {
	if !isGroupNode(w) {
		return nil, apperror.NewMalformedFilter("filter root must be a group")
	}
	return groupFromWire(w)
}

func groupFromWire(w WireNode) (*Group, error) {
	comb := w.Group
	if comb == "" {
		comb = And
	}
	if comb != And && comb != Or {
		return nil, apperror.NewMalformedFilter("unknown group combinator").
			WithDetail("group", string(w.Group))
	}

	g := NewGroup(comb)
	for _, item := range w.Items {
		if isGroupNode(item) {
			sub, err := groupFromWire(item)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, sub)
			continue
		}
		if item.Field == "" && item.Operator == "" {
			return nil, apperror.NewMalformedFilter("filter item is neither group nor leaf")
		}
		g.Children = append(g.Children, leafFromWire(item))
	}
	return g, nil
}

func isGroupNode(w WireNode) bool {
	return w.Group != "" || (w.Field == "" && w.Operator == "" && w.Items != nil)
}

func leafFromWire(w WireNode) *Leaf {
	l := NewLeaf(w.Field, w.Operator)

	switch v := w.Value.(type) {
	case nil:
	case map[string]any:
		if from, ok := v["from"]; ok {
			l.ValueFrom = from
			l.ValueTo = v["to"]
			l.Value = from
		} else {
			l.Value = v
		}
	case Range:
		l.ValueFrom = v.From
		l.ValueTo = v.To
		l.Value = v.From
	case []any:
		l.Values = v
	default:
		l.Value = v
	}
	return l
}

// Parse decodes wire JSON bytes into a tree. Malformed JSON yields a
// structured MALFORMED_FILTER error, never a panic.
func Parse(data []byte) (*Group, error) {
	var w WireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, apperror.NewMalformedFilter("invalid filter JSON").WithCause(err)
	}
	return FromWire(w)
}

// Marshal encodes a tree into wire JSON bytes.
func Marshal(g *Group) ([]byte, error) {
	return json.Marshal(ToWire(g))
}

// EncodeQuery renders a tree as the URL-encoded value of the "filters"
// query parameter.
func EncodeQuery(g *Group) (string, error) {
	data, err := Marshal(g)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(data)), nil
}

// DecodeQuery is the reverse of EncodeQuery. Gin hands the parameter over
// already unescaped; DecodeQuery accepts both raw and escaped input.
func DecodeQuery(raw string) (*Group, error) {
	s, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, apperror.NewMalformedFilter("invalid filter query encoding").WithCause(err)
	}
	return Parse([]byte(s))
}
