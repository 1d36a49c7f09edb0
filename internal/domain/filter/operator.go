// Package filter implements the advanced filter engine: a recursive AND/OR
// tree of typed field conditions, its wire JSON serialization, per-entity
// field schemas and a library of named presets.
package filter

// FieldType is the semantic type of a filterable field.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeDate   FieldType = "date"
	TypeEnum   FieldType = "enum"
)

// Key identifies a comparison operator.
type Key string

const (
	Equal          Key = "eq"
	NotEqual       Key = "neq"
	Greater        Key = "gt"
	GreaterOrEqual Key = "gte"
	Less           Key = "lt"
	LessOrEqual    Key = "lte"
	Like           Key = "like"
	StartsWith     Key = "starts_with"
	EndsWith       Key = "ends_with"
	InList         Key = "in"
	NotInList      Key = "not_in"
	IsNull         Key = "is_null"
	IsNotNull      Key = "is_not_null"
	Between        Key = "between"
	NotBetween     Key = "not_between"
)

// Operator is an immutable registry entry describing a comparison operator
// and the field types it applies to.
type Operator struct {
	Key             Key         `json:"key"`
	Label           string      `json:"label"`
	Symbol          string      `json:"symbol"`
	ApplicableTypes []FieldType `json:"applicableTypes"`

	// IsRange operators carry a {from, to} value pair.
	IsRange bool `json:"isRange,omitempty"`

	// NoValue operators carry no value at all.
	NoValue bool `json:"noValue,omitempty"`
}

// AppliesTo reports whether the operator is legal for the given field type.
func (o Operator) AppliesTo(t FieldType) bool {
	for _, a := range o.ApplicableTypes {
		if a == t {
			return true
		}
	}
	return false
}

var allTypes = []FieldType{TypeString, TypeNumber, TypeDate, TypeEnum}
var ordered = []FieldType{TypeNumber, TypeDate}

// Operators is the static operator registry. Order matters: when a field
// change invalidates the current operator, the first legal entry wins.
var Operators = []Operator{
	{Key: Equal, Label: "equals", Symbol: "=", ApplicableTypes: allTypes},
	{Key: NotEqual, Label: "not equals", Symbol: "≠", ApplicableTypes: allTypes},
	{Key: Greater, Label: "greater than", Symbol: ">", ApplicableTypes: ordered},
	{Key: GreaterOrEqual, Label: "greater or equal", Symbol: "≥", ApplicableTypes: ordered},
	{Key: Less, Label: "less than", Symbol: "<", ApplicableTypes: ordered},
	{Key: LessOrEqual, Label: "less or equal", Symbol: "≤", ApplicableTypes: ordered},
	{Key: Like, Label: "contains", Symbol: "~", ApplicableTypes: []FieldType{TypeString}},
	{Key: StartsWith, Label: "starts with", Symbol: "^", ApplicableTypes: []FieldType{TypeString}},
	{Key: EndsWith, Label: "ends with", Symbol: "$", ApplicableTypes: []FieldType{TypeString}},
	{Key: InList, Label: "in list", Symbol: "∈", ApplicableTypes: []FieldType{TypeString, TypeNumber, TypeEnum}},
	{Key: NotInList, Label: "not in list", Symbol: "∉", ApplicableTypes: []FieldType{TypeString, TypeNumber, TypeEnum}},
	{Key: IsNull, Label: "is empty", Symbol: "∅", ApplicableTypes: allTypes, NoValue: true},
	{Key: IsNotNull, Label: "is not empty", Symbol: "!∅", ApplicableTypes: allTypes, NoValue: true},
	{Key: Between, Label: "between", Symbol: "↔", ApplicableTypes: ordered, IsRange: true},
	{Key: NotBetween, Label: "not between", Symbol: "!↔", ApplicableTypes: ordered, IsRange: true},
}

var operatorIndex = func() map[Key]Operator {
	m := make(map[Key]Operator, len(Operators))
	for _, op := range Operators {
		m[op.Key] = op
	}
	return m
}()

// Lookup returns the registry entry for the given key.
func Lookup(k Key) (Operator, bool) {
	op, ok := operatorIndex[k]
	return op, ok
}

// OperatorsFor returns the legal operators for a field type, in registry order.
func OperatorsFor(t FieldType) []Operator {
	var out []Operator
	for _, op := range Operators {
		if op.AppliesTo(t) {
			out = append(out, op)
		}
	}
	return out
}

// FirstOperatorFor returns the first legal operator for a field type.
// Every field type has at least one legal operator (eq applies to all).
func FirstOperatorFor(t FieldType) Operator {
	for _, op := range Operators {
		if op.AppliesTo(t) {
			return op
		}
	}
	// Unreachable while eq applies to every type.
	return Operators[0]
}
