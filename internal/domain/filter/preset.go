package filter

// Preset is a named, pre-built wire-format filter tree for a common query.
// Applying one replaces the whole current tree (see Builder.ApplyPreset).
type Preset struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Entity Entity   `json:"entity"`
	Filter WireNode `json:"filter"`
}

// Presets is the static preset library. Numeric literals are float64 so an
// applied preset is indistinguishable from one decoded off the wire.
var Presets = []Preset{
	{
		Name:   "low_stock",
		Label:  "Low stock",
		Entity: EntityBatches,
		Filter: WireNode{
			Group: And,
			Items: []WireNode{
				{Field: "quantity", Operator: LessOrEqual, Value: float64(10)},
				{Field: "status", Operator: Equal, Value: "available"},
			},
		},
	},
	{
		Name:   "expiring_soon",
		Label:  "Expiring soon",
		Entity: EntityBatches,
		Filter: WireNode{
			Group: And,
			Items: []WireNode{
				{Field: "days_until_expiry", Operator: Between, Value: Range{From: float64(0), To: float64(30)}},
				{Field: "status", Operator: Equal, Value: "available"},
			},
		},
	},
	{
		Name:   "expired",
		Label:  "Expired",
		Entity: EntityBatches,
		Filter: WireNode{
			Group: Or,
			Items: []WireNode{
				{Field: "status", Operator: Equal, Value: "expired"},
				{Field: "days_until_expiry", Operator: Less, Value: float64(0)},
			},
		},
	},
	{
		Name:   "available",
		Label:  "Available",
		Entity: EntityBatches,
		Filter: WireNode{
			Group: And,
			Items: []WireNode{
				{Field: "status", Operator: Equal, Value: "available"},
			},
		},
	},
}

// PresetsFor returns the presets declared for an entity.
func PresetsFor(e Entity) []Preset {
	var out []Preset
	for _, p := range Presets {
		if p.Entity == e {
			out = append(out, p)
		}
	}
	return out
}

// FindPreset returns a preset by name.
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
