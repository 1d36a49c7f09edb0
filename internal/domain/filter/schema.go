package filter

// Entity names the backend collections that expose a filterable schema.
type Entity string

const (
	EntityReagents    Entity = "reagents"
	EntityBatches     Entity = "batches"
	EntityEquipment   Entity = "equipment"
	EntityExperiments Entity = "experiments"
)

// FieldSchema declares a filterable field: its wire name, display label,
// semantic type and, for enums, the allowed value set.
type FieldSchema struct {
	Field   string    `json:"field"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Options []string  `json:"options,omitempty"`
}

// Schema is the ordered field list of one entity.
type Schema []FieldSchema

// Find returns the schema entry for a field name.
func (s Schema) Find(field string) (FieldSchema, bool) {
	for _, f := range s {
		if f.Field == field {
			return f, true
		}
	}
	return FieldSchema{}, false
}

// Fields returns the wire names of all declared fields.
func (s Schema) Fields() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Field
	}
	return out
}

// Per-entity field registries. These are static: custom fields are out of
// scope, the UI builds its pickers from exactly these tables.
var schemas = map[Entity]Schema{
	EntityReagents: {
		{Field: "code", Label: "Code", Type: TypeString},
		{Field: "name", Label: "Name", Type: TypeString},
		{Field: "cas_number", Label: "CAS number", Type: TypeString},
		{Field: "unit", Label: "Unit", Type: TypeEnum, Options: []string{"g", "kg", "mg", "ml", "l", "ul", "pcs"}},
		{Field: "hazard_class", Label: "Hazard class", Type: TypeEnum, Options: []string{"none", "flammable", "corrosive", "toxic", "oxidizer", "cryogenic"}},
		{Field: "min_stock", Label: "Minimum stock", Type: TypeNumber},
		{Field: "supplier", Label: "Supplier", Type: TypeString},
		{Field: "location", Label: "Storage location", Type: TypeString},
		{Field: "created_at", Label: "Created", Type: TypeDate},
	},
	EntityBatches: {
		{Field: "lot_number", Label: "Lot number", Type: TypeString},
		{Field: "reagent_name", Label: "Reagent", Type: TypeString},
		{Field: "quantity", Label: "Quantity", Type: TypeNumber},
		{Field: "unit", Label: "Unit", Type: TypeEnum, Options: []string{"g", "kg", "mg", "ml", "l", "ul", "pcs"}},
		{Field: "status", Label: "Status", Type: TypeEnum, Options: []string{"available", "reserved", "depleted", "expired", "quarantine"}},
		{Field: "received_at", Label: "Received", Type: TypeDate},
		{Field: "expires_at", Label: "Expires", Type: TypeDate},
		{Field: "days_until_expiry", Label: "Days until expiry", Type: TypeNumber},
		{Field: "location", Label: "Storage location", Type: TypeString},
	},
	EntityEquipment: {
		{Field: "code", Label: "Code", Type: TypeString},
		{Field: "name", Label: "Name", Type: TypeString},
		{Field: "type", Label: "Type", Type: TypeEnum, Options: []string{"centrifuge", "incubator", "microscope", "balance", "ph_meter", "freezer", "other"}},
		{Field: "status", Label: "Status", Type: TypeEnum, Options: []string{"operational", "maintenance", "retired"}},
		{Field: "serial_number", Label: "Serial number", Type: TypeString},
		{Field: "calibration_due", Label: "Calibration due", Type: TypeDate},
		{Field: "location", Label: "Location", Type: TypeString},
	},
	EntityExperiments: {
		{Field: "code", Label: "Code", Type: TypeString},
		{Field: "title", Label: "Title", Type: TypeString},
		{Field: "status", Label: "Status", Type: TypeEnum, Options: []string{"draft", "running", "completed", "aborted"}},
		{Field: "lead", Label: "Lead", Type: TypeString},
		{Field: "started_at", Label: "Started", Type: TypeDate},
		{Field: "finished_at", Label: "Finished", Type: TypeDate},
	},
}

// SchemaFor returns the field schema registry for an entity.
func SchemaFor(e Entity) (Schema, bool) {
	s, ok := schemas[e]
	return s, ok
}

// Entities lists all entities with a declared schema.
func Entities() []Entity {
	return []Entity{EntityReagents, EntityBatches, EntityEquipment, EntityExperiments}
}
