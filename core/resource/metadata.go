package resource

import "regexp"

// FieldType is the storage type of a field, used for schema synthesis.
type FieldType string

// all supported field types
const (
	FieldString    FieldType = "string"
	FieldUUID      FieldType = "uuid"
	FieldTimestamp FieldType = "timestamp"
)

// Field declares one attribute of a resource: its API-facing name, its
// storage column and the rules that drive both validation and OpenAPI schema
// synthesis. Keeping the two on a single declaration is what keeps the
// documentation consistent with runtime behavior.
type Field struct {
	// Name is the API-facing attribute name, e.g. "firstName".
	Name string
	// Column is the storage column, e.g. "first_name".
	Column string
	// Type defaults to FieldString when empty.
	Type FieldType
	// Required fields reject missing or null values on write, unless
	// AllowNullOnWrite whitelists them or Default fills them in.
	Required bool
	// AllowNullOnWrite suppresses the null violation for a required field.
	AllowNullOnWrite bool
	// ReadOnly fields are engine-assigned (id, timestamps); they are never
	// writable and never validated.
	ReadOnly bool
	// Unique marks a field backed by a unique constraint.
	Unique bool
	// NotEmpty rejects the empty string.
	NotEmpty bool
	// Enum lists the allowed values, when restricted.
	Enum []string
	// Format is the OpenAPI format hint ("email", "uuid", "date-time").
	// "email" is also enforced at validation time.
	Format string
	// Pattern, when set, must match the value. PatternHint is the
	// human-readable rule appended to the violation message.
	Pattern     *regexp.Regexp
	PatternHint string
	// Default documents the value the storage layer assigns when the field
	// is omitted. A required field with a default raises no null violation.
	Default interface{}
}

// Association declares a named relationship to another resource, used for
// both embedding (eager load) and relational filtering.
type Association struct {
	// Name is the relation name clients use, e.g. "notes".
	Name string
	// FieldName is the Go struct field holding the embedded models.
	FieldName string
	// ForeignKey is the column on the target table referencing this
	// resource's id.
	ForeignKey string
	// Target is the metadata of the related resource. Its table name is
	// what dotted filter keys resolve against.
	Target *Metadata
}

// Metadata is the immutable per-resource configuration record the generic
// engine is parameterized with. Defined once at startup, never mutated.
type Metadata struct {
	// Name is the singular resource name, e.g. "customer". It prefixes
	// validation messages and, capitalized, keys the component schema.
	Name string
	// Table is the storage table name.
	Table string
	// IDColumn is the unique id column, "id" for all current resources.
	IDColumn string
	// QueryAttributes are the attributes free-text search matches against,
	// in declaration order.
	QueryAttributes []string
	// FilterAttributes are the filter keys the list endpoint accepts.
	// Dotted keys ("notes.text") address an association's attribute.
	FilterAttributes []string
	// Fields in declaration order; violation messages keep this order.
	Fields []Field
	// Associations available for embedding and relational filtering.
	Associations []Association
}

// Field returns the field declaration for the given API attribute name.
func (m *Metadata) Field(name string) (*Field, bool) {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i], true
		}
	}
	return nil, false
}

// Column resolves an API attribute name to its storage column. The second
// return is false for unknown attributes, which callers drop silently.
func (m *Metadata) Column(attribute string) (string, bool) {
	field, ok := m.Field(attribute)
	if !ok {
		return "", false
	}
	return field.Column, true
}

// Association returns the association with the given relation name.
func (m *Metadata) Association(name string) (*Association, bool) {
	for i := range m.Associations {
		if m.Associations[i].Name == name {
			return &m.Associations[i], true
		}
	}
	return nil, false
}

// AssociationByTable resolves an association by its target's storage table
// name, the way dotted filter keys address relations.
func (m *Metadata) AssociationByTable(table string) (*Association, bool) {
	for i := range m.Associations {
		if m.Associations[i].Target != nil && m.Associations[i].Target.Table == table {
			return &m.Associations[i], true
		}
	}
	return nil, false
}
