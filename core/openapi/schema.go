package openapi

import (
	"github.com/goccy/go-json"

	"github.com/intectum/propellerhead/core"
	"github.com/intectum/propellerhead/core/resource"
)

// BuildObjectSchema synthesizes the component schema for a resource from its
// field definitions. Engine-assigned fields are marked read-only and
// associations appear as read-only arrays referencing the target component,
// so one schema serves both request and response documentation.
func BuildObjectSchema(meta *resource.Metadata) *Schema {
	properties := map[string]*Schema{}
	var required []string

	for i := range meta.Fields {
		field := &meta.Fields[i]
		property := &Schema{
			Type:    schemaType(field.Type),
			Format:  field.Format,
			Enum:    field.Enum,
			Default: field.Default,
		}
		if field.Pattern != nil {
			property.Pattern = field.Pattern.String()
		}
		if field.ReadOnly {
			property.ReadOnly = true
		}
		if !field.Required && !field.ReadOnly {
			property.Nullable = true
		}
		properties[field.Name] = property
		if field.Required && !field.ReadOnly && field.Default == nil {
			required = append(required, field.Name)
		}
	}

	for i := range meta.Associations {
		association := &meta.Associations[i]
		properties[association.Name] = &Schema{
			Type:     "array",
			ReadOnly: true,
			Items:    &Schema{Ref: componentRef(association.Target.Name)},
		}
	}

	return &Schema{Type: "object", Properties: properties, Required: required}
}

// BuildArraySchema synthesizes the list-response schema: a thin array
// wrapper referencing the object schema.
func BuildArraySchema(resourceName string) *Schema {
	return &Schema{Type: "array", Items: &Schema{Ref: componentRef(resourceName)}}
}

// WritableSchemaJSON projects the resource's writable fields into a plain
// JSON schema used for structural request-body validation. It only enforces
// JSON types; presence, null, enum and pattern rules are left to
// resource.Validate so violation messages stay uniform. Every property also
// admits null for the same reason.
func WritableSchemaJSON(meta *resource.Metadata) []byte {
	properties := map[string]interface{}{}
	for i := range meta.Fields {
		field := &meta.Fields[i]
		if field.ReadOnly {
			continue
		}
		properties[field.Name] = map[string]interface{}{
			"type": []string{schemaType(field.Type), "null"},
		}
	}
	for i := range meta.Associations {
		properties[meta.Associations[i].Name] = map[string]interface{}{
			"type": []string{"array", "null"},
		}
	}
	data, _ := json.Marshal(map[string]interface{}{
		"type":       "object",
		"properties": properties,
	})
	return data
}

func schemaType(t resource.FieldType) string {
	// uuids and timestamps are strings on the wire
	return "string"
}

func componentRef(resourceName string) string {
	return "#/components/schemas/" + core.Capitalize(resourceName)
}
