package resource

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func widgetMeta() *Metadata {
	gadgetMeta := &Metadata{
		Name:     "gadget",
		Table:    "gadgets",
		IDColumn: "id",
		Fields: []Field{
			{Name: "id", Column: "id", Type: FieldUUID, ReadOnly: true},
			{Name: "label", Column: "label", Required: true, NotEmpty: true},
			{Name: "widgetId", Column: "widget_id", Type: FieldUUID, Required: true},
		},
	}
	return &Metadata{
		Name:             "widget",
		Table:            "widgets",
		IDColumn:         "id",
		QueryAttributes:  []string{"name", "serial"},
		FilterAttributes: []string{"state", "gadgets.label"},
		Fields: []Field{
			{Name: "id", Column: "id", Type: FieldUUID, ReadOnly: true},
			{Name: "state", Column: "state", Required: true, Enum: []string{"new", "used"}, Default: "new"},
			{Name: "name", Column: "name", Required: true, NotEmpty: true},
			{Name: "serial", Column: "serial", Required: true, Unique: true},
			{Name: "contact", Column: "contact", Format: "email"},
			{Name: "code", Column: "code", Pattern: regexp.MustCompile(`^[0-9]+$`), PatternHint: "must contain only numbers"},
			{Name: "ownerId", Column: "owner_id", Type: FieldUUID},
		},
		Associations: []Association{
			{Name: "gadgets", FieldName: "Gadgets", ForeignKey: "widget_id", Target: gadgetMeta},
		},
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	meta := widgetMeta()

	messages := Validate(meta, map[string]interface{}{})
	assert.Equal(t, []string{
		"widget.name cannot be null",
		"widget.serial cannot be null",
	}, messages)

	// explicit null on a defaulted field is still a violation
	messages = Validate(meta, map[string]interface{}{
		"state":  nil,
		"name":   "thing",
		"serial": "123",
	})
	assert.Equal(t, []string{"widget.state cannot be null"}, messages)
}

func TestValidate_FieldRules(t *testing.T) {
	meta := widgetMeta()

	messages := Validate(meta, map[string]interface{}{
		"state":   "broken",
		"name":    "",
		"serial":  "123",
		"contact": "nobody",
		"code":    "abc",
		"ownerId": "not-a-uuid",
	})
	assert.Equal(t, []string{
		"widget.state must be one of: new, used",
		"widget.name cannot be empty",
		"widget.contact must be a valid email",
		"widget.code must contain only numbers",
		"widget.ownerId must be a valid UUID",
	}, messages)
}

func TestValidate_ValidBody(t *testing.T) {
	meta := widgetMeta()

	messages := Validate(meta, map[string]interface{}{
		"state":   "used",
		"name":    "thing",
		"serial":  "123",
		"contact": "owner@example.com",
		"code":    "42",
		"ownerId": "a81bc81b-dead-4e5d-abff-90865d1e13b1",
	})
	assert.Empty(t, messages)
}

func TestValidate_ReadOnlyFieldsSkipped(t *testing.T) {
	meta := widgetMeta()

	messages := Validate(meta, map[string]interface{}{
		"id":     "not-a-uuid",
		"name":   "thing",
		"serial": "123",
	})
	assert.Empty(t, messages)
}
