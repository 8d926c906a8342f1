package models

import (
	"github.com/intectum/propellerhead/core/resource"
)

// Note is a free-form note attached to a customer.
type Note struct {
	Common
	Text       string `json:"text" gorm:"column:text"`
	CustomerID string `json:"customerId" gorm:"column:customer_id;type:uuid"`
}

// TableName implements gorm's table naming.
func (Note) TableName() string { return "notes" }

// NoteMeta parameterizes the generic engine for notes.
var NoteMeta = &resource.Metadata{
	Name:             "note",
	Table:            "notes",
	IDColumn:         "id",
	QueryAttributes:  []string{"text"},
	FilterAttributes: []string{"customerId"},
	Fields: append([]resource.Field{
		idField(),
		{Name: "text", Column: "text", Required: true, NotEmpty: true},
		{Name: "customerId", Column: "customer_id", Type: resource.FieldUUID, Format: "uuid", Required: true},
	}, timestampFields()...),
}
