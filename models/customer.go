package models

import (
	"regexp"

	"github.com/intectum/propellerhead/core/resource"
)

// Statuses are the allowed customer statuses.
var Statuses = []string{"prospective", "current", "non-active"}

var phonePattern = regexp.MustCompile(`^[0-9 ]+$`)

// Customer is a customer of the business, with any number of attached notes.
type Customer struct {
	Common
	Status    string  `json:"status" gorm:"column:status;default:prospective"`
	FirstName string  `json:"firstName" gorm:"column:first_name"`
	LastName  string  `json:"lastName" gorm:"column:last_name"`
	Email     string  `json:"email" gorm:"column:email"`
	Phone     *string `json:"phone,omitempty" gorm:"column:phone"`
	Notes     []Note  `json:"notes,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName implements gorm's table naming.
func (Customer) TableName() string { return "customers" }

// CustomerMeta parameterizes the generic engine for customers.
var CustomerMeta = &resource.Metadata{
	Name:             "customer",
	Table:            "customers",
	IDColumn:         "id",
	QueryAttributes:  []string{"email", "firstName", "lastName"},
	FilterAttributes: []string{"status", "notes.text"},
	Fields: append([]resource.Field{
		idField(),
		{Name: "status", Column: "status", Required: true, Enum: Statuses, Default: "prospective"},
		{Name: "firstName", Column: "first_name", Required: true, NotEmpty: true},
		{Name: "lastName", Column: "last_name", Required: true, NotEmpty: true},
		{Name: "email", Column: "email", Required: true, Unique: true, Format: "email"},
		{Name: "phone", Column: "phone", Pattern: phonePattern, PatternHint: "must contain only numbers and spaces"},
	}, timestampFields()...),
	Associations: []resource.Association{
		{Name: "notes", FieldName: "Notes", ForeignKey: "customer_id", Target: NoteMeta},
	},
}
