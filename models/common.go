// Package models holds the persisted resource models and the metadata that
// parameterizes the generic engine for each of them.
package models

import (
	"github.com/intectum/propellerhead/core"
	"github.com/intectum/propellerhead/core/resource"
)

// Common carries the fields every resource shares: the engine-assigned id
// and timestamps.
type Common struct {
	ID        string         `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	CreatedAt core.Timestamp `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt core.Timestamp `json:"updatedAt" gorm:"column:updated_at"`
}

// GetID implements resource.Entity.
func (c *Common) GetID() string { return c.ID }

// SetID implements resource.Entity.
func (c *Common) SetID(id string) { c.ID = id }

// SetCreated implements resource.Entity.
func (c *Common) SetCreated(at core.Timestamp) { c.CreatedAt = at }

// SetUpdated implements resource.Entity.
func (c *Common) SetUpdated(at core.Timestamp) { c.UpdatedAt = at }

// idField opens every resource's field list; timestampFields closes it,
// matching the column order of the migrations.
func idField() resource.Field {
	return resource.Field{Name: "id", Column: "id", Type: resource.FieldUUID, Format: "uuid", ReadOnly: true}
}

func timestampFields() []resource.Field {
	return []resource.Field{
		{Name: "createdAt", Column: "created_at", Type: resource.FieldTimestamp, Format: "date-time", ReadOnly: true},
		{Name: "updatedAt", Column: "updated_at", Type: resource.FieldTimestamp, Format: "date-time", ReadOnly: true},
	}
}
