package data

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/intectum/propellerhead/core"
	"github.com/intectum/propellerhead/core/logger"
	"github.com/intectum/propellerhead/models"
)

// Seed inserts the initial customers into an empty database. It is a no-op
// when any customer already exists, so restarting a deployed instance never
// duplicates data.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("cannot count customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := core.Now()
	newCommon := func() models.Common {
		return models.Common{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	}

	prem := models.Customer{
		Common:    newCommon(),
		Status:    "current",
		FirstName: "Prem",
		LastName:  "Gyan",
		Email:     "gyan@intectum.nz",
	}
	elon := models.Customer{
		Common:    newCommon(),
		Status:    "prospective",
		FirstName: "Elon",
		LastName:  "Musk",
		Email:     "elon@intectum.nz",
		Notes: []models.Note{
			{Common: newCommon(), Text: "Wants a rocket."},
		},
	}

	if err := db.Create(&[]models.Customer{prem, elon}).Error; err != nil {
		return fmt.Errorf("cannot seed customers: %w", err)
	}
	logger.Default().Info("seeded initial customers")
	return nil
}
