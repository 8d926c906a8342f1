package api

import (
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/intectum/propellerhead/core/openapi"
	"github.com/intectum/propellerhead/models"
)

func addCustomerRoutes(router *mux.Router, builder *openapi.Builder, db *gorm.DB) {
	addResourceRoutes[models.Customer](router, builder, db, models.CustomerMeta)
}
