// Package api exposes the REST surface: generic CRUD routes per resource,
// the synthesized OpenAPI document and the Swagger UI.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/intectum/propellerhead/core/config"
	"github.com/intectum/propellerhead/core/logger"
	"github.com/intectum/propellerhead/core/openapi"
	"github.com/intectum/propellerhead/core/resource"
	"github.com/intectum/propellerhead/models"
)

// NewHandler builds the full HTTP handler: all resource routes, the OpenAPI
// document and Swagger UI, wrapped with request IDs, compression and CORS.
func NewHandler(db *gorm.DB, cfg config.Config) http.Handler {
	router := mux.NewRouter()
	logger.AddRequestID(router)

	builder := openapi.NewBuilder(openapi.Info{
		Title:       "Propellerhead API",
		Description: "A REST API for managing customers and their notes.",
		Version:     cfg.Version,
	}, models.CustomerMeta, models.NoteMeta)

	addCustomerRoutes(router, builder, db)
	addNoteRoutes(router, builder, db)

	// the document is synthesized once, after every route has registered
	addSwaggerRoutes(router, builder)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"Link", "X-Total-Count"}),
	)
	return cors(handlers.CompressHandler(router))
}

// handle adapts an error-returning handler to http.Handler, mapping the
// engine's error taxonomy onto status codes: not-found is a 404 with an
// empty body, validation and conflict errors are a 400 with the message
// list, anything else is a logged 500.
func handle(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if errors.Is(err, resource.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var validationErr *resource.ValidationError
		if errors.As(err, &validationErr) {
			sendMessages(w, validationErr.Messages)
			return
		}
		var conflictErr *resource.ConflictError
		if errors.As(err, &conflictErr) {
			sendMessages(w, conflictErr.Messages)
			return
		}
		logger.FromContext(r.Context()).Errorf("%s %s %d: %v", r.Method, r.URL.Path, http.StatusInternalServerError, err)
		w.WriteHeader(http.StatusInternalServerError)
	})
}

// sendJSON writes the value as pretty-printed JSON with the route's
// registered success status.
func sendJSON(w http.ResponseWriter, r *http.Request, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(openapi.SuccessStatus(r.Context()))
	_, err = w.Write(data)
	return err
}

// sendMessages writes a 400 with the violation messages as a JSON list.
func sendMessages(w http.ResponseWriter, messages []string) {
	data, _ := json.MarshalIndent(messages, "", "    ")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write(data)
}
