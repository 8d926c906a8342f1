package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/intectum/propellerhead/core"
	"github.com/intectum/propellerhead/core/openapi"
	"github.com/intectum/propellerhead/core/resource"
)

// addResourceRoutes registers the full CRUD route set for one resource. The
// routes, their handlers and their documentation all derive from the same
// metadata; adding a resource to the API is one call with its model type and
// metadata.
//
// Middleware order per route: parameter coercion, then body validation for
// writes, then the transaction, then the handler.
func addResourceRoutes[T any, PT interface {
	*T
	resource.Entity
}](router *mux.Router, builder *openapi.Builder, db *gorm.DB, meta *resource.Metadata) {
	actions := resource.Resolve[T, PT](meta)
	plural := core.Plural(meta.Name)
	basePath := "/" + plural
	idParam := meta.Name + "Id"
	itemPath := basePath + "/{" + idParam + "}"

	tx := Transaction(db)
	validate := bodyValidation(meta)

	idParams := []openapi.Param{
		{Name: idParam, Description: fmt.Sprintf("the id of the %s", meta.Name), Type: "string"},
	}
	embedParam := openapi.Param{
		Name: "embed", Description: "comma-separated relations to embed", Type: "string",
	}

	listParams := []openapi.Param{
		{Name: "page", Description: "the zero-based page to retrieve", Type: "number"},
		{Name: "pageSize", Description: "the number of records per page", Type: "number"},
		{Name: "sort", Description: "comma-separated sort attributes, prefix with - for descending", Type: "string"},
		{Name: "q", Description: "free-text search over the searchable attributes", Type: "string"},
		embedParam,
	}
	for _, attribute := range meta.FilterAttributes {
		listParams = append(listParams, openapi.Param{
			Name: attribute, Description: fmt.Sprintf("filter by %s, comma-separated values match any", attribute), Type: "string",
		})
	}

	coerce := builder.Register(openapi.Route{
		Tag:         plural,
		Method:      "get",
		Path:        basePath,
		Description: fmt.Sprintf("Lists %s", plural),
		Request:     openapi.Request{QueryParams: listParams},
		Response:    openapi.RouteResponse{Code: http.StatusOK, Type: meta.Name + "[]"},
	})
	router.Handle(basePath, coerce(tx(handle(func(w http.ResponseWriter, r *http.Request) error {
		c := resource.FromContext(r.Context())
		options, err := listOptions(r, meta)
		if err != nil {
			return err
		}
		all, err := actions.GetAll(c, options)
		if err != nil {
			return err
		}
		count, err := actions.Count(c, options.Filters, options.Query)
		if err != nil {
			return err
		}
		addPagingHeaders(w, r, count, options)
		return sendJSON(w, r, all)
	})))).Methods(http.MethodGet)

	coerce = builder.Register(openapi.Route{
		Tag:         plural,
		Method:      "post",
		Path:        basePath,
		Description: fmt.Sprintf("Creates a %s", meta.Name),
		Request:     openapi.Request{BodyType: meta.Name, QueryParams: []openapi.Param{embedParam}},
		Response:    openapi.RouteResponse{Code: http.StatusCreated, Type: meta.Name},
	})
	router.Handle(basePath, coerce(validate(tx(handle(func(w http.ResponseWriter, r *http.Request) error {
		c := resource.FromContext(r.Context())
		model := PT(new(T))
		if err := json.NewDecoder(r.Body).Decode(model); err != nil {
			return &resource.ValidationError{Messages: []string{"invalid request body"}}
		}
		created, err := actions.Create(c, model, parseInclude(r.URL.Query().Get("embed")))
		if err != nil {
			return err
		}
		return sendJSON(w, r, created)
	}))))).Methods(http.MethodPost)

	coerce = builder.Register(openapi.Route{
		Tag:         plural,
		Method:      "get",
		Path:        itemPath,
		Description: fmt.Sprintf("Retrieves a %s", meta.Name),
		Request:     openapi.Request{Params: idParams, QueryParams: []openapi.Param{embedParam}},
		Response:    openapi.RouteResponse{Code: http.StatusOK, Type: meta.Name},
	})
	router.Handle(itemPath, coerce(tx(handle(func(w http.ResponseWriter, r *http.Request) error {
		c := resource.FromContext(r.Context())
		id, _ := openapi.StringParam(r.Context(), idParam)
		model, err := actions.Get(c, id, parseInclude(r.URL.Query().Get("embed")))
		if err != nil {
			return err
		}
		return sendJSON(w, r, model)
	})))).Methods(http.MethodGet)

	coerce = builder.Register(openapi.Route{
		Tag:         plural,
		Method:      "put",
		Path:        itemPath,
		Description: fmt.Sprintf("Updates a %s", meta.Name),
		Request:     openapi.Request{BodyType: meta.Name, Params: idParams, QueryParams: []openapi.Param{embedParam}},
		Response:    openapi.RouteResponse{Code: http.StatusOK, Type: meta.Name},
	})
	router.Handle(itemPath, coerce(validate(tx(handle(func(w http.ResponseWriter, r *http.Request) error {
		c := resource.FromContext(r.Context())
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return &resource.ValidationError{Messages: []string{"invalid request body"}}
		}
		model := PT(new(T))
		var body map[string]interface{}
		if err := json.Unmarshal(raw, model); err != nil {
			return &resource.ValidationError{Messages: []string{"invalid request body"}}
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return &resource.ValidationError{Messages: []string{"invalid request body"}}
		}
		id, _ := openapi.StringParam(r.Context(), idParam)
		model.SetID(id)
		// only the attributes the client sent are written; omitted defaulted
		// fields keep their stored value
		updated, err := actions.Update(c, model, writableColumns(meta, body), parseInclude(r.URL.Query().Get("embed")))
		if err != nil {
			return err
		}
		return sendJSON(w, r, updated)
	}))))).Methods(http.MethodPut)

	coerce = builder.Register(openapi.Route{
		Tag:         plural,
		Method:      "delete",
		Path:        itemPath,
		Description: fmt.Sprintf("Deletes a %s", meta.Name),
		Request:     openapi.Request{Params: idParams},
		Response:    openapi.RouteResponse{Code: http.StatusNoContent},
	})
	router.Handle(itemPath, coerce(tx(handle(func(w http.ResponseWriter, r *http.Request) error {
		c := resource.FromContext(r.Context())
		id, _ := openapi.StringParam(r.Context(), idParam)
		if err := actions.Destroy(c, id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})))).Methods(http.MethodDelete)
}
