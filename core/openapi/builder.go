package openapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/intectum/propellerhead/core"
	"github.com/intectum/propellerhead/core/resource"
)

// Param declares one path or query parameter of a route. Type is one of
// "boolean", "number" or "string".
type Param struct {
	Name        string
	Description string
	Type        string
}

// Request declares the request side of a route. ContentTypes defaults to
// application/json when a body type is set.
type Request struct {
	BodyType     string
	Params       []Param
	QueryParams  []Param
	ContentTypes []string
}

// RouteResponse declares the success response of a route. Type names either
// a resource ("customer"), a list of one ("customer[]"), a plain scalar
// ("string", "string[]"), or nothing for a 204.
type RouteResponse struct {
	Code int
	Type string
}

// Route is the descriptor one registration contributes to the document.
type Route struct {
	Tag         string
	Method      string
	Path        string
	Description string
	Request     Request
	Response    RouteResponse
}

// Builder collects route descriptors at registration time and synthesizes
// the OpenAPI document once, after all routes are known. Route registration
// happens single-threaded at startup, before serving traffic.
type Builder struct {
	info      Info
	resources map[string]*resource.Metadata
	routes    []Route
}

// NewBuilder creates a builder for the given API info and resources.
// Association targets are indexed transitively, so a resource reachable only
// through another one's association still resolves.
func NewBuilder(info Info, resources ...*resource.Metadata) *Builder {
	byName := make(map[string]*resource.Metadata, len(resources))
	var index func(meta *resource.Metadata)
	index = func(meta *resource.Metadata) {
		if meta == nil {
			return
		}
		if _, ok := byName[meta.Name]; ok {
			return
		}
		byName[meta.Name] = meta
		for i := range meta.Associations {
			index(meta.Associations[i].Target)
		}
	}
	for _, meta := range resources {
		index(meta)
	}
	return &Builder{info: info, resources: byName}
}

// Metadata returns the metadata registered under the given resource name.
func (b *Builder) Metadata(name string) (*resource.Metadata, bool) {
	meta, ok := b.resources[name]
	return meta, ok
}

// Register records the route for document synthesis and returns its
// parameter-coercion middleware. Registering a non-204 response without a
// type is a configuration error and panics; this must fail at startup, not
// at request time.
func (b *Builder) Register(route Route) mux.MiddlewareFunc {
	if route.Response.Code != http.StatusNoContent && route.Response.Type == "" {
		panic(fmt.Sprintf("response type not defined for %s %s", route.Method, route.Path))
	}
	b.routes = append(b.routes, route)
	return coercion(route)
}

// Build synthesizes the full document: paths, the deduplicated and
// alphabetically sorted tag list, and the component schemas, each built at
// most once per resource name.
func (b *Builder) Build() *Document {
	doc := &Document{
		OpenAPI: "3.0.0",
		Info:    b.info,
		Paths:   map[string]PathItem{},
		Components: &Components{
			Schemas: map[string]*Schema{},
			Responses: map[string]*Response{
				"400": {
					Description: "Validation error",
					Content: map[string]MediaType{
						"application/json": {Schema: &Schema{Type: "array", Items: &Schema{Type: "string"}}},
					},
				},
			},
		},
	}

	tags := map[string]bool{}
	for _, route := range b.routes {
		if doc.Paths[route.Path] == nil {
			doc.Paths[route.Path] = PathItem{}
		}
		doc.Paths[route.Path][route.Method] = b.buildOperation(doc, route)
		tags[route.Tag] = true
	}

	for tag := range tags {
		doc.Tags = append(doc.Tags, Tag{Name: tag})
	}
	sort.Slice(doc.Tags, func(i, j int) bool { return doc.Tags[i].Name < doc.Tags[j].Name })

	return doc
}

func (b *Builder) buildOperation(doc *Document, route Route) *Operation {
	operation := &Operation{
		Tags:        []string{route.Tag},
		Description: route.Description,
		Responses: map[string]*Response{
			fmt.Sprintf("%d", route.Response.Code): b.buildResponse(doc, route.Response),
			"400": {Ref: "#/components/responses/400"},
		},
	}

	for _, param := range route.Request.Params {
		operation.Parameters = append(operation.Parameters, Parameter{
			Name:        param.Name,
			In:          "path",
			Description: param.Description,
			Required:    true,
			Schema:      &Schema{Type: paramSchemaType(param.Type)},
		})
	}
	for _, param := range route.Request.QueryParams {
		operation.Parameters = append(operation.Parameters, Parameter{
			Name:        param.Name,
			In:          "query",
			Description: param.Description,
			Schema:      &Schema{Type: paramSchemaType(param.Type)},
		})
	}

	if route.Request.BodyType != "" {
		contentTypes := route.Request.ContentTypes
		if len(contentTypes) == 0 {
			contentTypes = []string{"application/json"}
		}
		body := &RequestBody{Content: map[string]MediaType{}, Required: true}
		for _, contentType := range contentTypes {
			body.Content[contentType] = MediaType{
				Schema: &Schema{Ref: b.ensureComponent(doc, route.Request.BodyType)},
			}
		}
		operation.RequestBody = body
	}

	return operation
}

func (b *Builder) buildResponse(doc *Document, response RouteResponse) *Response {
	if response.Code == http.StatusNoContent {
		return &Response{Description: "No Content"}
	}
	switch response.Type {
	case "string":
		return &Response{
			Description: "Success",
			Content:     map[string]MediaType{"text/plain": {Schema: &Schema{Type: "string"}}},
		}
	case "string[]":
		return &Response{
			Description: "Success",
			Content: map[string]MediaType{
				"text/plain": {Schema: &Schema{Type: "array", Items: &Schema{Type: "string"}}},
			},
		}
	default:
		return &Response{
			Description: "Success",
			Content: map[string]MediaType{
				"application/json": {Schema: &Schema{Ref: b.ensureComponent(doc, response.Type)}},
			},
		}
	}
}

// ensureComponent returns the reference for the given body/response type and
// synthesizes the component schema on demand. A schema is built at most once
// per resource name; later registrations for the same name are no-ops.
// Unknown resource names still yield a reference but no component, matching
// the permissive policy elsewhere.
func (b *Builder) ensureComponent(doc *Document, typeName string) string {
	resourceName := strings.TrimSuffix(typeName, "[]")
	isList := resourceName != typeName

	objectKey := core.Capitalize(resourceName)
	key := objectKey
	if isList {
		key = objectKey + "List"
	}
	ref := "#/components/schemas/" + key

	meta, ok := b.resources[resourceName]
	if !ok {
		return ref
	}
	if _, ok := doc.Components.Schemas[objectKey]; !ok {
		doc.Components.Schemas[objectKey] = BuildObjectSchema(meta)
		// the object schema references its association targets, so those
		// components must exist even when no route names them directly
		for i := range meta.Associations {
			if target := meta.Associations[i].Target; target != nil {
				b.ensureComponent(doc, target.Name)
			}
		}
	}
	if isList {
		if _, ok := doc.Components.Schemas[key]; !ok {
			doc.Components.Schemas[key] = BuildArraySchema(resourceName)
		}
	}
	return ref
}

func paramSchemaType(paramType string) string {
	switch paramType {
	case "boolean", "number":
		return paramType
	default:
		return "string"
	}
}
