package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/intectum/propellerhead/core/openapi"
)

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"/>
	<title>Propellerhead API</title>
	<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@3/swagger-ui.css"/>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@3/swagger-ui-bundle.js"></script>
<script>
	window.onload = function () {
		SwaggerUIBundle({
			url: "/swagger.json",
			dom_id: "#swagger-ui"
		});
	};
</script>
</body>
</html>
`

// addSwaggerRoutes synthesizes the OpenAPI document from everything the
// builder collected and serves it, plus the Swagger UI on the root path.
// Must be called after every resource route has registered.
func addSwaggerRoutes(router *mux.Router, builder *openapi.Builder) {
	document := builder.Build()
	data, err := json.MarshalIndent(document, "", "    ")
	if err != nil {
		panic("cannot marshal OpenAPI document: " + err.Error())
	}

	router.HandleFunc("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}).Methods(http.MethodGet)

	page := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(swaggerPage))
	}
	router.HandleFunc("/", page).Methods(http.MethodGet)
	router.HandleFunc("/index.html", page).Methods(http.MethodGet)
}
