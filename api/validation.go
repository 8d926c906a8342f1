package api

import (
	"bytes"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"

	"github.com/intectum/propellerhead/core/openapi"
	"github.com/intectum/propellerhead/core/resource"
)

// bodyValidation validates the request body for a write route before the
// transaction even begins. Validation is its own phase: a rejected body
// never reaches the action set, and the commit phase only ever sees bodies
// that already passed.
//
// The check runs in two steps. A structural schema check catches wrongly
// typed properties, then resource.Validate applies the field rules and
// produces the violation messages. Either step failing is a 400 with the
// combined message list.
func bodyValidation(meta *resource.Metadata) mux.MiddlewareFunc {
	schema := gojsonschema.NewBytesLoader(openapi.WritableSchemaJSON(meta))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				sendMessages(w, []string{"invalid request body"})
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
			if err != nil {
				// not even JSON
				sendMessages(w, []string{"invalid request body"})
				return
			}

			var messages []string
			if !result.Valid() {
				for _, violation := range result.Errors() {
					messages = append(messages, typeMessage(meta, violation.Field()))
				}
			}

			var body map[string]interface{}
			if err := json.Unmarshal(raw, &body); err != nil {
				sendMessages(w, []string{"invalid request body"})
				return
			}
			messages = append(messages, resource.Validate(meta, body)...)

			if len(messages) > 0 {
				sendMessages(w, messages)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// typeMessage words a structural violation. Writable scalar attributes are
// all strings on the wire, so a type mismatch on anything but an association
// means a non-string was sent.
func typeMessage(meta *resource.Metadata, field string) string {
	if _, ok := meta.Association(field); ok {
		return meta.Name + "." + field + " must be an array"
	}
	return meta.Name + "." + field + " must be a string"
}
