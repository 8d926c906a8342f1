package openapi

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

type paramValuesKeyType struct{}
type successStatusKeyType struct{}

var paramValuesKey = &paramValuesKeyType{}
var successStatusKey = &successStatusKeyType{}

// coercion builds the request-time middleware for a registered route: it
// converts every declared boolean or number parameter from its raw string
// form into the proper type and records the route's success status code for
// the responder. A declared number that does not parse is a 400.
func coercion(route Route) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values := map[string]interface{}{}

			vars := mux.Vars(r)
			for _, param := range route.Request.Params {
				raw, ok := vars[param.Name]
				if !ok {
					continue
				}
				value, err := convertParam(param, raw)
				if err != nil {
					rejectParam(w, err)
					return
				}
				values[param.Name] = value
			}

			query := r.URL.Query()
			for _, param := range route.Request.QueryParams {
				if !query.Has(param.Name) {
					continue
				}
				value, err := convertParam(param, query.Get(param.Name))
				if err != nil {
					rejectParam(w, err)
					return
				}
				values[param.Name] = value
			}

			ctx := context.WithValue(r.Context(), paramValuesKey, values)
			ctx = context.WithValue(ctx, successStatusKey, route.Response.Code)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func convertParam(param Param, raw string) (interface{}, error) {
	switch param.Type {
	case "boolean":
		return raw == "true", nil
	case "number":
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &paramError{name: param.Name}
		}
		return value, nil
	default:
		return raw, nil
	}
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "parameter '" + e.name + "' must be a number"
}

// rejectParam writes the 400 in the same shape every other validation
// failure uses, a JSON list of messages.
func rejectParam(w http.ResponseWriter, err error) {
	data, _ := json.Marshal([]string{err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write(data)
}

// SuccessStatus returns the success status code recorded for the request's
// route, or 200 when the request went through no registered route.
func SuccessStatus(ctx context.Context) int {
	if code, ok := ctx.Value(successStatusKey).(int); ok {
		return code
	}
	return http.StatusOK
}

func paramValue(ctx context.Context, name string) (interface{}, bool) {
	values, ok := ctx.Value(paramValuesKey).(map[string]interface{})
	if !ok {
		return nil, false
	}
	value, ok := values[name]
	return value, ok
}

// StringParam returns the coerced string parameter with the given name.
func StringParam(ctx context.Context, name string) (string, bool) {
	value, ok := paramValue(ctx, name)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// BoolParam returns the coerced boolean parameter with the given name.
func BoolParam(ctx context.Context, name string) bool {
	value, ok := paramValue(ctx, name)
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// IntParam returns the coerced number parameter with the given name, or nil
// when the parameter is absent or not an integer. Pagination only applies to
// integral page numbers.
func IntParam(ctx context.Context, name string) *int {
	value, ok := paramValue(ctx, name)
	if !ok {
		return nil
	}
	number, ok := value.(float64)
	if !ok || number != math.Trunc(number) {
		return nil
	}
	i := int(number)
	return &i
}
