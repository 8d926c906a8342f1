package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intectum/propellerhead/core/openapi"
	"github.com/intectum/propellerhead/core/resource"
	"github.com/intectum/propellerhead/models"
)

func TestParseSort(t *testing.T) {
	assert.Nil(t, parseSort(""))
	assert.Equal(t, []resource.SortOrder{
		{Attribute: "lastName", Descending: true},
		{Attribute: "firstName"},
	}, parseSort("-lastName,firstName"))
}

func TestParseFilters(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/customers?status=current,prospective&notes.text=overdue&bogus=x", nil)

	filters := parseFilters(r.URL.Query(), models.CustomerMeta)
	assert.Equal(t, map[string]resource.Filter{
		"status":     {Values: []string{"current", "prospective"}},
		"notes.text": {Values: []string{"overdue"}},
	}, filters)

	// the null sentinel matches records whose attribute is null
	r = httptest.NewRequest(http.MethodGet, "/customers?status=null", nil)
	filters = parseFilters(r.URL.Query(), models.CustomerMeta)
	assert.Equal(t, map[string]resource.Filter{"status": {Null: true}}, filters)
}

// listOptionsFor runs listOptions behind the real coercion middleware, so the
// page and pageSize parameters arrive as typed values like in production.
func listOptionsFor(t *testing.T, target string) (resource.Options, error) {
	t.Helper()
	builder := openapi.NewBuilder(openapi.Info{Title: "Test API", Version: "0.0.0"}, models.CustomerMeta)
	coerce := builder.Register(openapi.Route{
		Tag:    "customers",
		Method: "get",
		Path:   "/customers",
		Request: openapi.Request{QueryParams: []openapi.Param{
			{Name: "page", Type: "number"},
			{Name: "pageSize", Type: "number"},
		}},
		Response: openapi.RouteResponse{Code: http.StatusOK, Type: "customer[]"},
	})

	var options resource.Options
	var err error
	router := mux.NewRouter()
	router.Handle("/customers", coerce(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		options, err = listOptions(r, models.CustomerMeta)
	})))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	return options, err
}

func TestListOptions_RejectsNonPositivePageSize(t *testing.T) {
	_, err := listOptionsFor(t, "/customers?page=0&pageSize=0")

	var validationErr *resource.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"pageSize must be greater than 0"}, validationErr.Messages)
}

func TestListOptions_RejectsNegativePage(t *testing.T) {
	_, err := listOptionsFor(t, "/customers?page=-1&pageSize=10")

	var validationErr *resource.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"page must be greater than or equal to 0"}, validationErr.Messages)

	// both bounds violated at once: both messages, declaration order
	_, err = listOptionsFor(t, "/customers?page=-1&pageSize=0")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{
		"page must be greater than or equal to 0",
		"pageSize must be greater than 0",
	}, validationErr.Messages)
}

func TestAddPagingHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/customers?page=1&pageSize=2&sort=lastName", nil)
	w := httptest.NewRecorder()
	page, pageSize := 1, 2

	addPagingHeaders(w, r, 5, resource.Options{Page: &page, PageSize: &pageSize})

	assert.Equal(t, "5", w.Header().Get("X-Total-Count"))
	link := w.Header().Get("Link")
	assert.Contains(t, link, `page=0&pageSize=2&sort=lastName>; rel="first"`)
	assert.Contains(t, link, `page=0&pageSize=2&sort=lastName>; rel="prev"`)
	assert.Contains(t, link, `page=2&pageSize=2&sort=lastName>; rel="next"`)
	assert.Contains(t, link, `page=2&pageSize=2&sort=lastName>; rel="last"`)
}

func TestAddPagingHeaders_Boundaries(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/customers?page=0&pageSize=10", nil)
	w := httptest.NewRecorder()
	page, pageSize := 0, 10

	// everything fits on the first page
	addPagingHeaders(w, r, 3, resource.Options{Page: &page, PageSize: &pageSize})
	link := w.Header().Get("Link")
	assert.Contains(t, link, `rel="first"`)
	assert.NotContains(t, link, `rel="prev"`)
	assert.NotContains(t, link, `rel="next"`)
	assert.Contains(t, link, `page=0&pageSize=10>; rel="last"`)

	// nothing matched at all: first but no last
	w = httptest.NewRecorder()
	addPagingHeaders(w, r, 0, resource.Options{Page: &page, PageSize: &pageSize})
	require.Equal(t, "0", w.Header().Get("X-Total-Count"))
	link = w.Header().Get("Link")
	assert.Contains(t, link, `rel="first"`)
	assert.NotContains(t, link, `rel="last"`)
}

func TestAddPagingHeaders_Unpaginated(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/customers", nil)
	w := httptest.NewRecorder()

	addPagingHeaders(w, r, 7, resource.Options{})
	assert.Equal(t, "7", w.Header().Get("X-Total-Count"))
	assert.Empty(t, w.Header().Get("Link"))
}
