package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intectum/propellerhead/models"
)

func postCustomer(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var reached bool
	handler := bodyValidation(models.CustomerMeta)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body)))
	return recorder, reached
}

func messagesOf(t *testing.T, recorder *httptest.ResponseRecorder) []string {
	t.Helper()
	var messages []string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &messages))
	return messages
}

func TestBodyValidation_MissingRequiredFields(t *testing.T) {
	recorder, reached := postCustomer(t, `{}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	// status is absent too, but its storage default fills it in
	assert.Equal(t, []string{
		"customer.firstName cannot be null",
		"customer.lastName cannot be null",
		"customer.email cannot be null",
	}, messagesOf(t, recorder))
}

func TestBodyValidation_FieldRules(t *testing.T) {
	recorder, reached := postCustomer(t, `{
		"status": "dormant",
		"firstName": "",
		"lastName": "Smith",
		"email": "not-an-email",
		"phone": "555-1234"
	}`)

	assert.False(t, reached)
	assert.Equal(t, []string{
		"customer.status must be one of: prospective, current, non-active",
		"customer.firstName cannot be empty",
		"customer.email must be a valid email",
		"customer.phone must contain only numbers and spaces",
	}, messagesOf(t, recorder))
}

func TestBodyValidation_WrongType(t *testing.T) {
	recorder, reached := postCustomer(t, `{
		"firstName": 42,
		"lastName": "Smith",
		"email": "john@example.com"
	}`)

	assert.False(t, reached)
	assert.Contains(t, messagesOf(t, recorder), "customer.firstName must be a string")
}

func TestBodyValidation_InvalidJSON(t *testing.T) {
	recorder, reached := postCustomer(t, `not json`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, []string{"invalid request body"}, messagesOf(t, recorder))
}

func TestBodyValidation_ValidBodyPassesThrough(t *testing.T) {
	_, reached := postCustomer(t, `{
		"firstName": "John",
		"lastName": "Smith",
		"email": "john@example.com",
		"phone": "021 555 1234"
	}`)

	assert.True(t, reached)
}
