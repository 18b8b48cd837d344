package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONSetsContentTypeAndStatus(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n": 1}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusNotFound, KindNotFound, "Expense not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"kind": "not_found", "message": "Expense not found"}`, w.Body.String())
}

func TestValidationFailedIncludesFields(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationFailed(w, []FieldError{{Field: "category", Message: "Category is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"kind": "validation_error",
		"message": "invalid input",
		"fields": [{"field": "category", "message": "Category is required"}]
	}`, w.Body.String())
}

func TestErrorOmitsEmptyFields(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusUnauthorized, KindUnauthorized, "not authenticated")

	assert.NotContains(t, w.Body.String(), "fields")
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusOK, "Login successful")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Login successful"}`, w.Body.String())
}
