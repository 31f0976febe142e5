package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

type leadMocks struct {
	create *MockCreateLead
	update *MockUpdateLead
	del    *MockDeleteLead
	query  *MockLeadQuery
}

func newLeadRouter() (http.Handler, leadMocks) {
	m := leadMocks{
		create: new(MockCreateLead),
		update: new(MockUpdateLead),
		del:    new(MockDeleteLead),
		query:  new(MockLeadQuery),
	}
	h := NewLeadHandler(m.create, m.update, m.del, m.query)

	r := chi.NewRouter()
	r.Post("/api/users", h.Create)
	r.Get("/api/users", h.List)
	r.Get("/api/users/{id}", h.Get)
	r.Patch("/api/users/{id}", h.Update)
	r.Delete("/api/users/{id}", h.Delete)
	return r, m
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// ============ CREATE ============

func TestCreateLeadSuccess(t *testing.T) {
	router, m := newLeadRouter()
	lead := &entity.Lead{ID: 1, FirstName: "John", Email: "john@example.com", CorrelationID: "corr-1"}

	m.create.On("Execute", mock.Anything, usecase.CreateLeadInput{
		FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "555-1234",
	}).Return(&usecase.CreateLeadOutput{Message: "Signup successful.", User: lead}, nil)

	rec := do(router, http.MethodPost, "/api/users",
		`{"first_name":"John","last_name":"Doe","email":"john@example.com","phone":"555-1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Signup successful.", body["message"])
	assert.Equal(t, "corr-1", body["user"].(map[string]any)["correlation_id"])
}

func TestCreateLeadErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", usecase.NewValidationError([]usecase.ValidationError{{Field: "email", Message: "is required"}}), http.StatusBadRequest, usecase.CodeValidation},
		{"duplicate email", usecase.NewConflictError("a user with this email already exists"), http.StatusConflict, usecase.CodeConflict},
		{"database down", &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "boom"}, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newLeadRouter()
			m.create.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := do(router, http.MethodPost, "/api/users", `{"first_name":"John"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Error)
		})
	}
}

func TestCreateLeadValidationReportsFields(t *testing.T) {
	router, m := newLeadRouter()
	m.create.On("Execute", mock.Anything, mock.Anything).Return(nil,
		usecase.NewValidationError([]usecase.ValidationError{{Field: "email", Message: "is invalid"}}))

	rec := do(router, http.MethodPost, "/api/users", `{}`)

	resp := decodeError(t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "email", resp.Fields[0].Field)
}

func TestCreateLeadInvalidJSON(t *testing.T) {
	router, m := newLeadRouter()

	rec := do(router, http.MethodPost, "/api/users", `{bad`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.create.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

// ============ READ ============

func TestListLeads(t *testing.T) {
	router, m := newLeadRouter()
	m.query.On("List", mock.Anything).Return([]*entity.Lead{{ID: 1}, {ID: 2}}, nil)

	rec := do(router, http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var leads []entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	assert.Len(t, leads, 2)
}

func TestGetLead(t *testing.T) {
	router, m := newLeadRouter()
	m.query.On("Get", mock.Anything, int64(5)).Return(&entity.Lead{ID: 5}, nil)
	m.query.On("Get", mock.Anything, int64(6)).Return(nil, usecase.NewNotFoundError("User not found."))

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/users/5", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/users/6", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/users/abc", "").Code)
}

// ============ UPDATE / DELETE ============

func TestUpdateLeadPassesOnlyProvidedFields(t *testing.T) {
	router, m := newLeadRouter()

	m.update.On("Execute", mock.Anything, int64(3), mock.MatchedBy(func(in usecase.UpdateLeadInput) bool {
		return in.LastName != nil && *in.LastName == "X" &&
			in.FirstName == nil && in.Email == nil && in.Phone == nil
	})).Return(&usecase.UpdateLeadOutput{Message: "User updated successfully.", User: &entity.Lead{ID: 3, LastName: "X"}}, nil)

	rec := do(router, http.MethodPatch, "/api/users/3", `{"last_name":"X"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.update.AssertExpectations(t)
}

func TestUpdateLeadNotFound(t *testing.T) {
	router, m := newLeadRouter()
	m.update.On("Execute", mock.Anything, int64(9), mock.Anything).Return(nil, usecase.NewNotFoundError("User not found."))

	rec := do(router, http.MethodPatch, "/api/users/9", `{"plan":"pro"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLead(t *testing.T) {
	router, m := newLeadRouter()
	m.del.On("Execute", mock.Anything, int64(4)).Return(&usecase.DeleteLeadOutput{Message: "User deleted successfully.", UserID: 4}, nil)
	m.del.On("Execute", mock.Anything, int64(8)).Return(nil, usecase.NewNotFoundError("User not found."))

	rec := do(router, http.MethodDelete, "/api/users/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully.","user_id":4}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/users/8", "").Code)
}

func TestUnexpectedErrorIsHidden(t *testing.T) {
	router, m := newLeadRouter()
	m.query.On("List", mock.Anything).Return(nil, errors.New("pq: secret detail"))

	rec := do(router, http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
}
