package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

type CreateLeadExecutor interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*usecase.CreateLeadOutput, error)
}

type UpdateLeadExecutor interface {
	Execute(ctx context.Context, id int64, input usecase.UpdateLeadInput) (*usecase.UpdateLeadOutput, error)
}

type DeleteLeadExecutor interface {
	Execute(ctx context.Context, id int64) (*usecase.DeleteLeadOutput, error)
}

type LeadQuerier interface {
	List(ctx context.Context) ([]*entity.Lead, error)
	Get(ctx context.Context, id int64) (*entity.Lead, error)
}

type LeadHandler struct {
	CreateUC CreateLeadExecutor
	UpdateUC UpdateLeadExecutor
	DeleteUC DeleteLeadExecutor
	Query    LeadQuerier
}

func NewLeadHandler(create CreateLeadExecutor, update UpdateLeadExecutor, del DeleteLeadExecutor, query LeadQuerier) *LeadHandler {
	return &LeadHandler{
		CreateUC: create,
		UpdateUC: update,
		DeleteUC: del,
		Query:    query,
	}
}

// Create (POST /api/users)
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// List (GET /api/users)
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Query.List(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// Get (GET /api/users/{id})
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "id must be a positive integer")
		return
	}

	lead, err := h.Query.Get(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Update (PATCH /api/users/{id})
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "id must be a positive integer")
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.UpdateUC.Execute(r.Context(), id, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// Delete (DELETE /api/users/{id})
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "id must be a positive integer")
		return
	}

	output, err := h.DeleteUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
