package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foozbat/integrations-demo/internal/usecase"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  []FieldErrorEntry `json:"fields,omitempty"`
}

type FieldErrorEntry struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ falha ao escrever resposta: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError traduz o erro do caso de uso para status HTTP.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if domainErr, ok := usecase.AsDomainError(err); ok {
		resp := ErrorResponse{Error: domainErr.Code, Message: domainErr.Message}
		for _, f := range domainErr.Fields {
			resp.Fields = append(resp.Fields, FieldErrorEntry{Field: f.Field, Message: f.Message})
		}
		writeJSON(w, statusForCode(domainErr.Code), resp)
		return
	}

	log.Printf("❌ Erro interno: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
