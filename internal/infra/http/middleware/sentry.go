package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// SentryTags marca o escopo do request com o request id e o endpoint.
// Precisa rodar depois do sentryhttp, que coloca o hub no contexto.
func SentryTags(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			scope := hub.Scope()
			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				scope.SetTag("correlation_id", reqID)
			}
			scope.SetTag("endpoint", r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
