package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/pkg/validator"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError is the single mapping from the error taxonomy to HTTP. Every
// domain error kind maps to exactly one status; anything untagged falls to
// 500 with a generic message, logged in full here and nowhere leaked.
func respondError(w http.ResponseWriter, err error) {
	kind := apierr.KindOf(err)
	if kind == apierr.Internal {
		log.Printf("ERROR: %v", err)
	}
	writeJSON(w, statusFor(kind), map[string]any{
		"error": map[string]string{
			"code":    codeFor(kind),
			"message": apierr.Message(err),
		},
	})
}

func statusFor(kind apierr.Kind) int {
	switch kind {
	case apierr.NotFound:
		return http.StatusNotFound
	case apierr.Unauthorized:
		return http.StatusUnauthorized
	case apierr.ServiceUnavailable:
		return http.StatusBadGateway
	case apierr.BadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(kind apierr.Kind) string {
	switch kind {
	case apierr.NotFound:
		return "NOT_FOUND"
	case apierr.Unauthorized:
		return "UNAUTHORIZED"
	case apierr.ServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	case apierr.BadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "BAD_REQUEST",
			"fields": errs,
		},
	})
}
