package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

func writeErrorDetails(w http.ResponseWriter, code int, message string, details any) {
	writeJSON(w, code, map[string]any{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  details,
	})
}

// validationDetails maps each failing field to the rule it broke.
func validationDetails(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// drop the root struct name: Profile.links[0].url -> links[0].url
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		details[field] = fe.Tag()
	}
	return details, true
}

// writeServiceError translates editor and loader errors into responses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProfile):
		if details, ok := validationDetails(err); ok {
			writeErrorDetails(w, http.StatusBadRequest, "Validation failed", details)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownTheme), errors.Is(err, domain.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "Profile not found")
	default:
		log.Printf("%s error: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
