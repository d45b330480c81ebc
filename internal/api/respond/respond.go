// Package respond writes JSON bodies and the {"detail": ...} error envelope.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// InternalErrorMessage is the only text a client ever sees for unexpected failures.
const InternalErrorMessage = "An internal error occurred."

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Detail writes the error envelope with the given status code.
func Detail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Detail: message})
}

// Internal writes a 500 with the fixed user-facing message.
func Internal(w http.ResponseWriter) {
	Detail(w, http.StatusInternalServerError, InternalErrorMessage)
}
