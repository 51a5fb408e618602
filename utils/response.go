package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteJSON encodes v as the response body with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// WriteError reports err to the client. Errors that are not an APIError are
// logged and hidden behind a 500.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		WriteJSON(w, apiErr.StatusCode, ErrorBody{Code: apiErr.StatusCode, Message: apiErr.Message})
		return
	}

	log.Printf("internal error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, ErrorBody{
		Code:    http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
	})
}
