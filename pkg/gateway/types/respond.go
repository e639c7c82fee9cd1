package types

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes a JSON response to the HTTP response writer. It sets the
// content-type header before the status code so both reach the client.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteError writes an OpenAI-compatible error response. The HTTP status
// code is derived from the error type.
func WriteError(w http.ResponseWriter, errResp *ErrorResponse) error {
	return WriteJSON(w, errResp.Error.HTTPStatusCode(), errResp)
}
