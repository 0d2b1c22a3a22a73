// Package httpx holds the response conventions shared by every handler:
// bodies are JSON, and errors carry a snake_case machine code (for
// example "sku_conflict" or "validation_failed") with optional
// per-field details.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes the payload with the given status. Encoding is done before
// the header goes out so a marshal failure can still produce a clean 500.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// JSONError writes an ErrorResponse with the given machine code.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Code: code, Details: details})
}

// MethodNotAllowed answers a 405 with the Allow header set, using the
// same error body shape as every other failure.
func MethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
