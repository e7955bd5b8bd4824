// internal/app/system/httpapi/httpapi.go

// Package httpapi holds the small JSON conventions every API handler
// follows: success payloads are encoded as-is, failures are an
// {"error": "..."} envelope, and simple acknowledgements are a
// {"message": "..."} envelope.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Message writes a success acknowledgement envelope.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Decode reads the request body into v. Unknown fields are ignored;
// the storefront client sends extra presentation fields on several
// payloads.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
