// Package response writes the service's JSON and plain-text reply shapes.
//
// The shop API predates this rewrite and its per-endpoint body shapes are
// part of the contract (clients parse some outcomes by message text, not
// status code), so this package stays deliberately thin: typed helpers for
// the recurring shapes, raw JSON for everything else.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Text writes a plain-text body with the given status code.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body)) //nolint:errcheck
}

// AuthError writes the gate's rejection shape: {error:true, message}.
// The two rejection cases use distinct status codes (401 missing header,
// 403 invalid or expired token) and both use this body.
func AuthError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// ClientError writes a 4xx with a descriptive message.
func ClientError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// ServerError writes the 500 shape used whenever a storage call fails.
// The underlying error is logged by the caller, never leaked to the client.
func ServerError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error":   true,
		"message": "Internal Server Error",
	})
}
