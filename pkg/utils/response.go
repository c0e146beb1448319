package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON response body.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes the uniform failure envelope.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RespondErrorDetail writes the failure envelope with the underlying
// error attached, used when an upstream failure body is worth relaying.
func RespondErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	RespondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
		"error":   detail,
	})
}
