package utils

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

// WriteJSONResponse writes v as a JSON body with the given status code.
func WriteJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// WriteJSONError writes {"error": message} plus optional field errors.
func WriteJSONError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	body := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	WriteJSONResponse(w, status, body)
}

// DecodeJSONBody decodes the request body into dst. An empty body leaves dst untouched.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
