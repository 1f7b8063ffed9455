package rest

import (
	"encoding/json"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

type rejectionResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// writeMessage writes {"message": msg} with the given status code
func writeMessage(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, messageResponse{Message: msg})
}

// writeInternalError never exposes the underlying error to the client.
func writeInternalError(w http.ResponseWriter) {
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
