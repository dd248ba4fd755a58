package errors

import (
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes status with the given message.
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondStatus writes status with its canonical message.
func RespondStatus(w http.ResponseWriter, status int) {
	RespondError(w, status, MessageFor(status))
}

func RespondBadRequest(w http.ResponseWriter) {
	RespondStatus(w, http.StatusBadRequest)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondStatus(w, http.StatusUnauthorized)
}

func RespondForbidden(w http.ResponseWriter) {
	RespondStatus(w, http.StatusForbidden)
}

func RespondNotFound(w http.ResponseWriter) {
	RespondStatus(w, http.StatusNotFound)
}

func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondStatus(w, http.StatusMethodNotAllowed)
}

// RespondUnprocessable writes a 422. A non-empty detail replaces the canonical message.
func RespondUnprocessable(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = MsgUnprocessable
	}
	RespondError(w, http.StatusUnprocessableEntity, detail)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondStatus(w, http.StatusTooManyRequests)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondStatus(w, http.StatusInternalServerError)
}

func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondStatus(w, http.StatusServiceUnavailable)
}
