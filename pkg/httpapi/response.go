package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/novalink/novalink-backend/pkg/platform"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string, detail string) {
	writeJSON(w, status, Response{Success: false, Message: message, Error: detail})
}

// FailFromErr maps a failure onto the envelope, re-surfacing the platform's
// original status code when the error carries one.
func FailFromErr(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	var platformErr *platform.Error
	if errors.As(err, &platformErr) && platformErr.Status != 0 {
		status = platformErr.Status
	}
	Fail(w, status, message, err.Error())
}
