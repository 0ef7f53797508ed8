package platform

import (
	"encoding/json"
	"fmt"
)

// Error is the normalized shape for every failed platform call. Status is 0
// for transport-level failures where no response was received.
type Error struct {
	Status  int
	Message string
	RawBody []byte
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("platform request failed: %s", e.Message)
	}
	return fmt.Sprintf("platform error %d: %s", e.Status, e.Message)
}

// newError extracts a human-readable message from a platform error body.
// Most platforms return a JSON object carrying "message" or "error_description".
func newError(status int, statusText string, body []byte) *Error {
	message := statusText
	var parsed struct {
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Err              string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			message = parsed.Message
		case parsed.ErrorDescription != "":
			message = parsed.ErrorDescription
		case parsed.Err != "":
			message = parsed.Err
		}
	}
	return &Error{Status: status, Message: message, RawBody: body}
}
