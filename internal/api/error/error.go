// Package error contains the JSON error envelope returned by the API.
package error

import (
	"encoding/json"
	"net/http"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// EncodeError writes the error envelope with the status mapped from the
// code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	body := Error{
		Code:    code,
		Message: message,
		Status:  code.StatusCode(),
		ErrorID: errorID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	return json.NewEncoder(w).Encode(body)
}

func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
