package api

import (
	"encoding/json"
	"net/http"
)

// ErrorCode is the machine-readable reason attached to an error response.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
)

// Response is the envelope around every API payload.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failed request. RequestID echoes the X-Request-ID
// response header so a report can be matched to the server log.
type ErrorInfo struct {
	Message   string    `json:"message"`
	Code      ErrorCode `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a 200 response wrapping data.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WriteError writes an error envelope.
func WriteError(w http.ResponseWriter, status int, code ErrorCode, message string) error {
	return WriteJSON(w, status, Response{
		Error: &ErrorInfo{
			Message:   message,
			Code:      code,
			RequestID: w.Header().Get(RequestIDHeader),
		},
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, CodeBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

func WriteMethodNotAllowed(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, message)
}

func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, CodeInternal, message)
}

// WriteUnavailable writes a 503, used when a backing store or the request
// context gives out before an answer is ready.
func WriteUnavailable(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusServiceUnavailable, CodeUnavailable, message)
}
