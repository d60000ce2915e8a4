package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the uniform error shape: a short human-readable message,
// never stack traces or internal identifiers. Detail carries best-effort
// upstream context for the proxy case only.
type ErrorBody struct {
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// ListBody wraps collection responses.
type ListBody struct {
	Items interface{} `json:"items"`
}

// JSON writes a JSON response with permissive CORS headers.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Items writes a {items: [...]} collection body.
func Items(w http.ResponseWriter, items interface{}) {
	JSON(w, http.StatusOK, ListBody{Items: items})
}

// Message writes a {message} body with the given status code.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorBody{Message: message})
}

// MessageWithDetail writes a {message, detail} body.
func MessageWithDetail(w http.ResponseWriter, statusCode int, message string, detail interface{}) {
	JSON(w, statusCode, ErrorBody{Message: message, Detail: detail})
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "invalid request"
	}
	Message(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "unauthorized"
	}
	Message(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "forbidden"
	}
	Message(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "not found"
	}
	Message(w, http.StatusNotFound, message)
}

func Conflict(w http.ResponseWriter, message string) {
	if message == "" {
		message = "conflict"
	}
	Message(w, http.StatusConflict, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "internal server error"
	}
	Message(w, http.StatusInternalServerError, message)
}
