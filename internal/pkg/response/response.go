package response

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/petsalon/salon-api/internal/pkg/pagination"
)

// DecodeJSON decodes JSON from request body into the provided struct
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// Response represents a standard API response
type Response struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	ID         *int64            `json:"id,omitempty"`
	Pagination *pagination.Meta  `json:"pagination,omitempty"`
	Stats      interface{}       `json:"stats,omitempty"`
	Error      string            `json:"error,omitempty"`
	Code       string            `json:"code,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// Write sends resp as JSON with the given status
func Write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// OK sends a 200 OK response
func OK(w http.ResponseWriter, data interface{}) {
	Write(w, http.StatusOK, Response{Success: true, Data: data})
}

// Created sends a 201 Created response carrying the new row id
func Created(w http.ResponseWriter, message string, id int64) {
	Write(w, http.StatusCreated, Response{Success: true, Message: message, ID: &id})
}

// Message sends a 200 OK response with a message only
func Message(w http.ResponseWriter, message string) {
	Write(w, http.StatusOK, Response{Success: true, Message: message})
}

// WithPagination sends a page of results with pagination metadata and optional stats
func WithPagination(w http.ResponseWriter, data interface{}, meta pagination.Meta, stats interface{}) {
	Write(w, http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &meta,
		Stats:      stats,
	})
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, Response{Success: false, Error: message, Code: code})
}

// ErrorWithDetails sends an error response with details
func ErrorWithDetails(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	Write(w, status, Response{Success: false, Error: message, Code: code, Details: details})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, "NOT_FOUND", message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, "UNAVAILABLE", message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}
