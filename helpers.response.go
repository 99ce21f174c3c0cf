package main

import (
	"encoding/json"
	"net/http"
)

// BooksResponse is the data model sent when the full list is fetched.
type BooksResponse struct {
	Data      []Book `json:"data"`
	FromCache bool   `json:"fromCache"`
}

// BookResponse is the data model sent when a single book is fetched.
type BookResponse struct {
	Data      Book `json:"data"`
	FromCache bool `json:"fromCache"`
}

// CreatedResponse is the data model sent when a book is created.
type CreatedResponse struct {
	Data Book `json:"data"`
}

// MessageResponse is the data model sent when a write operation succeeds.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the data model sent when a request fails. The message
// never carries internal error details.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSONResponse is used to send any api response to client.
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteErrorResponse is used to send an error response to client.
func WriteErrorResponse(w http.ResponseWriter, status int, message string) error {
	return WriteJSONResponse(w, status, ErrorResponse{Error: message})
}

// CustomResponseWriter is a wrapper for http.ResponseWriter. It is used
// to record response details like status code and body size so that the
// logging middleware and the statistics counters can use them.
type CustomResponseWriter struct {
	http.ResponseWriter
	code  int
	bytes int
	wrote bool
}

// NewCustomResponseWriter provides CustomResponseWriter with 200 as status code.
func NewCustomResponseWriter(rw http.ResponseWriter) *CustomResponseWriter {
	return &CustomResponseWriter{
		ResponseWriter: rw,
		code:           200,
	}
}

// WriteHeader implements http.WriteHeader interface.
func (cw *CustomResponseWriter) WriteHeader(code int) {
	if !cw.wrote {
		cw.code = code
		cw.wrote = true
		cw.ResponseWriter.WriteHeader(code)
	}
}

// Write implements http.Write interface.
func (cw *CustomResponseWriter) Write(bytes []byte) (int, error) {
	if !cw.wrote {
		cw.WriteHeader(cw.code)
	}
	n, err := cw.ResponseWriter.Write(bytes)
	cw.bytes += n
	return n, err
}

// Status returns the written status code.
func (cw *CustomResponseWriter) Status() int {
	return cw.code
}

// Bytes returns bytes written as response body.
func (cw *CustomResponseWriter) Bytes() int {
	return cw.bytes
}

// Unwrap returns the native response writer.
func (cw *CustomResponseWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
