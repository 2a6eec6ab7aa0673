// Package responsewriter captures the status code and body size of a
// response as it is written, for the logging and metrics middleware.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records what went over the wire. The zero status is 200
// because a handler that only calls Write never sends an explicit header.
type ResponseWriter struct {
	http.ResponseWriter
	status     int
	bytes      int
	headerSent bool
}

func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code; later calls are dropped the
// same way net/http drops duplicate headers.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.headerSent {
		return
	}
	w.status = status
	w.headerSent = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerSent {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the status sent to the client.
func (w *ResponseWriter) StatusCode() int {
	return w.status
}

// BytesWritten returns the body size sent so far.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytes
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
