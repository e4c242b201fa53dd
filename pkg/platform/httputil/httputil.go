// Package httputil holds small response writers shared by the HTML handlers.
package httputil

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
)

const htmlContentType = "text/html; charset=utf-8"

// WriteHTML writes a fully rendered HTML document with the given status.
func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteHTMLError writes a minimal error page. Only the status text is shown;
// internal error detail never reaches the client.
func WriteHTMLError(w http.ResponseWriter, status int) {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	text := html.EscapeString(http.StatusText(status))
	page := fmt.Sprintf("<!doctype html>\n<html><head><title>%d %s</title></head><body><h1>%d %s</h1></body></html>\n",
		status, text, status, text)

	w.Header().Set("X-Content-Type-Options", "nosniff")
	WriteHTML(w, status, []byte(page))
}
