package handler

import (
	"net/http"

	"signup/internal/signup/models"
)

// parseSubmission reads username and email from the request body.
//
// PostFormValue handles urlencoded and multipart bodies, ignores the query
// string and swallows parse errors, so a malformed or oversized body yields
// empty strings rather than an error.
func parseSubmission(w http.ResponseWriter, r *http.Request, maxBytes int64) models.Submission {
	if maxBytes > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	return models.Submission{
		Username: r.PostFormValue(models.FieldUsername),
		Email:    r.PostFormValue(models.FieldEmail),
	}
}
