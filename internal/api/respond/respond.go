// Package respond writes JSON responses and the shared error shape.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fightgraphs/pipeline/internal/transform"
)

// ErrorBody is the inner object of every error response.
type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Entity     string `json:"entity,omitempty"`
	NaturalKey string `json:"natural_key,omitempty"`
	Field      string `json:"field,omitempty"`
}

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON writes raw JSON bytes with cache and ETag headers.
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept-Encoding")
	setCacheHeaders(w, ttl, cacheHit)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WriteNotModified sends a 304 with the matching ETag.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends a structured JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, ErrorBody{Code: code, Message: message})
}

// WriteErrorDetail sends a structured error with additional detail.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	writeError(w, status, ErrorBody{Code: code, Message: message, Detail: detail})
}

// WriteMappingError reports a document that could not be mapped. Validation
// failures are 422 and name the offending field; anything else is a 400.
func WriteMappingError(w http.ResponseWriter, err error) {
	var ve *transform.ValidationError
	if !errors.As(err, &ve) {
		WriteErrorDetail(w, http.StatusBadRequest, "INVALID_DOCUMENT", "Document could not be mapped", err.Error())
		return
	}
	code := "MISSING_REQUIRED_FIELD"
	switch {
	case errors.Is(err, transform.ErrMissingKey):
		code = "MISSING_KEY"
	case errors.Is(err, transform.ErrMissingFighter):
		code = "MISSING_FIGHTER"
	}
	writeError(w, http.StatusUnprocessableEntity, ErrorBody{
		Code:       code,
		Message:    "Document failed validation",
		Detail:     ve.Error(),
		Entity:     ve.Entity,
		NaturalKey: ve.NaturalKey,
		Field:      ve.Field,
	})
}

// WriteJSONObject marshals a Go value to JSON and writes it.
// Used for responses not built by Postgres (health, ids, transform previews).
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body ErrorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: body})
}

func setCacheHeaders(w http.ResponseWriter, ttl time.Duration, cacheHit bool) {
	maxAge := int(ttl.Seconds())
	if cacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge/2))
}
