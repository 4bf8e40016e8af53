// Package shared holds the JSON response helpers used by every handler
// package, so error envelopes stay uniform across the API.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "bookkeeper/pkg/domain-errors"
	"bookkeeper/pkg/platform/sentinel"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates domain errors into the JSON error envelope.
// Store sentinels that leak this far are mapped to their closest domain
// code rather than a 500.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, sentinel.ErrNotFound) && dErrors.CodeOf(err) == dErrors.CodeInternal {
		err = dErrors.Wrap(err, dErrors.CodeNotFound, "not found")
	}

	code := dErrors.CodeOf(err)
	message := "internal error"
	var de *dErrors.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), map[string]string{
		"error":             string(code),
		"error_description": message,
	})
}
