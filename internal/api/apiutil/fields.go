package apiutil

import (
	"net/http"
	"strconv"
	"strings"
)

// RequiredField trims raw and reports a FieldError when nothing is left.
func RequiredField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	return raw, nil
}

// PathParam returns a required path wildcard from the matched route.
func PathParam(r *http.Request, name string) (string, error) {
	return RequiredField(r.PathValue(name), name)
}

// ParseBool accepts the usual strconv forms plus "on"; anything else is false.
func ParseBool(raw string) bool {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "on" {
		return true
	}
	value, err := strconv.ParseBool(raw)
	return err == nil && value
}
