// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Path returns the value of the named path parameter.
// The return value is trimmed of leading and trailing whitespace.
func Path(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

// Query returns the value of the named query parameter.
// The return value is trimmed of leading and trailing whitespace.
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryDefault returns the value of the named query parameter.
// If the parameter is absent, it returns the default value.
func QueryDefault(r *http.Request, name string, defaultValue string) string {
	if !r.URL.Query().Has(name) {
		return defaultValue
	}

	return Query(r, name)
}

// QueryInt returns the integer value of the named query parameter.
// If the parameter is absent or not a number, it returns the default value.
func QueryInt(r *http.Request, name string, defaultValue int) int {
	value, err := strconv.Atoi(Query(r, name))
	if err != nil {
		return defaultValue
	}

	return value
}

// BodyJson decodes the JSON request body into the given target.
// The body size is limited to 1 MiB.
func BodyJson(r *http.Request, target any) error {
	limited := io.LimitReader(r.Body, 1<<20)

	decoder := json.NewDecoder(limited)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}
