package invocation

import (
	"encoding/json"
	"fmt"
)

// HeaderMode selects the header set attached to a built response
type HeaderMode int

const (
	// HeaderModeNone attaches no headers
	HeaderModeNone HeaderMode = iota
	// HeaderModeCORS attaches the permissive cross-origin header set
	// used by browser-facing endpoints
	HeaderModeCORS
)

// ErrorBody is the JSON shape of error responses
type ErrorBody struct {
	Error string `json:"error"`
}

// CORSHeaders returns a fresh copy of the permissive cross-origin
// header set. Callers may extend the returned map.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	}
}

// BuildResponse builds a Result from a status code and body. The body is
// JSON-serialized unless it is already a string, in which case it is used
// verbatim so pre-encoded payloads are not encoded twice. A nil body
// produces an empty body string.
func BuildResponse(statusCode int, body interface{}, mode HeaderMode) (*Result, error) {
	var headers map[string]string
	if mode == HeaderModeCORS {
		headers = CORSHeaders()
	}
	return BuildResponseWithHeaders(statusCode, body, headers)
}

// BuildResponseWithHeaders builds a Result with an explicit header map.
// Body serialization follows the same rules as BuildResponse.
func BuildResponseWithHeaders(statusCode int, body interface{}, headers map[string]string) (*Result, error) {
	resp := &Result{
		StatusCode: statusCode,
		Headers:    headers,
	}

	switch b := body.(type) {
	case nil:
	case string:
		resp.Body = b
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode response body: %w", err)
		}
		resp.Body = string(encoded)
	}

	return resp, nil
}

// ErrorResponse builds an error envelope carrying the message of err
func ErrorResponse(statusCode int, err error, mode HeaderMode) *Result {
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	resp, buildErr := BuildResponse(statusCode, ErrorBody{Error: msg}, mode)
	if buildErr != nil {
		// ErrorBody always marshals; keep a literal fallback anyway
		return &Result{
			StatusCode: statusCode,
			Body:       `{"error": "internal server error"}`,
		}
	}
	return resp
}
