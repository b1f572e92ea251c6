package invocation

import "context"

// Request represents a generic HTTP request for serverless functions.
// It carries only what handlers consume: path parameters, the raw body
// and the claims attached by the gateway authorizer.
type Request struct {
	PathParams map[string]string      `json:"path_params"`
	Body       string                 `json:"body"`
	Claims     map[string]interface{} `json:"claims"`
}

// Result represents a generic HTTP response for serverless functions
type Result struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// HandlerFunc is a transport-agnostic handler interface shared by the
// local server and the Lambda entrypoints
type HandlerFunc func(ctx context.Context, req *Request) (*Result, error)

// Param returns the named path parameter, or "" when absent
func (r *Request) Param(name string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// Claim returns the named authorizer claim as a string, or "" when the
// claim is absent or not string-valued
func (r *Request) Claim(name string) string {
	if r.Claims == nil {
		return ""
	}
	if v, ok := r.Claims[name].(string); ok {
		return v
	}
	return ""
}
