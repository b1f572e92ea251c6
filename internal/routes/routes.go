package routes

import (
	"strings"

	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// Method is the closed set of HTTP verbs routes may use
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

// Route binds one verb and sub-path to a handler. Path parameters use
// the ":name" form, e.g. ":id".
type Route struct {
	Method  Method
	Path    string
	Handler invocation.HandlerFunc
}

// Resource is a handler unit. It declares its base path and route
// table statically; the dispatcher mounts them. Base paths and
// sub-paths are declared without leading or trailing slashes.
type Resource interface {
	BasePath() string
	Routes() []Route
}

// Join builds the full route path from a base path and sub-path. Empty
// segments are omitted and the result carries exactly one leading slash,
// so ("items", ":id") becomes "/items/:id" and ("items", "") becomes
// "/items".
func Join(basePath, subPath string) string {
	segments := make([]string, 0, 2)
	if basePath != "" {
		segments = append(segments, basePath)
	}
	if subPath != "" {
		segments = append(segments, subPath)
	}
	return "/" + strings.Join(segments, "/")
}
