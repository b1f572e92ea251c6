package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/routes"
	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// DuplicateRouteError reports two handlers claiming the same method and
// path pair. The routing table is built once at startup, so entrypoints
// treat this as fatal and exit instead of serving an ambiguous table.
type DuplicateRouteError struct {
	Method routes.Method
	Path   string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route registration: %s %s", e.Method, e.Path)
}

// routeKey identifies one entry in the routing table
type routeKey struct {
	method routes.Method
	path   string
}

// Entry is one mounted route
type Entry struct {
	Method  routes.Method
	Path    string
	Handler invocation.HandlerFunc
}

// Dispatcher holds the routing table built from a registry. The table
// is never written after New returns, so lookups need no locking.
type Dispatcher struct {
	table   map[routeKey]invocation.HandlerFunc
	entries []Entry
}

// New builds the routing table from every resource in the registry,
// in registration order. A duplicate (method, path) pair yields a
// DuplicateRouteError and no dispatcher.
func New(registry *routes.Registry) (*Dispatcher, error) {
	d := &Dispatcher{
		table: make(map[routeKey]invocation.HandlerFunc),
	}

	for _, resource := range registry.Resources() {
		for _, route := range resource.Routes() {
			path := routes.Join(resource.BasePath(), route.Path)
			key := routeKey{method: route.Method, path: path}

			if _, exists := d.table[key]; exists {
				return nil, &DuplicateRouteError{Method: route.Method, Path: path}
			}

			d.table[key] = route.Handler
			d.entries = append(d.entries, Entry{
				Method:  route.Method,
				Path:    path,
				Handler: route.Handler,
			})
		}
	}

	return d, nil
}

// Entries returns the mounted routes in registration order
func (d *Dispatcher) Entries() []Entry {
	return d.entries
}

// Lookup returns the handler mounted on (method, path), or nil when
// nothing is mounted there
func (d *Dispatcher) Lookup(method routes.Method, path string) invocation.HandlerFunc {
	return d.table[routeKey{method: method, path: path}]
}

// Invoke runs one handler and converts anything that escapes it into a
// 500 envelope carrying the error message. Handler panics are recovered
// so a broken handler fails its own request without taking the process
// down. The returned result is always non-nil with a non-zero status.
func (d *Dispatcher) Invoke(ctx context.Context, handler invocation.HandlerFunc, req *invocation.Request) (result *invocation.Result) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"panic": fmt.Sprintf("%v", r),
			}).Error("Handler panicked")
			result = invocation.ErrorResponse(500, errors.New("internal server error"), invocation.HeaderModeCORS)
		}
	}()

	resp, err := handler(ctx, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Handler returned an unhandled error")
		return invocation.ErrorResponse(500, err, invocation.HeaderModeCORS)
	}

	if resp == nil {
		resp = &invocation.Result{}
	}
	if resp.StatusCode == 0 {
		resp.StatusCode = 200
	}

	return resp
}
