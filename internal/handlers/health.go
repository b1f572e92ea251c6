package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/routes"
	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// Health serves the health check endpoint
type Health struct{}

// NewHealth creates a new health resource
func NewHealth() *Health {
	return &Health{}
}

// BasePath returns the path segment the resource is mounted under
func (h *Health) BasePath() string {
	return "health"
}

// Routes returns the static route table for the resource
func (h *Health) Routes() []routes.Route {
	return []routes.Route{
		{Method: routes.GET, Path: "", Handler: h.Check},
	}
}

// Check reports process liveness and the deployment mode serving it
func (h *Health) Check(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	return invocation.BuildResponse(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"mode":      config.GetDeploymentMode(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, invocation.HeaderModeCORS)
}
