package dispatch

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/middleware"
	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// maxRequestBytes mirrors the payload cap of the Lambda proxy
// integration so oversized requests fail locally the way they would
// deployed.
const maxRequestBytes = 6 * 1024 * 1024

// NewRouter builds the local emulation engine: the dispatcher's routing
// table mounted on gin behind the standard middleware chain. The engine
// serves each request the way the deployed gateway would, including the
// authorizer claims the handlers expect.
func NewRouter(cfg *config.Config, d *Dispatcher) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestSizeLimit(maxRequestBytes))
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.Claims(cfg.JWT.Secret))

	for _, entry := range d.Entries() {
		router.Handle(string(entry.Method), entry.Path, ginHandler(d, entry.Handler))
	}

	return router
}

// ginHandler adapts one routed handler to gin. The handler's body
// string is parsed back to a structured value and written through gin's
// JSON renderer, so payloads are not encoded twice; an empty body
// defaults to the empty JSON object.
func ginHandler(d *Dispatcher, handler invocation.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, invocation.ErrorBody{Error: "failed to read request body"})
			return
		}

		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		req := &invocation.Request{
			PathParams: params,
			Body:       string(body),
			Claims:     middleware.ClaimsFromContext(c),
		}

		result := d.Invoke(c.Request.Context(), handler, req)

		for key, value := range result.Headers {
			c.Header(key, value)
		}

		raw := result.Body
		if raw == "" {
			raw = "{}"
		}

		var payload interface{}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			// Not JSON; pass the body through untouched
			c.String(result.StatusCode, result.Body)
			return
		}

		c.JSON(result.StatusCode, payload)
	}
}
