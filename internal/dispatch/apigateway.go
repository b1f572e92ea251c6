package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Chasso/cdk-local-testing/internal/routes"
	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// APIGatewayHandler adapts the dispatcher to API Gateway proxy events
// for Lambda entrypoints. Routes are resolved against the event's
// resource template, so "/items/{id}" finds the handler mounted on
// "/items/:id".
func APIGatewayHandler(d *Dispatcher) func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		path := resourceToRoutePath(event.Resource)

		handler := d.Lookup(routes.Method(event.HTTPMethod), path)
		if handler == nil {
			notFound := invocation.ErrorResponse(404,
				fmt.Errorf("no route for %s %s", event.HTTPMethod, event.Path),
				invocation.HeaderModeCORS)
			return toProxyResponse(notFound), nil
		}

		req := &invocation.Request{
			PathParams: event.PathParameters,
			Body:       event.Body,
			Claims:     authorizerClaims(event.RequestContext.Authorizer),
		}

		return toProxyResponse(d.Invoke(ctx, handler, req)), nil
	}
}

// resourceToRoutePath converts gateway "{param}" segments to the
// ":param" form the routing table uses
func resourceToRoutePath(resource string) string {
	segments := strings.Split(resource, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[i] = ":" + strings.Trim(segment, "{}")
		}
	}
	return strings.Join(segments, "/")
}

// authorizerClaims extracts the claims the gateway authorizer attached
// to the request context. Cognito authorizers nest them under "claims";
// custom authorizers attach them at the top level.
func authorizerClaims(authorizer map[string]interface{}) map[string]interface{} {
	if len(authorizer) == 0 {
		return nil
	}
	if claims, ok := authorizer["claims"].(map[string]interface{}); ok {
		return claims
	}
	return authorizer
}

// toProxyResponse converts a handler result to the proxy response
// shape. The proxy contract is already string-typed, so the body passes
// through as-is.
func toProxyResponse(result *invocation.Result) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: result.StatusCode,
		Headers:    result.Headers,
		Body:       result.Body,
	}
}
