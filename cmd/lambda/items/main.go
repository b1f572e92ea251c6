package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/dispatch"
	"github.com/Chasso/cdk-local-testing/pkg/server"
)

var container *server.Container

// init builds the container once per execution environment so warm
// invocations reuse the client and routing table.
func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	awslambda.Start(dispatch.APIGatewayHandler(container.Dispatcher))
}
