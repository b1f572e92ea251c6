package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/dispatch"
	"github.com/Chasso/cdk-local-testing/internal/handlers"
	"github.com/Chasso/cdk-local-testing/internal/routes"
	"github.com/Chasso/cdk-local-testing/internal/store"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Client     *dynamodb.Client
	Store      store.RecordStore
	Registry   *routes.Registry
	Dispatcher *dispatch.Dispatcher
}

// NewContainer creates a new dependency injection container. It wires
// configuration, the storage client, the data-access layer and the
// routing table once; every entrypoint reuses the same assembly, so a
// conflict in the route manifest fails here before anything serves.
func NewContainer(cfg *config.Config) (*Container, error) {
	configureLogging(cfg)

	client, err := store.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	recordStore := store.NewService(client, cfg.TableName)

	registry := routes.NewRegistry()
	for _, resource := range defaultResources(recordStore) {
		registry.Add(resource)
	}

	dispatcher, err := dispatch.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build routing table: %w", err)
	}

	return &Container{
		Config:     cfg,
		Client:     client,
		Store:      recordStore,
		Registry:   registry,
		Dispatcher: dispatcher,
	}, nil
}

// defaultResources is the manifest of handler units the API serves.
// Adding a resource here mounts it in both the local server and the
// Lambda entrypoints.
func defaultResources(recordStore store.RecordStore) []routes.Resource {
	return []routes.Resource{
		handlers.NewItems(recordStore),
		handlers.NewHealth(),
	}
}

// configureLogging applies the configured log level to the shared logger
func configureLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Close cleans up all resources. The storage client holds no
// connections that need explicit shutdown, so this exists for
// entrypoint symmetry.
func (c *Container) Close() error {
	return nil
}
