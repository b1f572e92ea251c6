package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/store"
)

func main() {
	var (
		action  = flag.String("action", "create", "Table action: create, status, delete")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.WithFields(logrus.Fields{
		"table":    cfg.TableName,
		"endpoint": cfg.LocalEndpoint,
		"is_local": cfg.IsLocal,
		"action":   *action,
	}).Info("Starting table tool")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := store.NewClient(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create DynamoDB client")
	}

	switch *action {
	case "create":
		if err := store.EnsureTable(ctx, client, cfg.TableName); err != nil {
			logger.WithError(err).Fatal("Table creation failed")
		}
		fmt.Printf("Table %s is ready\n", cfg.TableName)
	case "status":
		status, err := store.TableStatus(ctx, client, cfg.TableName)
		if err != nil {
			logger.WithError(err).Fatal("Failed to get table status")
		}
		fmt.Printf("Table Status:\n")
		fmt.Printf("  Name: %s\n", cfg.TableName)
		fmt.Printf("  Status: %s\n", status)
	case "delete":
		if err := store.DeleteTable(ctx, client, cfg.TableName); err != nil {
			logger.WithError(err).Fatal("Table deletion failed")
		}
		fmt.Printf("Table %s deleted\n", cfg.TableName)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: create, status, delete")
	}

	logger.Info("Table tool completed successfully")
}
