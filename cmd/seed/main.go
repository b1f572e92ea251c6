package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/seed"
	"github.com/Chasso/cdk-local-testing/internal/store"
)

func main() {
	var (
		fixturePath = flag.String("file", "./seed.json", "Fixture file path")
		dryRun      = flag.Bool("dry-run", false, "Parse the fixture without writing records")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absPath, err := filepath.Abs(*fixturePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute fixture path")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.WithFields(logrus.Fields{
		"fixture":  absPath,
		"table":    cfg.TableName,
		"endpoint": cfg.LocalEndpoint,
		"is_local": cfg.IsLocal,
		"dry_run":  *dryRun,
	}).Info("Starting seed tool")

	fixture, err := seed.LoadFixture(absPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load fixture")
	}

	if *dryRun {
		logger.Info("Performing dry run - no records will be written")
		printFixtureSummary(fixture)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := store.NewClient(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create storage client")
	}

	recordStore := store.NewService(client, cfg.TableName)
	seeder := seed.NewSeeder(recordStore, logger)

	result, err := seeder.Apply(ctx, fixture)
	if err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	// Display results
	fmt.Printf("\n=== Seed Results ===\n")
	fmt.Printf("Records created: %d\n", result.Created)
	for entityType, count := range result.ByType {
		fmt.Printf("  %s: %d\n", entityType, count)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Printf("  ⚠ %s\n", warning)
		}
	}

	fmt.Printf("\n✅ Seeding completed successfully!\n")

	logger.Info("Seed tool completed successfully")
}

func printFixtureSummary(fixture seed.Fixture) {
	total := 0
	fmt.Println("Fixture contents:")
	for entityType, records := range fixture {
		fmt.Printf("  %s: %d records\n", entityType, len(records))
		total += len(records)
	}
	fmt.Printf("Total: %d records\n", total)
}
