package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/models"
	"github.com/Chasso/cdk-local-testing/internal/store"
)

// Fixture is the on-disk seed format: records grouped by their entity
// type tag, e.g. {"ITEM": [{"name": "sourdough"}]}.
type Fixture map[string][]models.Record

// Result summarizes a seeding run
type Result struct {
	Created  int
	ByType   map[string]int
	Warnings []string
}

// Seeder loads fixture records into the record store
type Seeder struct {
	store  store.RecordStore
	logger *logrus.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(recordStore store.RecordStore, logger *logrus.Logger) *Seeder {
	return &Seeder{
		store:  recordStore,
		logger: logger,
	}
}

// LoadFixture reads and parses a fixture file
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	return fixture, nil
}

// Apply creates every fixture record through the store, so seeded
// records receive generated ids and timestamps exactly like records
// created through the API.
func (s *Seeder) Apply(ctx context.Context, fixture Fixture) (*Result, error) {
	result := &Result{ByType: make(map[string]int)}

	for entityType, records := range fixture {
		if entityType == "" {
			result.Warnings = append(result.Warnings, "skipping records with an empty entity type")
			continue
		}

		for i, rec := range records {
			if rec.ID() != "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s record %d carries an id; a fresh one is generated", entityType, i))
			}

			id, err := s.store.Create(ctx, rec, entityType)
			if err != nil {
				return result, fmt.Errorf("failed to seed %s record %d: %w", entityType, i, err)
			}

			s.logger.WithFields(logrus.Fields{
				"entity_type": entityType,
				"id":          id,
			}).Debug("Seeded record")

			result.Created++
			result.ByType[entityType]++
		}
	}

	return result, nil
}
