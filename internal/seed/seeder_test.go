package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/models"
	"github.com/Chasso/cdk-local-testing/internal/store"
)

// fakeStore records Create calls. The embedded interface satisfies the
// methods the seeder never touches.
type fakeStore struct {
	store.RecordStore

	created map[string][]models.Record
	failure error
}

func newFakeStore() *fakeStore {
	return &fakeStore{created: make(map[string][]models.Record)}
}

func (f *fakeStore) Create(ctx context.Context, record models.Record, entityType string) (string, error) {
	if f.failure != nil {
		return "", f.failure
	}
	f.created[entityType] = append(f.created[entityType], record.Clone())
	return fmt.Sprintf("id-%d", len(f.created[entityType])), nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// TestLoadFixture verifies that a fixture file parses into grouped records.
func TestLoadFixture(t *testing.T) {
	fixture, err := LoadFixture("testdata/fixture.json")
	if err != nil {
		t.Fatalf("LoadFixture failed: %v", err)
	}

	if len(fixture["ITEM"]) != 2 {
		t.Errorf("Expected 2 ITEM records, got %d", len(fixture["ITEM"]))
	}
	if len(fixture["ORDER"]) != 1 {
		t.Errorf("Expected 1 ORDER record, got %d", len(fixture["ORDER"]))
	}
	if fixture["ITEM"][0]["name"] != "sourdough" {
		t.Errorf("Expected first ITEM name 'sourdough', got %v", fixture["ITEM"][0]["name"])
	}
}

// TestLoadFixtureMissingFile verifies the error path for absent files.
func TestLoadFixtureMissingFile(t *testing.T) {
	_, err := LoadFixture("testdata/does-not-exist.json")
	if err == nil {
		t.Fatal("Expected error for missing fixture file")
	}
}

// TestApply verifies that every fixture record is created through the store.
func TestApply(t *testing.T) {
	recordStore := newFakeStore()
	seeder := NewSeeder(recordStore, quietLogger())

	fixture := Fixture{
		"ITEM": {
			{"name": "sourdough"},
			{"name": "baguette"},
		},
		"ORDER": {
			{"customer": "ada"},
		},
	}

	result, err := seeder.Apply(context.Background(), fixture)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Created != 3 {
		t.Errorf("Expected 3 records created, got %d", result.Created)
	}
	if result.ByType["ITEM"] != 2 {
		t.Errorf("Expected 2 ITEM records, got %d", result.ByType["ITEM"])
	}
	if result.ByType["ORDER"] != 1 {
		t.Errorf("Expected 1 ORDER record, got %d", result.ByType["ORDER"])
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
	if len(recordStore.created["ITEM"]) != 2 {
		t.Errorf("Expected store to receive 2 ITEM records, got %d", len(recordStore.created["ITEM"]))
	}
}

// TestApplyWarnsOnExplicitIDs verifies that fixture ids produce a warning.
func TestApplyWarnsOnExplicitIDs(t *testing.T) {
	recordStore := newFakeStore()
	seeder := NewSeeder(recordStore, quietLogger())

	fixture := Fixture{
		"ITEM": {
			{"id": "fixed-id", "name": "sourdough"},
		},
	}

	result, err := seeder.Apply(context.Background(), fixture)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Created != 1 {
		t.Errorf("Expected 1 record created, got %d", result.Created)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "carries an id") {
		t.Errorf("Unexpected warning text: %s", result.Warnings[0])
	}
}

// TestApplyStoreFailure verifies that a store error aborts the run.
func TestApplyStoreFailure(t *testing.T) {
	recordStore := newFakeStore()
	recordStore.failure = fmt.Errorf("table missing")
	seeder := NewSeeder(recordStore, quietLogger())

	fixture := Fixture{
		"ITEM": {
			{"name": "sourdough"},
		},
	}

	result, err := seeder.Apply(context.Background(), fixture)
	if err == nil {
		t.Fatal("Expected error when store fails")
	}
	if !strings.Contains(err.Error(), "table missing") {
		t.Errorf("Expected wrapped store error, got: %v", err)
	}
	if result.Created != 0 {
		t.Errorf("Expected 0 records created, got %d", result.Created)
	}
}
