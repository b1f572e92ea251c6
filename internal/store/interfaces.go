package store

import (
	"context"

	"github.com/Chasso/cdk-local-testing/internal/models"
)

// RecordStore defines the interface for single-table record operations
type RecordStore interface {
	// Entity operations
	List(ctx context.Context, entityType string) ([]models.Record, error)
	Get(ctx context.Context, id, entityType string) (models.Record, error)
	Create(ctx context.Context, rec models.Record, entityType string) (string, error)
	Update(ctx context.Context, rec models.Record, entityType string) error
	Delete(ctx context.Context, id, entityType string) error

	// Link operations for records addressed by caller-supplied keys
	CreateLink(ctx context.Context, rec models.Record, pk, sk string) error
	DeleteLink(ctx context.Context, pk, sk string) error
}
