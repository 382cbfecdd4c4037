package store

import (
	"context"

	"github.com/northgard/sigil/internal/models"
)

// Store defines the code persistence operations. Consumers should depend
// on this interface rather than the concrete *DB type to facilitate
// testing with fakes.
type Store interface {
	List(ctx context.Context) ([]models.Code, error)
	Get(ctx context.Context, id string) (*models.Code, error)
	Create(ctx context.Context, c models.Code) (*models.Code, error)
	Update(ctx context.Context, c models.Code) (*models.Code, error)
	Delete(ctx context.Context, id string) error
	RecordScan(ctx context.Context, id string) (int64, error)
	SetImagePath(ctx context.Context, id, path string) error
	ClearImagePath(ctx context.Context, id string) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
