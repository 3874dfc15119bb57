package jobconfig

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists job configurations.
type Repository interface {
	Create(ctx context.Context, record *Configuration) (*Configuration, error)
	Update(ctx context.Context, record *Configuration) (*Configuration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Configuration, error)
	GetByKey(ctx context.Context, key string) (*Configuration, error)
	List(ctx context.Context) ([]*Configuration, error)
}
