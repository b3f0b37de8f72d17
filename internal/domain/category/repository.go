package category

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, categoryID ulid.ULID) (*Category, error)
	GetByCode(ctx context.Context, code string) (*Category, error)
	GetAll(ctx context.Context, onlyActive bool) ([]*Category, error)
}
