package category

import (
	"context"

	"github.com/budgetflow/budgetflow/internal/inmemory"
)

var _ Repository = (*inmemory.Repository[Category])(nil)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, id int, mutate func(*Category)) (Category, error)
	Delete(ctx context.Context, id int) (bool, error)
	Filter(ctx context.Context, pred func(Category) bool) ([]Category, error)
	Snapshot() []Category
}

// NewRepository creates the in-memory category store seeded with the given categories.
func NewRepository(cfg inmemory.Config, seed ...Category) (*inmemory.Repository[Category], error) {
	return inmemory.New[Category]("category", cfg, seed...)
}
