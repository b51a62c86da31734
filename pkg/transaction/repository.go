package transaction

import (
	"context"

	"github.com/budgetflow/budgetflow/internal/inmemory"
)

var _ Repository = (*inmemory.Repository[Transaction])(nil)

type Repository interface {
	List(ctx context.Context) ([]Transaction, error)
	Get(ctx context.Context, id int) (Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, id int, mutate func(*Transaction)) (Transaction, error)
	Delete(ctx context.Context, id int) (bool, error)
	Filter(ctx context.Context, pred func(Transaction) bool) ([]Transaction, error)
	Snapshot() []Transaction
}

// NewRepository creates the in-memory transaction store. Listing returns the newest transactions first.
func NewRepository(cfg inmemory.Config, seed ...Transaction) (*inmemory.Repository[Transaction], error) {
	repo, err := inmemory.New[Transaction]("transaction", cfg, seed...)
	if err != nil {
		return nil, err
	}
	return repo.OrderBy(NewestFirst), nil
}
