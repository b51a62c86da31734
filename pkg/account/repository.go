package account

import (
	"context"

	"github.com/budgetflow/budgetflow/internal/inmemory"
)

var _ Repository = (*inmemory.Repository[Account])(nil)

type Repository interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id int) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, id int, mutate func(*Account)) (Account, error)
	Delete(ctx context.Context, id int) (bool, error)
	Filter(ctx context.Context, pred func(Account) bool) ([]Account, error)
	Snapshot() []Account
}

func NewRepository(cfg inmemory.Config, seed ...Account) (*inmemory.Repository[Account], error) {
	return inmemory.New[Account]("account", cfg, seed...)
}
