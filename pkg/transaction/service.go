package transaction

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Transaction, error)
	Search(ctx context.Context, filter Filter) ([]Transaction, error)
	Get(ctx context.Context, id int) (Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, id int, patch Patch) (Transaction, error)
	Delete(ctx context.Context, id int) (bool, error)
	ListByCategory(ctx context.Context, categoryId int) ([]Transaction, error)
	ListByAccount(ctx context.Context, accountId int) ([]Transaction, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

// List returns all transactions, newest first.
func (s *ServiceImpl) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.List(ctx)
}

// Search returns the transactions matching filter, newest first.
func (s *ServiceImpl) Search(ctx context.Context, filter Filter) ([]Transaction, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matching := make([]Transaction, 0, len(all))
	for _, t := range all {
		if filter.Matches(t) {
			matching = append(matching, t)
		}
	}
	return matching, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a transaction. Without a date it is recorded at the current time.
func (s *ServiceImpl) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	if transaction.Date.IsZero() {
		transaction.Date = s.clock.Now()
	}
	created, err := s.repo.Create(ctx, transaction)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	log.Debugf("created %s transaction %d (%s)", created.Type, created.Id, created.Amount)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, patch Patch) (Transaction, error) {
	updated, err := s.repo.Update(ctx, id, patch.Apply)
	if err != nil {
		log.Warnf("transaction not updated (%d): %v", id, err)
		return Transaction{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Warnf("transaction not deleted (%d): %v", id, err)
		return false, err
	}
	return deleted, nil
}

// ListByCategory returns the transactions referencing the category, in the order they were recorded.
// An id of 0 or less references no category and matches nothing.
func (s *ServiceImpl) ListByCategory(ctx context.Context, categoryId int) ([]Transaction, error) {
	if categoryId <= 0 {
		return []Transaction{}, nil
	}
	return s.repo.Filter(ctx, func(t Transaction) bool {
		return t.CategoryId == categoryId
	})
}

// ListByAccount returns the transactions referencing the account, in the order they were recorded.
func (s *ServiceImpl) ListByAccount(ctx context.Context, accountId int) ([]Transaction, error) {
	if accountId <= 0 {
		return []Transaction{}, nil
	}
	return s.repo.Filter(ctx, func(t Transaction) bool {
		return t.AccountId == accountId
	})
}
