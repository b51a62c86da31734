package category

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, id int, patch Patch) (Category, error)
	Delete(ctx context.Context, id int) (bool, error)
	BudgetSummary(ctx context.Context) (BudgetSummary, error)
}

type ServiceImpl struct {
	repo   Repository
	clock  utils.Clock
	income decimal.Decimal
}

// NewService creates the category service. income is the fixed monthly income the budget summary is computed against.
func NewService(repo Repository, clock utils.Clock, income decimal.Decimal) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, income: income}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Category, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new category. A new category has spent nothing yet.
func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	category.Spent = decimal.Zero
	category.CreatedAt = s.clock.Now()
	if category.Color == "" {
		category.Color = DefaultColor
	}
	if category.Icon == "" {
		category.Icon = DefaultIcon
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	log.Debugf("created category %d (%s)", created.Id, created.Name)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, patch Patch) (Category, error) {
	updated, err := s.repo.Update(ctx, id, patch.Apply)
	if err != nil {
		log.Warnf("category not updated (%d): %v", id, err)
		return Category{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Warnf("category not deleted (%d): %v", id, err)
		return false, err
	}
	return deleted, nil
}

// BudgetSummary recomputes the totals from the current categories on every call.
func (s *ServiceImpl) BudgetSummary(ctx context.Context) (BudgetSummary, error) {
	if err := ctx.Err(); err != nil {
		return BudgetSummary{}, err
	}
	return Summarize(s.income, s.repo.Snapshot()), nil
}
