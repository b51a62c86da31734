package app

import (
	"fmt"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/inmemory"
	"github.com/budgetflow/budgetflow/internal/metrics"
	"github.com/budgetflow/budgetflow/internal/seed"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/account"
	"github.com/budgetflow/budgetflow/pkg/category"
	"github.com/budgetflow/budgetflow/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all repositories, services and handlers for the application.
type Dependencies struct {
	Clock   utils.Clock
	Metrics *metrics.Metrics

	CategoryRepo    *inmemory.Repository[category.Category]
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	AccountRepo    *inmemory.Repository[account.Account]
	AccountService *account.ServiceImpl
	AccountHandler *account.Handler

	TransactionRepo    *inmemory.Repository[transaction.Transaction]
	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler
}

// BuildDependencies creates the repositories from dataset and wires services and handlers on top of them.
func BuildDependencies(cfg config.Application, dataset seed.Dataset, clock utils.Clock) (*Dependencies, error) {
	policy, err := cfg.Ids.IdPolicy()
	if err != nil {
		return nil, err
	}
	income, err := cfg.Budget.IncomeAmount()
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{Clock: clock, Metrics: metrics.New()}
	repoCfg := inmemory.Config{
		Latency:  cfg.Latency.Profile(),
		IdPolicy: policy,
		Observer: deps.Metrics,
	}

	deps.CategoryRepo, err = category.NewRepository(repoCfg, dataset.Categories...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	deps.CategoryService = category.NewService(deps.CategoryRepo, clock, income)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.AccountRepo, err = account.NewRepository(repoCfg, dataset.Accounts...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}
	deps.AccountService = account.NewService(deps.AccountRepo)
	deps.AccountHandler = account.NewHandler(deps.AccountService)

	deps.TransactionRepo, err = transaction.NewRepository(repoCfg, dataset.Transactions...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed transactions: %w", err)
	}
	deps.TransactionService = transaction.NewService(deps.TransactionRepo, clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	logSeeded(deps.CategoryRepo)
	logSeeded(deps.AccountRepo)
	logSeeded(deps.TransactionRepo)

	return deps, nil
}

func logSeeded[T inmemory.Entity[T]](repo *inmemory.Repository[T]) {
	log.Infof("Seeded %s repository with %d records", repo.Name(), len(repo.Snapshot()))
}
