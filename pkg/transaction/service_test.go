package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/budgetflow/budgetflow/internal/inmemory"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var now = time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T, seed ...Transaction) *ServiceImpl {
	t.Helper()
	repo, err := NewRepository(inmemory.Config{Latency: inmemory.NoLatency{}}, seed...)
	require.NoError(t, err)
	return NewService(repo, utils.NewFixedClock(now))
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should return the newest transactions first", func(t *testing.T) {
		service := setup(t,
			Transaction{Id: 1, Description: "january", Date: day(time.January, 1)},
			Transaction{Id: 2, Description: "march", Date: day(time.March, 1)},
			Transaction{Id: 3, Description: "february", Date: day(time.February, 1)},
		)

		transactions, err := service.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"march", "february", "january"}, descriptions(transactions))
	})

	t.Run("should keep insertion order for equal dates", func(t *testing.T) {
		service := setup(t,
			Transaction{Id: 1, Description: "first", Date: day(time.May, 5)},
			Transaction{Id: 2, Description: "second", Date: day(time.May, 5)},
			Transaction{Id: 3, Description: "older", Date: day(time.May, 4)},
		)

		transactions, err := service.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "older"}, descriptions(transactions))
	})
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should default the date to now", func(t *testing.T) {
		service := setup(t)

		created, err := service.Create(ctx, Transaction{Description: "Coffee", Amount: dec("-4.5"), Type: TypeExpense})

		require.NoError(t, err)
		assert.Equal(t, 1, created.Id)
		assert.Equal(t, now, created.Date)
	})

	t.Run("should keep an explicit date", func(t *testing.T) {
		service := setup(t)

		created, err := service.Create(ctx, Transaction{Description: "Salary", Amount: dec("4000"), Type: TypeIncome, Date: day(time.March, 31)})

		require.NoError(t, err)
		assert.Equal(t, day(time.March, 31), created.Date)
	})

	t.Run("should not enforce the amount sign against the type", func(t *testing.T) {
		service := setup(t)

		created, err := service.Create(ctx, Transaction{Description: "Refund", Amount: dec("25"), Type: TypeExpense})

		require.NoError(t, err)
		assert.True(t, dec("25").Equal(created.Amount))
	})
}

func TestServiceImpl_Update(t *testing.T) {
	service := setup(t, Transaction{Id: 1, Description: "Groceries", Amount: dec("-80"), Type: TypeExpense, Date: day(time.March, 2), CategoryId: 2, AccountId: 1})
	noCategory := 0

	updated, err := service.Update(ctx, 1, Patch{CategoryId: &noCategory})

	require.NoError(t, err)
	assert.Equal(t, 0, updated.CategoryId)
	assert.Equal(t, 1, updated.AccountId)
	assert.Equal(t, "Groceries", updated.Description)

	_, err = service.Update(ctx, 2, Patch{CategoryId: &noCategory})
	assert.ErrorIs(t, err, inmemory.ErrNotFound)
}

func TestServiceImpl_Delete(t *testing.T) {
	service := setup(t, Transaction{Id: 1, Description: "Groceries"})

	deleted, err := service.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = service.Get(ctx, 1)
	assert.ErrorIs(t, err, inmemory.ErrNotFound)
}

func TestServiceImpl_ListByCategory(t *testing.T) {
	service := setup(t,
		Transaction{Id: 1, Description: "rent", CategoryId: 1, Date: day(time.January, 1)},
		Transaction{Id: 2, Description: "food a", CategoryId: 2, Date: day(time.March, 1)},
		Transaction{Id: 3, Description: "salary", Date: day(time.February, 1)},
		Transaction{Id: 4, Description: "food b", CategoryId: 2, Date: day(time.January, 15)},
		Transaction{Id: 5, Description: "food c", CategoryId: 2, Date: day(time.February, 20)},
	)

	transactions, err := service.ListByCategory(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"food a", "food b", "food c"}, descriptions(transactions))

	transactions, err = service.ListByCategory(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestServiceImpl_ListByAccount(t *testing.T) {
	service := setup(t,
		Transaction{Id: 1, Description: "a", AccountId: 1},
		Transaction{Id: 2, Description: "b", AccountId: 2},
		Transaction{Id: 3, Description: "c", AccountId: 1},
	)

	transactions, err := service.ListByAccount(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, descriptions(transactions))
}

func TestServiceImpl_Search(t *testing.T) {
	service := setup(t,
		Transaction{Id: 1, Description: "Whole Foods Market", Type: TypeExpense, Date: day(time.March, 3)},
		Transaction{Id: 2, Description: "Paycheck", Type: TypeIncome, Date: day(time.March, 1)},
		Transaction{Id: 3, Description: "Farmers market", Type: TypeExpense, Date: day(time.March, 9)},
		Transaction{Id: 4, Description: "Move to savings", Type: TypeTransfer, Date: day(time.March, 2)},
	)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter", Filter{}, []string{"Farmers market", "Whole Foods Market", "Move to savings", "Paycheck"}},
		{"term is case insensitive", Filter{Term: "MARKET"}, []string{"Farmers market", "Whole Foods Market"}},
		{"type only", Filter{Type: TypeTransfer}, []string{"Move to savings"}},
		{"term and type", Filter{Term: "pay", Type: TypeExpense}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := service.Search(ctx, tt.filter)

			require.NoError(t, err)
			assert.Equal(t, tt.want, descriptions(transactions))
		})
	}
}

func descriptions(transactions []Transaction) []string {
	out := make([]string, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.Description)
	}
	return out
}

func TestServiceImpl_ListByReference_NoReference(t *testing.T) {
	service := setup(t,
		Transaction{Id: 1, Description: "salary"},
		Transaction{Id: 2, Description: "rent", CategoryId: 1, AccountId: 1},
	)

	byCategory, err := service.ListByCategory(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, byCategory)
	assert.Empty(t, byCategory)

	byAccount, err := service.ListByAccount(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, byAccount)

	byAccount, err = service.ListByAccount(ctx, -1)
	require.NoError(t, err)
	assert.Empty(t, byAccount)
}

func TestServiceImpl_Create_ClockOrder(t *testing.T) {
	clock := utils.NewFixedClock(now)
	repo, err := NewRepository(inmemory.Config{Latency: inmemory.NoLatency{}})
	require.NoError(t, err)
	service := NewService(repo, clock)

	_, err = service.Create(ctx, Transaction{Description: "earlier", Type: TypeExpense})
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = service.Create(ctx, Transaction{Description: "later", Type: TypeExpense})
	require.NoError(t, err)

	transactions, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"later", "earlier"}, descriptions(transactions))
	assert.Equal(t, now.Add(time.Hour), transactions[0].Date)
}
