package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/account"
	"github.com/budgetflow/budgetflow/pkg/category"
	"github.com/budgetflow/budgetflow/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func setup(t *testing.T) *Application {
	t.Helper()
	cfg := config.Defaults()
	cfg.Latency.Enabled = false
	cfg.Server.Addr = "127.0.0.1:0"
	application, err := New(cfg, utils.NewFixedClock(now))
	require.NoError(t, err)
	return application
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApplication_SeededRoutes(t *testing.T) {
	h := setup(t).Handler()

	t.Run("categories", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/api/category", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body []category.CategoryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Len(t, body, 6)
	})

	t.Run("budget summary", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/api/budget/summary", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body category.BudgetSummaryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "3020", body.TotalAllocated.String())
		assert.Equal(t, "980", body.Remaining.String())
		assert.Equal(t, 6, body.CategoryCount)
	})

	t.Run("account overview is not taken for an id", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/api/account/overview", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body account.OverviewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 4, body.AccountCount)
	})

	t.Run("transactions are newest first", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/api/transaction", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body []transaction.TransactionDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body, 10)
		assert.Equal(t, 10, body[0].Id)
		for i := 1; i < len(body); i++ {
			assert.False(t, body[i].Date.After(*body[i-1].Date))
		}
	})

	t.Run("transactions of a category", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/api/category/2/transactions", "")

		var body []transaction.TransactionDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body, 2)
		assert.Equal(t, []int{3, 7}, []int{body[0].Id, body[1].Id})
	})

	t.Run("unknown record", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/api/transaction/99", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not found")
	})
}

func TestApplication_CreateAfterSeed(t *testing.T) {
	h := setup(t).Handler()

	rec := serve(h, http.MethodPost, "/api/category", `{"name":"Travel","allocated":400}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body category.CategoryDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 7, body.Id)
	assert.True(t, body.Spent.IsZero())
}

func TestApplication_Middleware(t *testing.T) {
	application := setup(t)
	h := application.Handler()

	t.Run("should generate a request id", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, rec.Header().Get(RequestIdHeader), 36)
	})

	t.Run("should echo the client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIdHeader, "abc-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIdHeader))
	})

	t.Run("should expose request and repository metrics", func(t *testing.T) {
		serve(h, http.MethodGet, "/api/account/1", "")

		rec := serve(h, http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		metrics := rec.Body.String()
		assert.Contains(t, metrics, `budgetflow_http_requests_total{code="200",method="GET",route="/api/account/{id:[0-9]+}"} 1`)
		assert.Contains(t, metrics, `budgetflow_repository_operations_total{entity="account",operation="get",outcome="ok"} 1`)
	})
}

func TestApplication_Run(t *testing.T) {
	application := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- application.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestBuildDependencies_InvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Ids.Policy = "random"

	_, err := New(cfg, utils.NewFixedClock(now))

	assert.Error(t, err)
}

func TestBuildDependencies_SeedsRepositories(t *testing.T) {
	application := setup(t)

	assert.Equal(t, "category", application.deps.CategoryRepo.Name())
	assert.Len(t, application.deps.CategoryRepo.Snapshot(), 6)
	assert.Equal(t, "account", application.deps.AccountRepo.Name())
	assert.Len(t, application.deps.AccountRepo.Snapshot(), 4)
	assert.Equal(t, "transaction", application.deps.TransactionRepo.Name())
	assert.Len(t, application.deps.TransactionRepo.Snapshot(), 10)
}
