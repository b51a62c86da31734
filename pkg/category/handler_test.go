package category

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, seed ...Category) *mux.Router {
	t.Helper()
	handler := NewHandler(setup(t, seed...))
	r := mux.NewRouter()
	r.HandleFunc("/api/category", handler.List).Methods("GET")
	r.HandleFunc("/api/category", handler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id:[0-9]+}", handler.Get).Methods("GET")
	r.HandleFunc("/api/category/{id:[0-9]+}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{id:[0-9]+}", handler.Delete).Methods("DELETE")
	r.HandleFunc("/api/budget/summary", handler.Summary).Methods("GET")
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_List(t *testing.T) {
	r := setupRouter(t,
		Category{Id: 2, Name: "Rent", Allocated: dec("1500"), Spent: dec("1500")},
		Category{Id: 1, Name: "Fun", Allocated: dec("200"), Spent: dec("215.75")},
	)

	rec := do(r, http.MethodGet, "/api/category", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []CategoryDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "Rent", body[0].Name)
	assert.Equal(t, StatusOver, body[1].Status)
	assert.Equal(t, "-$15.75", body[1].Display.Remaining)
	assert.Equal(t, "108%", body[1].SpentPercentage)
}

func TestHandler_Create(t *testing.T) {
	t.Run("should create a category", func(t *testing.T) {
		r := setupRouter(t)

		rec := do(r, http.MethodPost, "/api/category", `{"name":" Groceries ","allocated":500,"icon":"ShoppingCart"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var body CategoryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 1, body.Id)
		assert.Equal(t, "Groceries", body.Name)
		assert.Equal(t, "$500.00", body.Display.Allocated)
		assert.Equal(t, DefaultColor, body.Color)
		require.NotNil(t, body.CreatedAt)
		assert.Equal(t, now, body.CreatedAt.UTC())
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"name":"  ","allocated":10}`, "Category name is required"},
		{"missing allocation", `{"name":"Food"}`, "Allocated amount is required"},
		{"negative allocation", `{"name":"Food","allocated":-1}`, "Please enter a valid amount"},
		{"malformed body", `{"name":`, "Invalid request body format"},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			r := setupRouter(t)

			rec := do(r, http.MethodPost, "/api/category", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	r := setupRouter(t, Category{Id: 5, Name: "Rent", Allocated: dec("1500")})

	rec := do(r, http.MethodGet, "/api/category/5", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/api/category/6", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "category 6: not found")
}

func TestHandler_Update(t *testing.T) {
	t.Run("should ignore an id in the body", func(t *testing.T) {
		r := setupRouter(t, Category{Id: 1, Name: "Rent", Allocated: dec("1500")})

		rec := do(r, http.MethodPut, "/api/category/1", `{"id":9,"name":"Housing"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body CategoryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 1, body.Id)
		assert.Equal(t, "Housing", body.Name)
		assert.True(t, dec("1500").Equal(body.Allocated))
	})

	t.Run("should reject negative spent", func(t *testing.T) {
		r := setupRouter(t, Category{Id: 1, Name: "Rent"})

		rec := do(r, http.MethodPut, "/api/category/1", `{"spent":-5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should return 404 for unknown category", func(t *testing.T) {
		r := setupRouter(t)

		rec := do(r, http.MethodPut, "/api/category/3", `{"name":"x"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	r := setupRouter(t, Category{Id: 1, Name: "Rent"})

	rec := do(r, http.MethodDelete, "/api/category/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(r, http.MethodDelete, "/api/category/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Summary(t *testing.T) {
	r := setupRouter(t,
		Category{Id: 1, Allocated: dec("500")},
		Category{Id: 2, Allocated: dec("300")},
		Category{Id: 3, Allocated: dec("200")},
	)

	rec := do(r, http.MethodGet, "/api/budget/summary", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body BudgetSummaryDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, dec("3000").Equal(body.Remaining))
	assert.Equal(t, "$3,000.00", body.Display.Remaining)
	assert.Equal(t, "$4,000.00", body.Display.TotalIncome)
	assert.Equal(t, 3, body.CategoryCount)
}

func TestHandler_RepositoryFailure(t *testing.T) {
	handler := NewHandler(NewService(newStubFailingRepository(context.Canceled), utils.NewFixedClock(now), dec("4000")))
	r := mux.NewRouter()
	r.HandleFunc("/api/category", handler.List).Methods("GET")

	rec := do(r, http.MethodGet, "/api/category", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "context canceled")
}
