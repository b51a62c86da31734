package app

import (
	"net/http"

	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id:[0-9]+}", deps.CategoryHandler.Get).Methods("GET")
	r.HandleFunc("/api/category/{id:[0-9]+}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{id:[0-9]+}", deps.CategoryHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/category/{id:[0-9]+}/transactions", deps.TransactionHandler.ListByCategory).Methods("GET")
	r.HandleFunc("/api/budget/summary", deps.CategoryHandler.Summary).Methods("GET")

	// Accounts
	r.HandleFunc("/api/account", deps.AccountHandler.List).Methods("GET")
	r.HandleFunc("/api/account", deps.AccountHandler.Create).Methods("POST")
	r.HandleFunc("/api/account/overview", deps.AccountHandler.Overview).Methods("GET")
	r.HandleFunc("/api/account/{id:[0-9]+}", deps.AccountHandler.Get).Methods("GET")
	r.HandleFunc("/api/account/{id:[0-9]+}", deps.AccountHandler.Update).Methods("PUT")
	r.HandleFunc("/api/account/{id:[0-9]+}", deps.AccountHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/account/{id:[0-9]+}/transactions", deps.TransactionHandler.ListByAccount).Methods("GET")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{id:[0-9]+}", deps.TransactionHandler.Get).Methods("GET")
	r.HandleFunc("/api/transaction/{id:[0-9]+}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{id:[0-9]+}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Operations
	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}
