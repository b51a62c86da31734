// Package seed provides the initial snapshot the repositories start from.
package seed

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/budgetflow/budgetflow/pkg/account"
	"github.com/budgetflow/budgetflow/pkg/category"
	"github.com/budgetflow/budgetflow/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

const (
	CategoriesFile   = "categories.json"
	AccountsFile     = "accounts.json"
	TransactionsFile = "transactions.json"
)

//go:embed data/*.json
var embedded embed.FS

type Dataset struct {
	Categories   []category.Category
	Accounts     []account.Account
	Transactions []transaction.Transaction
}

// Load reads the dataset. A file present in dir replaces the embedded file of the same name;
// an empty dir means the embedded dataset is used as is.
func Load(dir string) (Dataset, error) {
	var categories []category.CategoryDTO
	if err := decode(dir, CategoriesFile, &categories); err != nil {
		return Dataset{}, err
	}
	var accounts []account.AccountDTO
	if err := decode(dir, AccountsFile, &accounts); err != nil {
		return Dataset{}, err
	}
	var transactions []transaction.TransactionDTO
	if err := decode(dir, TransactionsFile, &transactions); err != nil {
		return Dataset{}, err
	}

	dataset := Dataset{
		Categories:   make([]category.Category, 0, len(categories)),
		Accounts:     make([]account.Account, 0, len(accounts)),
		Transactions: make([]transaction.Transaction, 0, len(transactions)),
	}
	for _, dto := range categories {
		dataset.Categories = append(dataset.Categories, category.DTOToCategory(dto))
	}
	for _, dto := range accounts {
		dataset.Accounts = append(dataset.Accounts, account.DTOToAccount(dto))
	}
	for _, dto := range transactions {
		dataset.Transactions = append(dataset.Transactions, transaction.DTOToTransaction(dto))
	}
	log.Debugf("seed loaded: %d categories, %d accounts, %d transactions",
		len(dataset.Categories), len(dataset.Accounts), len(dataset.Transactions))
	return dataset, nil
}

func decode(dir, name string, target any) error {
	data, err := read(dir, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", name, err)
	}
	return nil
}

func read(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			log.Infof("Using seed file %s", path)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
	}
	return embedded.ReadFile("data/" + name)
}
