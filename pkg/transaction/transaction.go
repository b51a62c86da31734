package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

// Transaction is a single money movement. CategoryId and AccountId are weak
// references; 0 means the transaction is not associated.
type Transaction struct {
	Id          int
	Description string
	// Amount is signed. Its sign is not checked against Type.
	Amount     decimal.Decimal
	Type       Type
	Date       time.Time
	CategoryId int
	AccountId  int
}

func (t Transaction) EntityId() int {
	return t.Id
}

func (t Transaction) WithEntityId(id int) Transaction {
	t.Id = id
	return t
}

// NewestFirst orders transactions by date, most recent first.
func NewestFirst(a, b Transaction) int {
	return b.Date.Compare(a.Date)
}

// Patch holds the fields of an update. Nil fields keep their stored value.
type Patch struct {
	Description *string
	Amount      *decimal.Decimal
	Type        *Type
	Date        *time.Time
	CategoryId  *int
	AccountId   *int
}

func (p Patch) Apply(t *Transaction) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.CategoryId != nil {
		t.CategoryId = *p.CategoryId
	}
	if p.AccountId != nil {
		t.AccountId = *p.AccountId
	}
}

// Filter narrows a transaction listing. Zero values match everything.
type Filter struct {
	// Term is matched case-insensitively against the description.
	Term string
	Type Type
}

func (f Filter) Matches(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	term := strings.TrimSpace(f.Term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(term))
}
