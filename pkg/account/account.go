package account

import (
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	TypeChecking   AccountType = "checking"
	TypeSavings    AccountType = "savings"
	TypeCredit     AccountType = "credit"
	TypeInvestment AccountType = "investment"
)

func (t AccountType) Valid() bool {
	switch t {
	case TypeChecking, TypeSavings, TypeCredit, TypeInvestment:
		return true
	}
	return false
}

type Account struct {
	Id   int
	Name string
	Type AccountType
	// Balance is signed; credit accounts usually carry a negative balance.
	Balance decimal.Decimal
}

func (a Account) EntityId() int {
	return a.Id
}

func (a Account) WithEntityId(id int) Account {
	a.Id = id
	return a
}

// Patch holds the fields of an update. Nil fields keep their stored value.
type Patch struct {
	Name    *string
	Type    *AccountType
	Balance *decimal.Decimal
}

func (p Patch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Balance != nil {
		a.Balance = *p.Balance
	}
}

type Overview struct {
	TotalBalance decimal.Decimal
	AccountCount int
}

func Summarize(accounts []Account) Overview {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return Overview{TotalBalance: total, AccountCount: len(accounts)}
}
