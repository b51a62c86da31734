package category

import (
	"time"

	"github.com/budgetflow/budgetflow/internal/money"
	"github.com/shopspring/decimal"
)

const (
	DefaultColor = "#4f46e5"
	DefaultIcon  = "Wallet"
)

// warningShare is the fraction of the allocation below which the remaining money is considered low.
var warningShare = decimal.RequireFromString("0.2")

type Category struct {
	Id   int
	Name string
	// Allocated is the money set aside for the category. Never negative.
	Allocated decimal.Decimal
	// Spent is the money already used from the allocation. Never negative.
	Spent     decimal.Decimal
	Color     string
	Icon      string
	CreatedAt time.Time
}

func (c Category) EntityId() int {
	return c.Id
}

func (c Category) WithEntityId(id int) Category {
	c.Id = id
	return c
}

func (c Category) Remaining() decimal.Decimal {
	return c.Allocated.Sub(c.Spent)
}

// SpentPercentage is the share of the allocation already spent, 0 when nothing is allocated.
func (c Category) SpentPercentage() decimal.Decimal {
	return money.Percentage(c.Spent, c.Allocated)
}

type Status string

const (
	StatusOk      Status = "ok"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

func (c Category) Status() Status {
	remaining := c.Remaining()
	if remaining.IsNegative() {
		return StatusOver
	}
	if remaining.LessThan(c.Allocated.Mul(warningShare)) {
		return StatusWarning
	}
	return StatusOk
}

// Patch holds the fields of an update. Nil fields keep their stored value.
type Patch struct {
	Name      *string
	Allocated *decimal.Decimal
	Spent     *decimal.Decimal
	Color     *string
	Icon      *string
}

func (p Patch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Allocated != nil {
		c.Allocated = *p.Allocated
	}
	if p.Spent != nil {
		c.Spent = *p.Spent
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}

type BudgetSummary struct {
	TotalIncome    decimal.Decimal
	TotalAllocated decimal.Decimal
	TotalSpent     decimal.Decimal
	// Remaining is the income not yet allocated to any category.
	Remaining     decimal.Decimal
	CategoryCount int
}

// Summarize aggregates categories against a fixed income.
func Summarize(income decimal.Decimal, categories []Category) BudgetSummary {
	allocated := decimal.Zero
	spent := decimal.Zero
	for _, c := range categories {
		allocated = allocated.Add(c.Allocated)
		spent = spent.Add(c.Spent)
	}
	return BudgetSummary{
		TotalIncome:    income,
		TotalAllocated: allocated,
		TotalSpent:     spent,
		Remaining:      income.Sub(allocated),
		CategoryCount:  len(categories),
	}
}
