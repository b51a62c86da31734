package category

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/budgetflow/budgetflow/internal/money"
	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	Id              int             `json:"id"`
	Name            string          `json:"name"`
	Allocated       decimal.Decimal `json:"allocated"`
	Spent           decimal.Decimal `json:"spent"`
	Color           string          `json:"color,omitempty"`
	Icon            string          `json:"icon,omitempty"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	Remaining       decimal.Decimal `json:"remaining"`
	SpentPercentage string          `json:"spentPercentage"`
	Status          Status          `json:"status"`
	Display         DisplayDTO      `json:"display"`
}

// DisplayDTO carries the amounts already formatted as currency.
type DisplayDTO struct {
	Allocated string `json:"allocated"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
}

type CreateCategoryDTO struct {
	Name      string           `json:"name"`
	Allocated *decimal.Decimal `json:"allocated"`
	Color     string           `json:"color,omitempty"`
	Icon      string           `json:"icon,omitempty"`
}

type UpdateCategoryDTO struct {
	Name      *string          `json:"name"`
	Allocated *decimal.Decimal `json:"allocated"`
	Spent     *decimal.Decimal `json:"spent"`
	Color     *string          `json:"color"`
	Icon      *string          `json:"icon"`
}

type BudgetSummaryDTO struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	Remaining      decimal.Decimal `json:"remaining"`
	CategoryCount  int             `json:"categoryCount"`
	Display        struct {
		TotalIncome    string `json:"totalIncome"`
		TotalAllocated string `json:"totalAllocated"`
		TotalSpent     string `json:"totalSpent"`
		Remaining      string `json:"remaining"`
	} `json:"display"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing categories")
	categories, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	log.Debugf("Getting category %d", id)

	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, CategoryToDTO(category))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating category")

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if msg := validateCreate(dto); msg != "" {
		rest.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.service.Create(r.Context(), Category{
		Name:      strings.TrimSpace(dto.Name),
		Allocated: *dto.Allocated,
		Color:     dto.Color,
		Icon:      dto.Icon,
	})
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, CategoryToDTO(created))
}

// Update applies the fields present in the body. An id in the body is ignored.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	log.Debugf("Updating category %d", id)

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if msg := validateUpdate(dto); msg != "" {
		rest.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		dto.Name = &trimmed
	}

	updated, err := h.service.Update(r.Context(), id, Patch{
		Name:      dto.Name,
		Allocated: dto.Allocated,
		Spent:     dto.Spent,
		Color:     dto.Color,
		Icon:      dto.Icon,
	})
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, CategoryToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	log.Debugf("Deleting category %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing budget summary")
	summary, err := h.service.BudgetSummary(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SummaryToDTO(summary))
}

func validateCreate(dto CreateCategoryDTO) string {
	if strings.TrimSpace(dto.Name) == "" {
		return "Category name is required"
	}
	if dto.Allocated == nil {
		return "Allocated amount is required"
	}
	if dto.Allocated.IsNegative() {
		return "Please enter a valid amount"
	}
	return ""
}

func validateUpdate(dto UpdateCategoryDTO) string {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return "Category name is required"
	}
	if dto.Allocated != nil && dto.Allocated.IsNegative() {
		return "Please enter a valid amount"
	}
	if dto.Spent != nil && dto.Spent.IsNegative() {
		return "Spent amount cannot be negative"
	}
	return ""
}

func CategoryToDTO(c Category) CategoryDTO {
	dto := CategoryDTO{
		Id:              c.Id,
		Name:            c.Name,
		Allocated:       c.Allocated,
		Spent:           c.Spent,
		Color:           c.Color,
		Icon:            c.Icon,
		Remaining:       c.Remaining(),
		SpentPercentage: money.FormatPercentage(c.Spent, c.Allocated),
		Status:          c.Status(),
		Display: DisplayDTO{
			Allocated: money.FormatCurrency(c.Allocated),
			Spent:     money.FormatCurrency(c.Spent),
			Remaining: money.FormatCurrency(c.Remaining()),
		},
	}
	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		dto.CreatedAt = &createdAt
	}
	return dto
}

// DTOToCategory converts a stored representation back into a Category. Derived fields are ignored.
func DTOToCategory(dto CategoryDTO) Category {
	c := Category{
		Id:        dto.Id,
		Name:      dto.Name,
		Allocated: dto.Allocated,
		Spent:     dto.Spent,
		Color:     dto.Color,
		Icon:      dto.Icon,
	}
	if dto.CreatedAt != nil {
		c.CreatedAt = dto.CreatedAt.UTC()
	}
	return c
}

func SummaryToDTO(s BudgetSummary) BudgetSummaryDTO {
	dto := BudgetSummaryDTO{
		TotalIncome:    s.TotalIncome,
		TotalAllocated: s.TotalAllocated,
		TotalSpent:     s.TotalSpent,
		Remaining:      s.Remaining,
		CategoryCount:  s.CategoryCount,
	}
	dto.Display.TotalIncome = money.FormatCurrency(s.TotalIncome)
	dto.Display.TotalAllocated = money.FormatCurrency(s.TotalAllocated)
	dto.Display.TotalSpent = money.FormatCurrency(s.TotalSpent)
	dto.Display.Remaining = money.FormatCurrency(s.Remaining)
	return dto
}
