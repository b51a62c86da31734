package transaction

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/budgetflow/budgetflow/internal/money"
	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id            int             `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DisplayAmount string          `json:"displayAmount,omitempty"`
	Type          Type            `json:"type"`
	Date          *time.Time      `json:"date,omitempty"`
	CategoryId    int             `json:"categoryId,omitempty"`
	AccountId     int             `json:"accountId,omitempty"`
}

type UpdateTransactionDTO struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *Type            `json:"type"`
	Date        *time.Time       `json:"date"`
	CategoryId  *int             `json:"categoryId"`
	AccountId   *int             `json:"accountId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List returns transactions newest first. The optional query parameters q and type narrow the result.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{Term: query.Get("q"), Type: Type(query.Get("type"))}
	if filter.Type == "all" {
		filter.Type = ""
	}
	if filter.Type != "" && !filter.Type.Valid() {
		rest.WriteError(w, http.StatusBadRequest, unknownTypeMessage(filter.Type))
		return
	}
	log.Debugf("Listing transactions (filter: %+v)", filter)

	var transactions []Transaction
	var err error
	if filter == (Filter{}) {
		transactions, err = h.service.List(r.Context())
	} else {
		transactions, err = h.service.Search(r.Context(), filter)
	}
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	writeTransactions(w, transactions)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	log.Debugf("Listing transactions of category %d", id)
	transactions, err := h.service.ListByCategory(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	writeTransactions(w, transactions)
}

func (h *Handler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	log.Debugf("Listing transactions of account %d", id)
	transactions, err := h.service.ListByAccount(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	writeTransactions(w, transactions)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}
	log.Debugf("Getting transaction %d", id)

	transaction, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionToDTO(transaction))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating transaction")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	dto.Description = strings.TrimSpace(dto.Description)
	if dto.Description == "" {
		rest.WriteError(w, http.StatusBadRequest, "Description is required")
		return
	}
	if !dto.Type.Valid() {
		rest.WriteError(w, http.StatusBadRequest, unknownTypeMessage(dto.Type))
		return
	}
	if dto.CategoryId < 0 || dto.AccountId < 0 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid reference id")
		return
	}

	created, err := h.service.Create(r.Context(), DTOToTransaction(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TransactionToDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}
	log.Debugf("Updating transaction %d", id)

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if dto.Description != nil {
		trimmed := strings.TrimSpace(*dto.Description)
		if trimmed == "" {
			rest.WriteError(w, http.StatusBadRequest, "Description is required")
			return
		}
		dto.Description = &trimmed
	}
	if dto.Type != nil && !dto.Type.Valid() {
		rest.WriteError(w, http.StatusBadRequest, unknownTypeMessage(*dto.Type))
		return
	}
	if (dto.CategoryId != nil && *dto.CategoryId < 0) || (dto.AccountId != nil && *dto.AccountId < 0) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid reference id")
		return
	}
	if dto.Date != nil {
		utc := dto.Date.UTC()
		dto.Date = &utc
	}

	updated, err := h.service.Update(r.Context(), id, Patch{
		Description: dto.Description,
		Amount:      dto.Amount,
		Type:        dto.Type,
		Date:        dto.Date,
		CategoryId:  dto.CategoryId,
		AccountId:   dto.AccountId,
	})
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}
	log.Debugf("Deleting transaction %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTransactions(w http.ResponseWriter, transactions []Transaction) {
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, TransactionToDTO(t))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func unknownTypeMessage(t Type) string {
	return fmt.Sprintf("Unknown transaction type %q", t)
}

func TransactionToDTO(t Transaction) TransactionDTO {
	dto := TransactionDTO{
		Id:            t.Id,
		Description:   t.Description,
		Amount:        t.Amount,
		DisplayAmount: money.FormatCurrency(t.Amount),
		Type:          t.Type,
		CategoryId:    t.CategoryId,
		AccountId:     t.AccountId,
	}
	if !t.Date.IsZero() {
		date := t.Date
		dto.Date = &date
	}
	return dto
}

func DTOToTransaction(dto TransactionDTO) Transaction {
	t := Transaction{
		Id:          dto.Id,
		Description: dto.Description,
		Amount:      dto.Amount,
		Type:        dto.Type,
		CategoryId:  dto.CategoryId,
		AccountId:   dto.AccountId,
	}
	if dto.Date != nil {
		t.Date = dto.Date.UTC()
	}
	return t
}
