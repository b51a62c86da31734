package account

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/budgetflow/budgetflow/internal/money"
	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type AccountDTO struct {
	Id             int             `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	DisplayBalance string          `json:"displayBalance,omitempty"`
}

type UpdateAccountDTO struct {
	Name    *string          `json:"name"`
	Type    *AccountType     `json:"type"`
	Balance *decimal.Decimal `json:"balance"`
}

type OverviewDTO struct {
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	DisplayTotalBalance string          `json:"displayTotalBalance"`
	AccountCount        int             `json:"accountCount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing accounts")
	accounts, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, AccountToDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	log.Debugf("Getting account %d", id)

	account, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, AccountToDTO(account))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating account")

	var dto AccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Type = normalizeType(dto.Type)
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "Account name is required")
		return
	}
	if !dto.Type.Valid() {
		rest.WriteError(w, http.StatusBadRequest, unknownTypeMessage(dto.Type))
		return
	}

	created, err := h.service.Create(r.Context(), DTOToAccount(dto))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, AccountToDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	log.Debugf("Updating account %d", id)

	var dto UpdateAccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		if trimmed == "" {
			rest.WriteError(w, http.StatusBadRequest, "Account name is required")
			return
		}
		dto.Name = &trimmed
	}
	if dto.Type != nil {
		normalized := normalizeType(*dto.Type)
		if !normalized.Valid() {
			rest.WriteError(w, http.StatusBadRequest, unknownTypeMessage(*dto.Type))
			return
		}
		dto.Type = &normalized
	}

	updated, err := h.service.Update(r.Context(), id, Patch{Name: dto.Name, Type: dto.Type, Balance: dto.Balance})
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, AccountToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	log.Debugf("Deleting account %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing account overview")
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, OverviewDTO{
		TotalBalance:        overview.TotalBalance,
		DisplayTotalBalance: money.FormatCurrency(overview.TotalBalance),
		AccountCount:        overview.AccountCount,
	})
}

func normalizeType(t AccountType) AccountType {
	return AccountType(strings.ToLower(strings.TrimSpace(string(t))))
}

func unknownTypeMessage(t AccountType) string {
	return fmt.Sprintf("Unknown account type %q", t)
}

func AccountToDTO(a Account) AccountDTO {
	return AccountDTO{
		Id:             a.Id,
		Name:           a.Name,
		Type:           a.Type,
		Balance:        a.Balance,
		DisplayBalance: money.FormatCurrency(a.Balance),
	}
}

func DTOToAccount(dto AccountDTO) Account {
	return Account{
		Id:      dto.Id,
		Name:    dto.Name,
		Type:    normalizeType(dto.Type),
		Balance: dto.Balance,
	}
}
