package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/budgetflow/budgetflow/internal/inmemory"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteServiceError maps an error returned by a service to a response.
// Missing records become 404, everything else 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, inmemory.ErrNotFound) {
		log.Debugf("resource not found: %v", err)
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Errorf("request failed: %v", err)
	WriteError(w, http.StatusInternalServerError, err.Error())
}

// PathId reads the integer path variable called name.
func PathId(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, err
	}
	return id, nil
}
