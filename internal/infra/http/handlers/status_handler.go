package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zerovicios/funnel-api/internal/entity"
)

// StatusHandler é o alvo de polling do checkout: com ele o estado pix
// consegue chegar em success quando o webhook confirmar o pagamento.
type StatusHandler struct {
	Repo entity.TransactionRepositoryInterface
}

func NewStatusHandler(repo entity.TransactionRepositoryInterface) *StatusHandler {
	return &StatusHandler{Repo: repo}
}

type statusResponse struct {
	ID     string     `json:"id"`
	Status string     `json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

func (h *StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if h.Repo == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Transação não encontrada"})
		return
	}

	tx, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao buscar transação"})
		return
	}
	if tx == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Transação não encontrada"})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		ID:     tx.ID,
		Status: tx.Status,
		PaidAt: tx.PaidAt,
	})
}
