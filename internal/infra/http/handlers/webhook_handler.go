package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zerovicios/funnel-api/internal/infra/http/middleware"
	"github.com/zerovicios/funnel-api/internal/usecase"
)

type WebhookProcessor interface {
	Execute(ctx context.Context, input usecase.ProcessWebhookInput) (*usecase.ProcessWebhookOutput, error)
}

type WebhookHandler struct {
	UC WebhookProcessor
}

func NewWebhookHandler(uc WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{UC: uc}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// O gateway manda o id às vezes como string, às vezes como número.
	var event struct {
		ID     any    `json:"id"`
		Status string `json:"status"`
	}

	// UseNumber preserva ids numéricos grandes; como float64 eles
	// arredondariam e nunca bateriam com o id salvo na geração.
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bad JSON"})
		return
	}

	output, err := h.UC.Execute(r.Context(), usecase.ProcessWebhookInput{
		ID:     stringifyID(event.ID),
		Status: event.Status,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if !output.Found {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Transação desconhecida"})
		return
	}

	if output.Paid {
		middleware.RecordPaymentPaid()
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func stringifyID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
