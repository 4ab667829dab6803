package handlers

import (
	"net/http"

	"github.com/zerovicios/funnel-api/internal/entity"
)

type PlansHandler struct{}

func NewPlansHandler() *PlansHandler {
	return &PlansHandler{}
}

// Handle lista o catálogo fixo. Os hashes de produto ficam de fora do JSON.
func (h *PlansHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plans": entity.Plans})
}
