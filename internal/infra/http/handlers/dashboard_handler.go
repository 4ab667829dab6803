package handlers

import "net/http"

// DailyStat alimenta o gráfico semanal do painel de recuperação.
type DailyStat struct {
	Day      string `json:"day"`
	Cravings int    `json:"cravings"`
	Mood     int    `json:"mood"`
}

// Dados decorativos do painel; nada é persistido.
var weeklyStats = []DailyStat{
	{Day: "Seg", Cravings: 8, Mood: 4},
	{Day: "Ter", Cravings: 6, Mood: 5},
	{Day: "Qua", Cravings: 5, Mood: 6},
	{Day: "Qui", Cravings: 3, Mood: 8},
	{Day: "Sex", Cravings: 4, Mood: 7},
	{Day: "Sáb", Cravings: 2, Mood: 9},
	{Day: "Dom", Cravings: 1, Mood: 9},
}

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stats": weeklyStats})
}
