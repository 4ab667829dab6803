package handlers

import (
	"encoding/json"
	"net/http"
)

// Todo caminho de erro do checkout devolve esse shape com success=false;
// o front nunca vê exceção crua.
type errorResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	Message     string `json:"message,omitempty"`
	Details     any    `json:"details,omitempty"`
	RawResponse string `json:"rawResponse,omitempty"`
	Debug       any    `json:"debug,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	resp.Success = false
	writeJSON(w, status, resp)
}
