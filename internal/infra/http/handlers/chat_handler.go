package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/zerovicios/funnel-api/internal/infra/integration/gemini"
)

// Fallbacks quando a API de linguagem não responde; o chat nunca devolve 5xx.
const (
	chatFallback       = "Estou tendo dificuldades para conectar agora. Tente novamente em instantes."
	motivationFallback = "Sua jornada é importante. Continue firme."
)

type ChatService interface {
	SendMessage(ctx context.Context, session *gemini.Session, message string) (string, error)
	GenerateMotivation(ctx context.Context) (string, error)
}

// Conversas paradas há mais que isso são descartadas pelo sweep.
const sessionTTL = 30 * time.Minute

// ChatHandler guarda uma sessão explícita por conversa, chaveada pelo
// session_id devolvido ao cliente. Nada de sessão global de processo.
type ChatHandler struct {
	Service ChatService

	mu       sync.Mutex
	sessions map[string]*chatSession
}

type chatSession struct {
	session  *gemini.Session
	lastSeen time.Time
}

func NewChatHandler(service ChatService) *ChatHandler {
	h := &ChatHandler{
		Service:  service,
		sessions: make(map[string]*chatSession),
	}

	go h.cleanup()
	return h
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (h *ChatHandler) session(id string) *gemini.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()

	if id != "" {
		if cs, ok := h.sessions[id]; ok {
			cs.lastSeen = now
			return cs.session
		}
	}

	s := gemini.NewSession()
	h.sessions[s.ID] = &chatSession{session: s, lastSeen: now}
	return s
}

func (h *ChatHandler) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		h.removeIdleSessions(time.Now())
	}
}

func (h *ChatHandler) removeIdleSessions(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, cs := range h.sessions {
		if now.Sub(cs.lastSeen) > sessionTTL {
			delete(h.sessions, id)
		}
	}
}

func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}

	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message é obrigatório"})
		return
	}

	session := h.session(req.SessionID)

	reply, err := h.Service.SendMessage(r.Context(), session, req.Message)
	if err != nil {
		log.Printf("⚠️ Erro no chat (sessão %s): %v", session.ID, err)
		reply = chatFallback
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: session.ID,
		Reply:     reply,
	})
}

func (h *ChatHandler) HandleMotivation(w http.ResponseWriter, r *http.Request) {
	message, err := h.Service.GenerateMotivation(r.Context())
	if err != nil {
		log.Printf("⚠️ Erro na motivação diária: %v", err)
		message = motivationFallback
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
