package gemini

import (
	"sync"

	"github.com/google/uuid"
)

// Session guarda o histórico de uma conversa. Uma sessão por conversa,
// criada explicitamente e passada a cada chamada.
type Session struct {
	ID string

	mu      sync.Mutex
	history []content
}

func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// Len devolve quantos turnos (user+model) a sessão acumulou.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}
