package funnel

import (
	"fmt"
	"sync"
)

// Player é o handle mínimo que o registro precisa pra revogar playback.
type Player interface {
	Pause()
}

// Registry garante o invariante de no máximo um player tocando: o token
// de "tocando agora" tem dono único e qualquer Start revoga o anterior
// de forma síncrona antes de conceder o novo.
type Registry struct {
	mu      sync.Mutex
	players map[string]Player
	playing string
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]Player)}
}

func (r *Registry) Register(id string, p Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[id] = p
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
	if r.playing == id {
		r.playing = ""
	}
}

// Start pausa o dono atual do token, concede pro id e tenta dar play.
// Se o play falhar o player volta pro estado de poster (sem dono).
func (r *Registry) Start(id string, play func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return fmt.Errorf("player %s não registrado", id)
	}

	if r.playing != "" && r.playing != id {
		if prev, ok := r.players[r.playing]; ok {
			prev.Pause()
		}
	}

	r.playing = id

	if err := play(); err != nil {
		r.playing = ""
		return err
	}

	return nil
}

// Stop registra um pause/ended vindo do próprio player.
func (r *Registry) Stop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.playing == id {
		r.playing = ""
	}
}

// Playing devolve o dono atual do token, ou "" se ninguém toca.
func (r *Registry) Playing() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}
