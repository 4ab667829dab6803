package funnel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultCountdownStart é o 14:59 da barra de oferta.
const DefaultCountdownStart = 14*time.Minute + 59*time.Second

// Countdown é puramente cosmético: decrementa um segundo por tick a
// partir de um valor fixo e trava no zero. Não existe deadline real.
type Countdown struct {
	mu        sync.Mutex
	remaining time.Duration
}

func NewCountdown(start time.Duration) *Countdown {
	if start < 0 {
		start = 0
	}
	return &Countdown{remaining: start}
}

func (c *Countdown) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining >= time.Second {
		c.remaining -= time.Second
	} else {
		c.remaining = 0
	}
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// String formata MM:SS pro display.
func (c *Countdown) String() string {
	rem := c.Remaining()
	m := int(rem.Minutes())
	s := int(rem.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Run toca o relógio uma vez por segundo até o contexto encerrar,
// chamando onTick com o display atualizado.
func (c *Countdown) Run(ctx context.Context, onTick func(display string)) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
			if onTick != nil {
				onTick(c.String())
			}
		}
	}
}
