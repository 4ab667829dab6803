package funnel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCountdownStartsAt1459
func TestCountdownStartsAt1459(t *testing.T) {
	c := NewCountdown(DefaultCountdownStart)
	assert.Equal(t, "14:59", c.String())
}

// TestCountdownTick
func TestCountdownTick(t *testing.T) {
	c := NewCountdown(DefaultCountdownStart)

	c.Tick()
	assert.Equal(t, "14:58", c.String())

	c.Tick()
	assert.Equal(t, 14*time.Minute+57*time.Second, c.Remaining())
}

// TestCountdownFloorsAtZero - nunca fica negativo, trava em 00:00
func TestCountdownFloorsAtZero(t *testing.T) {
	c := NewCountdown(2 * time.Second)

	c.Tick()
	c.Tick()
	assert.Equal(t, time.Duration(0), c.Remaining())

	c.Tick()
	c.Tick()
	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.Equal(t, "00:00", c.String())
}

// TestCountdownNegativeStart
func TestCountdownNegativeStart(t *testing.T) {
	c := NewCountdown(-5 * time.Second)
	assert.Equal(t, "00:00", c.String())
}

// TestCountdownMinuteRollover - 10:00 -> 09:59
func TestCountdownMinuteRollover(t *testing.T) {
	c := NewCountdown(10 * time.Minute)
	c.Tick()
	assert.Equal(t, "09:59", c.String())
}
