package gateway

import (
	"errors"
	"time"

	"github.com/playforge/quiz-duel/internal/engine"
	"github.com/playforge/quiz-duel/pkg/http/ws"
)

// clockKey identifies one countdown: the same seat acting in the same round
// keeps its running clock across reconciliations.
type clockKey struct {
	round int
	seat  int
}

type turnClock struct {
	seat int
	stop chan struct{}
}

// syncClock reconciles the countdown with the engine state: at most one clock
// runs, for the seat the engine currently expects an answer from, and only
// while that seat's surface is connected. WaitingForPlayer2 runs no clock;
// player 2's countdown starts on begin_turn.
func (h *Handler) syncClock() {
	snap := h.engine.Snapshot()

	seat := 0
	switch snap.TurnState {
	case engine.Player1Turn:
		seat = ws.Seat1
	case engine.Player2Turn:
		seat = ws.Seat2
	}
	if seat != 0 && !h.hub.Has(seat) {
		seat = 0
	}
	key := clockKey{round: snap.CurrentRound, seat: seat}

	h.mu.Lock()
	defer h.mu.Unlock()

	if seat != 0 && h.clock != nil && h.clockKey == key {
		return
	}
	if h.clock != nil {
		close(h.clock.stop)
		h.clock = nil
	}
	h.clockKey = key
	if seat == 0 {
		return
	}

	clock := &turnClock{seat: seat, stop: make(chan struct{})}
	h.clock = clock
	go h.runClock(clock)
}

func (h *Handler) runClock(c *turnClock) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	remaining := h.turnDuration
	h.broadcastTick(c.seat, remaining)

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			remaining -= time.Second
			if remaining <= 0 {
				h.expire(c.seat)
				return
			}
			h.broadcastTick(c.seat, remaining)
		}
	}
}

func (h *Handler) broadcastTick(seat int, remaining time.Duration) {
	h.hub.Broadcast(ws.NewMessage(ws.TypeTurnTick, ws.TurnTickPayload{
		Seat:             seat,
		RemainingSeconds: int(remaining.Seconds()),
	}))
}

// expire submits the timeout as an ordinary losing answer: empty string, full
// turn duration.
func (h *Handler) expire(seat int) {
	var err error
	switch seat {
	case ws.Seat1:
		err = h.engine.SubmitPlayer1Answer("", h.turnDuration)
	case ws.Seat2:
		err = h.engine.SubmitPlayer2Answer("", h.turnDuration)
	}
	if err != nil {
		// A real submission won the race against the countdown.
		if !errors.Is(err, engine.ErrInvalidTransition) {
			h.logger.Warn().Err(err).Int("seat", seat).Msg("timeout submission failed")
		}
		return
	}

	h.logger.Info().Int("seat", seat).Msg("turn timed out")
	h.afterTransition(seat == ws.Seat2)
}
