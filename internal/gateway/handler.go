// Package gateway is the presentation-side collaborator of the match engine:
// it serves the two local player surfaces over WebSocket, owns the per-turn
// countdown, and translates surface events into engine submissions. The
// engine itself never measures time; on expiry the gateway submits the empty
// answer with the full turn duration, exactly like a slow player.
package gateway

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/playforge/quiz-duel/internal/assist"
	"github.com/playforge/quiz-duel/internal/engine"
	"github.com/playforge/quiz-duel/internal/server"
	httperrors "github.com/playforge/quiz-duel/pkg/http/errors"
	"github.com/playforge/quiz-duel/pkg/http/ws"
)

// Handler routes duel WebSocket traffic between the two seats and the shared
// engine instance.
type Handler struct {
	engine       *engine.Engine
	hub          *ws.SeatHub
	turnDuration time.Duration
	logger       zerolog.Logger

	mu       sync.Mutex
	clock    *turnClock
	clockKey clockKey
	rnd      *rand.Rand
}

// NewHandler creates the gateway. A non-positive turnDuration falls back to
// the engine default.
func NewHandler(eng *engine.Engine, hub *ws.SeatHub, turnDuration time.Duration, logger zerolog.Logger) *Handler {
	if turnDuration <= 0 {
		turnDuration = engine.DefaultTurnDuration
	}
	return &Handler{
		engine:       eng,
		hub:          hub,
		turnDuration: turnDuration,
		logger:       logger,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HandleWebSocket upgrades /ws/duel?seat=1|2 and binds the connection to its
// seat for the lifetime of the socket.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if err != nil || (seat != ws.Seat1 && seat != ws.Seat2) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSeat, "seat query parameter must be 1 or 2")
		return
	}

	raw, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := ws.NewConnection(raw, h.logger)
	go conn.WritePump()

	if err := h.hub.Claim(seat, conn); err != nil {
		conn.Send(ws.NewMessage(ws.TypeError, ws.ErrorPayload{
			Code:    httperrors.ErrCodeSeatTaken,
			Message: err.Error(),
		}))
		conn.Close()
		return
	}

	// The new surface gets the current state immediately; the countdown only
	// runs while the acting seat's surface is present.
	h.hub.SendToSeat(seat, h.stateMessage())
	h.syncClock()

	conn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(seat, msg)
	})

	h.hub.Release(seat, conn)
	conn.Close()
	h.syncClock()
}

func (h *Handler) handleMessage(seat int, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeSubmitAnswer:
		return h.handleSubmitAnswer(seat, msg.Payload)
	case ws.TypeBeginTurn:
		return h.handleBeginTurn(seat)
	case ws.TypeUseFiftyFifty:
		return h.handleFiftyFifty(seat)
	case ws.TypeRequestHint:
		return h.handleRequestHint(seat)
	case ws.TypeResetMatch:
		return h.handleResetMatch(seat)
	default:
		return h.sendError(seat, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

func (h *Handler) handleSubmitAnswer(seat int, payload json.RawMessage) error {
	var req ws.SubmitAnswerPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return h.sendError(seat, httperrors.ErrCodeInvalidPayload, "invalid submit_answer payload")
	}

	elapsed := time.Duration(req.ElapsedMs) * time.Millisecond
	var err error
	switch seat {
	case ws.Seat1:
		err = h.engine.SubmitPlayer1Answer(req.Answer, elapsed)
	case ws.Seat2:
		err = h.engine.SubmitPlayer2Answer(req.Answer, elapsed)
	}
	if err != nil {
		return h.sendError(seat, httperrors.ErrCodeInvalidTransition, err.Error())
	}

	h.afterTransition(seat == ws.Seat2)
	return nil
}

func (h *Handler) handleBeginTurn(seat int) error {
	if seat != ws.Seat2 {
		return h.sendError(seat, httperrors.ErrCodeInvalidTransition, "only seat 2 begins its turn explicitly")
	}
	if err := h.engine.BeginPlayer2Turn(); err != nil {
		return h.sendError(seat, httperrors.ErrCodeInvalidTransition, err.Error())
	}
	h.afterTransition(false)
	return nil
}

func (h *Handler) handleFiftyFifty(seat int) error {
	q := h.engine.Snapshot().CurrentQuestion

	h.mu.Lock()
	options := assist.FiftyFifty(q.Options, q.CorrectAnswer, h.rnd)
	h.mu.Unlock()

	return h.hub.SendToSeat(seat, ws.NewMessage(ws.TypeLifeline, ws.LifelinePayload{Options: options}))
}

func (h *Handler) handleRequestHint(seat int) error {
	q := h.engine.Snapshot().CurrentQuestion
	return h.hub.SendToSeat(seat, ws.NewMessage(ws.TypeHint, ws.HintPayload{Hint: assist.HintFor(q.Text)}))
}

func (h *Handler) handleResetMatch(seat int) error {
	h.engine.Reset()
	h.logger.Info().Int("seat", seat).Msg("match reset requested")
	h.afterTransition(false)
	return nil
}

// afterTransition broadcasts the new state after any successful engine
// mutation. resolved marks transitions that finalized a round (player 2
// submissions), which additionally emit the round result and, on the final
// round, the match outcome.
func (h *Handler) afterTransition(resolved bool) {
	snap := h.engine.Snapshot()
	h.hub.Broadcast(stateMessageFor(snap, h.turnDuration))

	if resolved && len(snap.RoundHistory) > 0 {
		last := snap.RoundHistory[len(snap.RoundHistory)-1]
		winner := 0
		if last.Winner != nil {
			winner = int(*last.Winner)
		}
		h.hub.Broadcast(ws.NewMessage(ws.TypeRoundResult, ws.RoundResultPayload{
			Round:         last.Round,
			Winner:        winner,
			CorrectAnswer: last.Question.CorrectAnswer,
			Player1Answer: last.Player1Answer,
			Player2Answer: last.Player2Answer,
			Player1Ms:     last.Player1Time.Milliseconds(),
			Player2Ms:     last.Player2Time.Milliseconds(),
		}))

		if w := snap.Winner(); w != nil {
			h.hub.Broadcast(ws.NewMessage(ws.TypeMatchComplete, ws.MatchCompletePayload{
				Winner:           int(*w),
				Player1RoundWins: snap.Player1RoundWins,
				Player2RoundWins: snap.Player2RoundWins,
			}))
		}
	}

	h.syncClock()
}

func (h *Handler) stateMessage() ws.Message {
	return stateMessageFor(h.engine.Snapshot(), h.turnDuration)
}

func stateMessageFor(snap engine.Snapshot, turnDuration time.Duration) ws.Message {
	return ws.NewMessage(ws.TypeStateUpdate, ws.StateUpdatePayload{
		TurnState:    snap.TurnState.String(),
		CurrentRound: snap.CurrentRound,
		Question: ws.QuestionView{
			Text:    snap.CurrentQuestion.Text,
			Options: snap.CurrentQuestion.Options,
		},
		Player1Score:     snap.Player1Score,
		Player2Score:     snap.Player2Score,
		Player1RoundWins: snap.Player1RoundWins,
		Player2RoundWins: snap.Player2RoundWins,
		TurnSeconds:      int(turnDuration.Seconds()),
	})
}

func (h *Handler) sendError(seat int, code, message string) error {
	return h.hub.SendToSeat(seat, ws.NewMessage(ws.TypeError, ws.ErrorPayload{
		Code:    code,
		Message: message,
	}))
}
