// Package engine implements the match state machine for a two-player,
// turn-based quiz duel: player 1 answers the current question, then player 2
// answers the same question, and the round winner is decided by correctness
// and speed. The first player to reach the round-win target takes the match.
//
// The engine never measures time itself. The presentation layer owns the
// per-turn countdown and reports each player's elapsed time on submission;
// a timeout is submitted as an empty answer with the full turn duration.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/playforge/quiz-duel/internal/question"
)

// Gameplay defaults. Overridable through Config / environment, never inlined
// at call sites.
const (
	DefaultRoundWinTarget = 3
	DefaultTurnDuration   = 30 * time.Second
)

// Config holds the gameplay constants the engine consumes.
type Config struct {
	// RoundWinTarget is the number of round wins that ends the match.
	RoundWinTarget int
}

// Engine owns all match state behind a single mutex. Both player surfaces
// share one Engine instance; every mutation is serialized and either applies
// fully or rejects with no partial effect.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	bank    *question.Bank
	metrics *Metrics
	logger  zerolog.Logger

	currentQuestion  question.Question
	player1Score     int
	player2Score     int
	player1RoundWins int
	player2RoundWins int
	currentRound     int
	turnState        TurnState
	player1Time      time.Duration
	player2Time      time.Duration
	roundHistory     []RoundResult
}

// New creates an engine on the given bank, starting at round 1 with the
// bank's first question and player 1 to act. metrics may be nil.
func New(bank *question.Bank, cfg Config, metrics *Metrics, logger zerolog.Logger) *Engine {
	if cfg.RoundWinTarget <= 0 {
		cfg.RoundWinTarget = DefaultRoundWinTarget
	}
	e := &Engine{
		cfg:     cfg,
		bank:    bank,
		metrics: metrics,
		logger:  logger,
	}
	e.reset()
	return e
}

// SubmitPlayer1Answer records player 1's answer and elapsed time for the
// current round, appends the provisional round result, and hands the turn
// over to player 2. Valid only in Player1Turn.
func (e *Engine) SubmitPlayer1Answer(answer string, elapsed time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.turnState != Player1Turn {
		return fmt.Errorf("submit player 1 answer in %s: %w", e.turnState, ErrInvalidTransition)
	}
	if elapsed < 0 {
		elapsed = 0
	}

	e.player1Time = elapsed
	e.roundHistory = append(e.roundHistory, RoundResult{
		Round:         e.currentRound,
		Question:      e.currentQuestion,
		Player1Answer: answer,
		Player1Time:   elapsed,
	})
	e.turnState = WaitingForPlayer2

	e.logger.Debug().
		Int("round", e.currentRound).
		Dur("elapsed", elapsed).
		Msg("player 1 answer recorded")
	return nil
}

// BeginPlayer2Turn moves WaitingForPlayer2 to Player2Turn. Called by the
// presentation layer when player 2's surface becomes active; the countdown
// for player 2 starts here, not at player 1's submission.
func (e *Engine) BeginPlayer2Turn() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.turnState != WaitingForPlayer2 {
		return fmt.Errorf("begin player 2 turn in %s: %w", e.turnState, ErrInvalidTransition)
	}
	e.turnState = Player2Turn
	return nil
}

// SubmitPlayer2Answer records player 2's answer, resolves the round winner,
// updates score and round-win counters, and either advances to the next round
// or completes the match. The whole sequence is atomic under the engine lock.
// Valid in Player2Turn, or in WaitingForPlayer2 when the caller submits
// without an explicit BeginPlayer2Turn (e.g. a timeout fired while waiting).
func (e *Engine) SubmitPlayer2Answer(answer string, elapsed time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.turnState != Player2Turn && e.turnState != WaitingForPlayer2 {
		return fmt.Errorf("submit player 2 answer in %s: %w", e.turnState, ErrInvalidTransition)
	}
	last := len(e.roundHistory) - 1
	if last < 0 || e.roundHistory[last].Round != e.currentRound {
		return fmt.Errorf("no pending round result for round %d: %w", e.currentRound, ErrInvalidTransition)
	}
	if elapsed < 0 {
		elapsed = 0
	}

	e.player2Time = elapsed

	pending := e.roundHistory[last]
	p1Correct := pending.Player1Answer == e.currentQuestion.CorrectAnswer
	p2Correct := answer == e.currentQuestion.CorrectAnswer

	var winner *Player
	switch {
	case p1Correct && p2Correct:
		// Faster answer wins; equal times go to player 2.
		w := Player2
		if pending.Player1Time < elapsed {
			w = Player1
		}
		winner = &w
	case p1Correct:
		w := Player1
		winner = &w
	case p2Correct:
		w := Player2
		winner = &w
	}

	pending.Player2Answer = answer
	pending.Player2Time = elapsed
	pending.Winner = winner
	e.roundHistory[last] = pending

	if winner != nil {
		switch *winner {
		case Player1:
			e.player1Score++
			e.player1RoundWins++
		case Player2:
			e.player2Score++
			e.player2RoundWins++
		}
	}
	e.metrics.roundResolved(winner)

	event := e.logger.Info().
		Int("round", e.currentRound).
		Bool("p1_correct", p1Correct).
		Bool("p2_correct", p2Correct)
	if winner != nil {
		event = event.Stringer("winner", *winner)
	}

	if e.player1RoundWins >= e.cfg.RoundWinTarget || e.player2RoundWins >= e.cfg.RoundWinTarget {
		e.turnState = MatchComplete
		matchWinner := Player1
		if e.player2RoundWins >= e.cfg.RoundWinTarget {
			matchWinner = Player2
		}
		e.metrics.matchCompleted(matchWinner)
		event.Stringer("match_winner", matchWinner).Msg("round resolved, match complete")
		return nil
	}

	e.currentRound++
	e.currentQuestion = e.bank.ForRound(e.currentRound)
	e.turnState = Player1Turn
	event.Int("next_round", e.currentRound).Msg("round resolved")
	return nil
}

// Reset restores the construction-time state: round 1, zero counters, empty
// history, first bank question, player 1 to act. Idempotent and valid in any
// state, including MatchComplete (rematch).
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
	e.metrics.matchReset()
	e.logger.Info().Msg("match reset")
}

func (e *Engine) reset() {
	e.currentQuestion = e.bank.ForRound(1)
	e.player1Score = 0
	e.player2Score = 0
	e.player1RoundWins = 0
	e.player2RoundWins = 0
	e.currentRound = 1
	e.turnState = Player1Turn
	e.player1Time = 0
	e.player2Time = 0
	e.roundHistory = nil
}

// Snapshot returns a read-only copy of the observable match state. The round
// history is deep-copied so callers can hold it across later transitions.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	history := append([]RoundResult(nil), e.roundHistory...)
	for i := range history {
		if w := history[i].Winner; w != nil {
			cp := *w
			history[i].Winner = &cp
		}
	}

	return Snapshot{
		CurrentQuestion:  e.currentQuestion,
		Player1Score:     e.player1Score,
		Player2Score:     e.player2Score,
		Player1RoundWins: e.player1RoundWins,
		Player2RoundWins: e.player2RoundWins,
		CurrentRound:     e.currentRound,
		TurnState:        e.turnState,
		Player1Time:      e.player1Time,
		Player2Time:      e.player2Time,
		RoundHistory:     history,
	}
}
