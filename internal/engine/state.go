package engine

import (
	"time"

	"github.com/playforge/quiz-duel/internal/question"
)

// Player identifies one of the two duel participants.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "unknown"
	}
}

// TurnState is the closed set of states the match moves through.
type TurnState int

const (
	// Player1Turn expects player 1's answer for the current round.
	Player1Turn TurnState = iota
	// WaitingForPlayer2 holds after player 1 answered, before player 2's
	// surface becomes active. Exists purely for UI routing.
	WaitingForPlayer2
	// Player2Turn expects player 2's answer for the current round.
	Player2Turn
	// MatchComplete is terminal: a player reached the round-win target.
	MatchComplete
)

func (s TurnState) String() string {
	switch s {
	case Player1Turn:
		return "player1_turn"
	case WaitingForPlayer2:
		return "waiting_for_player2"
	case Player2Turn:
		return "player2_turn"
	case MatchComplete:
		return "match_complete"
	default:
		return "unknown"
	}
}

// RoundResult records one round of the match. It is appended provisionally
// when player 1 answers (player 2 fields zero, Winner nil) and replaced in
// place once player 2 answers.
type RoundResult struct {
	Round         int
	Question      question.Question
	Player1Answer string
	Player2Answer string
	Player1Time   time.Duration
	Player2Time   time.Duration
	Winner        *Player // nil means the round was a tie
}

// Snapshot is a read-only copy of the observable match state.
type Snapshot struct {
	CurrentQuestion  question.Question
	Player1Score     int
	Player2Score     int
	Player1RoundWins int
	Player2RoundWins int
	CurrentRound     int
	TurnState        TurnState
	Player1Time      time.Duration
	Player2Time      time.Duration
	RoundHistory     []RoundResult
}

// Winner returns the match winner, or nil while the match is in progress.
func (s Snapshot) Winner() *Player {
	if s.TurnState != MatchComplete {
		return nil
	}
	w := Player1
	if s.Player2RoundWins > s.Player1RoundWins {
		w = Player2
	}
	return &w
}
