package ws

import "encoding/json"

// MessageType constants for the duel WebSocket protocol.
const (
	// Client -> Server
	TypeSubmitAnswer  = "submit_answer"
	TypeBeginTurn     = "begin_turn"
	TypeUseFiftyFifty = "use_fifty_fifty"
	TypeRequestHint   = "request_hint"
	TypeResetMatch    = "reset_match"

	// Server -> Client
	TypeStateUpdate   = "state_update"
	TypeRoundResult   = "round_result"
	TypeMatchComplete = "match_complete"
	TypeTurnTick      = "turn_tick"
	TypeLifeline      = "lifeline"
	TypeHint          = "hint"
	TypeError         = "error"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage marshals payload into a typed message. Marshal errors are
// swallowed; payload types here are all plain structs.
func NewMessage(msgType string, payload interface{}) Message {
	msg := Message{Type: msgType}
	if payload != nil {
		msg.Payload, _ = json.Marshal(payload)
	}
	return msg
}

// Client messages (incoming)

type SubmitAnswerPayload struct {
	Answer    string `json:"answer"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Server messages (outgoing)

// QuestionView is the client-facing question shape. The correct answer is
// never sent to a surface.
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type StateUpdatePayload struct {
	TurnState        string       `json:"turn_state"`
	CurrentRound     int          `json:"current_round"`
	Question         QuestionView `json:"question"`
	Player1Score     int          `json:"player1_score"`
	Player2Score     int          `json:"player2_score"`
	Player1RoundWins int          `json:"player1_round_wins"`
	Player2RoundWins int          `json:"player2_round_wins"`
	TurnSeconds      int          `json:"turn_seconds"`
}

type RoundResultPayload struct {
	Round         int    `json:"round"`
	Winner        int    `json:"winner"` // 1, 2, or 0 for a tie
	CorrectAnswer string `json:"correct_answer"`
	Player1Answer string `json:"player1_answer"`
	Player2Answer string `json:"player2_answer"`
	Player1Ms     int64  `json:"player1_ms"`
	Player2Ms     int64  `json:"player2_ms"`
}

type MatchCompletePayload struct {
	Winner           int `json:"winner"`
	Player1RoundWins int `json:"player1_round_wins"`
	Player2RoundWins int `json:"player2_round_wins"`
}

type TurnTickPayload struct {
	Seat             int `json:"seat"`
	RemainingSeconds int `json:"remaining_seconds"`
}

type LifelinePayload struct {
	Options []string `json:"options"`
}

type HintPayload struct {
	Hint string `json:"hint"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
