package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playforge/quiz-duel/internal/engine"
	"github.com/playforge/quiz-duel/internal/question"
	"github.com/playforge/quiz-duel/pkg/http/ws"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	bank, err := question.NewBank(question.DefaultPack())
	require.NoError(t, err)
	eng := engine.New(bank, engine.Config{}, nil, zerolog.Nop())
	hub := ws.NewSeatHub(zerolog.Nop())
	// Long turn duration so the countdown never expires mid-test.
	handler := NewHandler(eng, hub, time.Minute, zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/duel", handler.HandleWebSocket)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func dialSeat(t *testing.T, server *httptest.Server, seat string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws/duel?seat=" + seat
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages, skipping unrelated types (turn ticks, interleaved
// state updates), until one of msgType arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for i := 0; i < 50; i++ {
		require.NoError(t, conn.SetReadDeadline(deadline))
		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg.Payload
		}
	}
	t.Fatalf("did not receive %s message", msgType)
	return nil
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ws.NewMessage(msgType, payload)))
}

func TestFullRoundOverWebSocket(t *testing.T) {
	server := newTestServer(t)

	seat1 := dialSeat(t, server, "1")
	seat2 := dialSeat(t, server, "2")

	var state ws.StateUpdatePayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	assert.Equal(t, "player1_turn", state.TurnState)
	assert.Equal(t, 1, state.CurrentRound)
	assert.Equal(t, "What is 7 x 8?", state.Question.Text)

	// Player 1 answers correctly but slowly.
	send(t, seat1, ws.TypeSubmitAnswer, ws.SubmitAnswerPayload{Answer: "56", ElapsedMs: 5000})

	require.NoError(t, json.Unmarshal(readUntil(t, seat2, ws.TypeStateUpdate), &state))
	// Seat 2 may have read the initial state first; wait for the handover.
	for state.TurnState != "waiting_for_player2" {
		require.NoError(t, json.Unmarshal(readUntil(t, seat2, ws.TypeStateUpdate), &state))
	}

	// Player 2's surface activates, then answers correctly and faster.
	send(t, seat2, ws.TypeBeginTurn, nil)
	send(t, seat2, ws.TypeSubmitAnswer, ws.SubmitAnswerPayload{Answer: "56", ElapsedMs: 3000})

	var result ws.RoundResultPayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat2, ws.TypeRoundResult), &result))
	assert.Equal(t, 1, result.Round)
	assert.Equal(t, 2, result.Winner, "faster correct answer wins the round")
	assert.Equal(t, "56", result.CorrectAnswer)
	assert.Equal(t, int64(5000), result.Player1Ms)
	assert.Equal(t, int64(3000), result.Player2Ms)

	// Both surfaces see the next round.
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeRoundResult), &result))
	assert.Equal(t, 2, result.Winner)
}

func TestOutOfTurnSubmissionGetsError(t *testing.T) {
	server := newTestServer(t)

	seat2 := dialSeat(t, server, "2")
	readUntil(t, seat2, ws.TypeStateUpdate)

	// Player 2 cannot answer before player 1.
	send(t, seat2, ws.TypeSubmitAnswer, ws.SubmitAnswerPayload{Answer: "56", ElapsedMs: 1000})

	var errPayload ws.ErrorPayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat2, ws.TypeError), &errPayload))
	assert.Equal(t, "invalid_transition", errPayload.Code)
}

func TestSeatConflictRejected(t *testing.T) {
	server := newTestServer(t)

	seat1 := dialSeat(t, server, "1")
	readUntil(t, seat1, ws.TypeStateUpdate)

	intruder := dialSeat(t, server, "1")
	var errPayload ws.ErrorPayload
	require.NoError(t, json.Unmarshal(readUntil(t, intruder, ws.TypeError), &errPayload))
	assert.Equal(t, "seat_taken", errPayload.Code)
}

func TestInvalidSeatRejectedBeforeUpgrade(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws/duel?seat=9")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLifelineAndHint(t *testing.T) {
	server := newTestServer(t)

	seat1 := dialSeat(t, server, "1")
	readUntil(t, seat1, ws.TypeStateUpdate)

	send(t, seat1, ws.TypeUseFiftyFifty, nil)
	var lifeline ws.LifelinePayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeLifeline), &lifeline))
	require.Len(t, lifeline.Options, 2)
	assert.Contains(t, lifeline.Options, "56")

	send(t, seat1, ws.TypeRequestHint, nil)
	var hint ws.HintPayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeHint), &hint))
	assert.NotEmpty(t, hint.Hint)
}

func TestResetBroadcastsFreshState(t *testing.T) {
	server := newTestServer(t)

	seat1 := dialSeat(t, server, "1")
	var state ws.StateUpdatePayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))

	send(t, seat1, ws.TypeSubmitAnswer, ws.SubmitAnswerPayload{Answer: "56", ElapsedMs: 1000})
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	for state.TurnState != "waiting_for_player2" {
		require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	}

	send(t, seat1, ws.TypeResetMatch, nil)
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	for state.TurnState != "player1_turn" {
		require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	}
	assert.Equal(t, 1, state.CurrentRound)
	assert.Zero(t, state.Player1Score)
}

func TestCountdownExpirySubmitsTimeout(t *testing.T) {
	bank, err := question.NewBank(question.DefaultPack())
	require.NoError(t, err)
	eng := engine.New(bank, engine.Config{}, nil, zerolog.Nop())
	hub := ws.NewSeatHub(zerolog.Nop())
	// 1s countdown so expiry fires within the test.
	handler := NewHandler(eng, hub, time.Second, zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/duel", handler.HandleWebSocket)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	seat1 := dialSeat(t, server, "1")
	readUntil(t, seat1, ws.TypeStateUpdate)

	// No answer from seat 1; expiry submits the empty answer for it.
	var state ws.StateUpdatePayload
	require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	for state.TurnState != "waiting_for_player2" {
		require.NoError(t, json.Unmarshal(readUntil(t, seat1, ws.TypeStateUpdate), &state))
	}

	snap := eng.Snapshot()
	require.Len(t, snap.RoundHistory, 1)
	assert.Equal(t, "", snap.RoundHistory[0].Player1Answer)
	assert.Equal(t, time.Second, snap.RoundHistory[0].Player1Time)
}
