package ws

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Seat numbers for the two player surfaces.
const (
	Seat1 = 1
	Seat2 = 2
)

// SeatHub tracks the two player-surface connections. Each seat holds at most
// one connection; claiming an occupied seat fails.
type SeatHub struct {
	mu     sync.RWMutex
	seats  map[int]*Connection
	logger zerolog.Logger
}

// NewSeatHub creates an empty hub.
func NewSeatHub(logger zerolog.Logger) *SeatHub {
	return &SeatHub{
		seats:  make(map[int]*Connection),
		logger: logger,
	}
}

// Claim assigns a connection to a seat. Returns ErrSeatTaken if the seat is
// already occupied by a live connection.
func (h *SeatHub) Claim(seat int, conn *Connection) error {
	if seat != Seat1 && seat != Seat2 {
		return fmt.Errorf("seat %d: %w", seat, ErrInvalidSeat)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.seats[seat]; ok && !existing.Closed() {
		return ErrSeatTaken
	}
	h.seats[seat] = conn
	h.logger.Info().Int("seat", seat).Str("conn_id", conn.ID.String()).Msg("seat claimed")
	return nil
}

// Release frees a seat, but only if it is still held by conn (a reconnect may
// have replaced it).
func (h *SeatHub) Release(seat int, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.seats[seat] == conn {
		delete(h.seats, seat)
		h.logger.Info().Int("seat", seat).Str("conn_id", conn.ID.String()).Msg("seat released")
	}
}

// Has reports whether a live connection holds the seat.
func (h *SeatHub) Has(seat int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.seats[seat]
	return ok && !conn.Closed()
}

// SendToSeat delivers a message to one seat. Missing seats are not an error;
// a surface may simply not be connected yet.
func (h *SeatHub) SendToSeat(seat int, msg Message) error {
	h.mu.RLock()
	conn, ok := h.seats[seat]
	h.mu.RUnlock()

	if !ok {
		return nil
	}
	return conn.Send(msg)
}

// Broadcast sends a message to both seats.
func (h *SeatHub) Broadcast(msg Message) {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.seats))
	for _, conn := range h.seats {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Send(msg); err != nil {
			h.logger.Warn().Err(err).Str("conn_id", conn.ID.String()).Msg("broadcast send failed")
		}
	}
}

// Connection wraps a WebSocket connection with a buffered send queue.
type Connection struct {
	ID     uuid.UUID
	conn   *websocket.Conn
	sendCh chan Message
	mu     sync.Mutex
	closed bool
	logger zerolog.Logger
}

// NewConnection wraps an upgraded WebSocket connection.
func NewConnection(conn *websocket.Conn, logger zerolog.Logger) *Connection {
	return &Connection{
		ID:     uuid.New(),
		conn:   conn,
		sendCh: make(chan Message, 64),
		logger: logger,
	}
}

// Send queues a message for delivery.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close shuts down the connection and its send queue.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
	c.conn.Close()
}

// Closed reports whether the connection has been shut down.
func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// WritePump drains the send queue onto the wire. Run in its own goroutine.
func (c *Connection) WritePump() {
	defer c.conn.Close()

	for msg := range c.sendCh {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Warn().Err(err).Msg("write error")
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump reads messages and passes them to handler until the connection
// drops. Pongs extend the read deadline.
func (c *Connection) ReadPump(handler func(Message) error) {
	defer c.conn.Close()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("read error")
			}
			return
		}
		if err := handler(msg); err != nil {
			c.logger.Warn().Err(err).Str("type", msg.Type).Msg("message handler error")
		}
	}
}

var (
	ErrInvalidSeat      = &Error{Code: "invalid_seat", Message: "Seat must be 1 or 2"}
	ErrSeatTaken        = &Error{Code: "seat_taken", Message: "Seat is already occupied"}
	ErrConnectionClosed = &Error{Code: "connection_closed", Message: "Connection is closed"}
	ErrSendQueueFull    = &Error{Code: "send_queue_full", Message: "Send queue is full"}
)

// Error is a protocol-level error with a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
