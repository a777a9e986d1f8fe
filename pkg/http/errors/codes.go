package errors

// Stable error codes shared between HTTP responses and WebSocket error
// payloads.
const (
	ErrCodeInvalidSeat        = "invalid_seat"
	ErrCodeSeatTaken          = "seat_taken"
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeInvalidTransition  = "invalid_transition"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeInternalError      = "internal_error"
)
