package api

// QueryResponse represents the standard query response format
type QueryResponse struct {
	Data any `json:"data"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageView is the public form of a relayed message.
type MessageView struct {
	MessageID      string `json:"message_id"`
	SourceSelector uint64 `json:"source_selector"`
	DestSelector   uint64 `json:"dest_selector"`
	Sequence       uint64 `json:"sequence"`
	Opcode         string `json:"opcode"`
	RaffleID       uint64 `json:"raffle_id"`
	Status         string `json:"status"`
	Attempts       int    `json:"attempts"`
	DestHeight     int64  `json:"dest_height,omitempty"`
	Error          string `json:"error,omitempty"`
}

// FulfillmentView is the public form of a randomness fulfillment.
type FulfillmentView struct {
	RequestID   uint64 `json:"request_id"`
	Consumer    string `json:"consumer"`
	RandomWord  string `json:"random_word"`
	BlockHeight int64  `json:"block_height"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// TxResponse is the outcome of a submitted transaction.
type TxResponse struct {
	Height int64       `json:"height"`
	Time   int64       `json:"time"`
	Events []EventView `json:"events"`
}

// EventView is one event emitted by a transaction.
type EventView struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}
