package outbox

import "time"

// Status lifecycle of an outbox row. Rows are written pending inside the
// owning module and flipped to published by the worker relay.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

// Message is an outbox row handed to the worker relay.
type Message struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}
