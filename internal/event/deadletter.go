package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/logger"
)

// DeadLetterSchemaVersion versions the dead-letter line format.
// Bump it when DeadLetterEntry changes so replay tooling can migrate.
const DeadLetterSchemaVersion = "1.0"

// DeadLetterWriter appends events that exhausted their retries to a
// JSONL file. Reward and streak events landing here mean a user's
// ledger view may lag, so the write is logged loudly.
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry is one failed event with its delivery history.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends one entry. Serialized under the mutex so concurrent
// publishers never interleave lines.
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	log := logger.FromContext(context.Background())
	log.Warn("event_dead_lettered",
		"event_type", event.Type,
		"attempts", attempts,
		"error", lastError.Error())

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
		Attempts:      attempts,
	}

	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	data, _ := json.Marshal(entry)
	_, err := dlw.file.Write(append(data, '\n'))
	return err
}

func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}
