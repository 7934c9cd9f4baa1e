// Package pending holds records awaiting reviewer approval.
//
// The table is the only mutable shared state in the process. It maps the
// relay message ID to the record that message represents. Absence of a key
// means "never submitted", "already verified", or "rejected" — the table
// keeps no history to tell these apart.
package pending

import (
	"log/slog"
	"sync"

	"github.com/mbd888/warchest/internal/metrics"
	"github.com/mbd888/warchest/internal/record"
)

// Table is an in-memory map of relay message ID to pending record.
// No expiry and no capacity bound; volume is limited by reviewer throughput.
type Table struct {
	mu      sync.Mutex
	entries map[string]record.Record
	logger  *slog.Logger
}

// NewTable creates an empty table.
func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		entries: make(map[string]record.Record),
		logger:  logger,
	}
}

// Put registers a record under its relay message ID. A duplicate insert is a
// logic error (relay message IDs are unique); it is logged and the newer
// record wins.
func (t *Table) Put(relayMessageID string, rec record.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[relayMessageID]; exists {
		t.logger.Error("duplicate pending entry",
			"relay_message_id", relayMessageID,
			"subject", rec.Subject,
		)
	} else {
		metrics.PendingRecords.Inc()
	}
	t.entries[relayMessageID] = rec
}

// Get returns the record registered under relayMessageID, if any.
func (t *Table) Get(relayMessageID string) (record.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.entries[relayMessageID]
	return rec, ok
}

// Claim atomically removes and returns the record under relayMessageID.
// Two concurrent approval gestures on the same message cannot both claim it;
// the loser sees ok=false. A failed delivery re-inserts with Put.
func (t *Table) Claim(relayMessageID string) (record.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.entries[relayMessageID]
	if ok {
		delete(t.entries, relayMessageID)
		metrics.PendingRecords.Dec()
	}
	return rec, ok
}

// Remove deletes the entry under relayMessageID if present.
func (t *Table) Remove(relayMessageID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[relayMessageID]; ok {
		delete(t.entries, relayMessageID)
		metrics.PendingRecords.Dec()
	}
}

// Len reports the number of pending entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
