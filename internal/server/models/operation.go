package models

import "time"

// Operation is an immutable activity record owned by a user. Data holds the
// JSON-encoded payload as text.
type Operation struct {
	ID        int64
	UserID    int64
	Type      string
	Data      string
	Status    string
	CreatedAt time.Time
}

// OperationStats summarises a user's ledger.
type OperationStats struct {
	Total  int64
	Recent int64
}
