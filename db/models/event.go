package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEvent : notification emitted after a ledger mutation committed
type LedgerEvent struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	TransactionIDs []int64   `json:"transaction_ids"`
	AccountIDs     []int64   `json:"account_ids"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewLedgerEvent(eventType string, transactionIDs, accountIDs []int64) LedgerEvent {
	return LedgerEvent{
		ID:             uuid.New(),
		Type:           eventType,
		TransactionIDs: transactionIDs,
		AccountIDs:     accountIDs,
		OccurredAt:     time.Now().UTC(),
	}
}
