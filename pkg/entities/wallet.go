package entities

import (
	"time"
)

// TransactionType represents the type of ledger transaction
type TransactionType string

const (
	TransactionTypeBet    TransactionType = "BET"
	TransactionTypePayout TransactionType = "PAYOUT"
	TransactionTypePush   TransactionType = "PUSH"
	TransactionTypeLoss   TransactionType = "LOSS"
	TransactionTypeAdjust TransactionType = "ADJUST"
)

// Transaction represents a single ledger movement
type Transaction struct {
	ID           string          // Unique identifier
	Amount       int64           // Positive for credits, negative for debits
	Type         TransactionType // Type of transaction
	ReferenceID  string          // Round ID the movement belongs to, if any
	Timestamp    time.Time       // When the transaction occurred
	BalanceAfter int64           // Balance after this transaction
}
