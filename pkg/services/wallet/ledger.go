package wallet

import (
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/google/uuid"
)

const (
	InitialBalance int64 = 200 // Starting account balance
	InitialBet     int64 = 5   // Default wager
)

// Ledger tracks a player's account balance and current wager and journals
// every movement. There is no floor: the balance may go negative.
type Ledger struct {
	balance      int64
	bet          int64
	transactions []*entities.Transaction
	now          func() time.Time
}

// NewLedger creates a ledger with the given opening balance and bet
func NewLedger(balance, bet int64) *Ledger {
	return &Ledger{
		balance: balance,
		bet:     bet,
		now:     time.Now,
	}
}

// NewDefaultLedger creates a ledger with the standard opening balance and bet
func NewDefaultLedger() *Ledger {
	return NewLedger(InitialBalance, InitialBet)
}

// Balance returns the current account balance
func (l *Ledger) Balance() int64 {
	return l.balance
}

// SetBalance overwrites the balance and journals the difference
func (l *Ledger) SetBalance(amount int64) {
	l.record(amount-l.balance, entities.TransactionTypeAdjust, "")
}

// Bet returns the current wager
func (l *Ledger) Bet() int64 {
	return l.bet
}

// SetBet sets the wager used by the next deal. No validation is applied.
func (l *Ledger) SetBet(amount int64) {
	l.bet = amount
}

// Debit removes amount from the balance
func (l *Ledger) Debit(amount int64, txType entities.TransactionType, referenceID string) *entities.Transaction {
	return l.record(-amount, txType, referenceID)
}

// Credit adds amount to the balance
func (l *Ledger) Credit(amount int64, txType entities.TransactionType, referenceID string) *entities.Transaction {
	return l.record(amount, txType, referenceID)
}

func (l *Ledger) record(amount int64, txType entities.TransactionType, referenceID string) *entities.Transaction {
	l.balance += amount

	transaction := &entities.Transaction{
		ID:           uuid.New().String(),
		Amount:       amount,
		Type:         txType,
		ReferenceID:  referenceID,
		Timestamp:    l.now(),
		BalanceAfter: l.balance,
	}
	l.transactions = append(l.transactions, transaction)

	txCopy := *transaction
	return &txCopy
}

// Transactions returns up to limit of the most recent transactions, oldest
// first. A limit of zero or less returns all of them.
func (l *Ledger) Transactions(limit int) []*entities.Transaction {
	start := 0
	if limit > 0 && len(l.transactions) > limit {
		start = len(l.transactions) - limit
	}

	result := make([]*entities.Transaction, 0, len(l.transactions)-start)
	for i := start; i < len(l.transactions); i++ {
		txCopy := *l.transactions[i]
		result = append(result, &txCopy)
	}

	return result
}

// TransactionsFor returns the transactions recorded against a round
func (l *Ledger) TransactionsFor(referenceID string) []*entities.Transaction {
	result := make([]*entities.Transaction, 0)
	for _, tx := range l.transactions {
		if tx.ReferenceID == referenceID {
			txCopy := *tx
			result = append(result, &txCopy)
		}
	}
	return result
}
