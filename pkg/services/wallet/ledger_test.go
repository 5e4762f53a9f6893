package wallet

import (
	"testing"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.ledger = NewDefaultLedger()
}

func (s *LedgerTestSuite) TestDefaults() {
	s.Equal(int64(200), s.ledger.Balance())
	s.Equal(int64(5), s.ledger.Bet())
	s.Empty(s.ledger.Transactions(0), "New ledger should have no transactions")
}

func (s *LedgerTestSuite) TestDebitAndCredit() {
	// Execute
	bet := s.ledger.Debit(5, entities.TransactionTypeBet, "round-1")
	payout := s.ledger.Credit(10, entities.TransactionTypePayout, "round-1")

	// Assert
	s.Equal(int64(205), s.ledger.Balance())

	s.Equal(int64(-5), bet.Amount)
	s.Equal(int64(195), bet.BalanceAfter)
	s.NotEmpty(bet.ID, "Transaction should get an ID")

	s.Equal(int64(10), payout.Amount)
	s.Equal(int64(205), payout.BalanceAfter)
	s.NotEqual(bet.ID, payout.ID)
}

func (s *LedgerTestSuite) TestBalanceMayGoNegative() {
	s.ledger.SetBalance(3)

	s.ledger.Debit(5, entities.TransactionTypeBet, "round-1")

	s.Equal(int64(-2), s.ledger.Balance())
}

func (s *LedgerTestSuite) TestSetBalanceJournalsDifference() {
	// Execute
	s.ledger.SetBalance(150)

	// Assert
	txs := s.ledger.Transactions(0)
	s.Require().Len(txs, 1)
	s.Equal(entities.TransactionTypeAdjust, txs[0].Type)
	s.Equal(int64(-50), txs[0].Amount)
	s.Equal(int64(150), txs[0].BalanceAfter)
}

func (s *LedgerTestSuite) TestSetBetIsUnvalidated() {
	s.ledger.SetBet(-10)
	s.Equal(int64(-10), s.ledger.Bet())
}

func (s *LedgerTestSuite) TestTransactionsLimitAndFilter() {
	// Setup
	s.ledger.Debit(5, entities.TransactionTypeBet, "round-1")
	s.ledger.Credit(10, entities.TransactionTypePayout, "round-1")
	s.ledger.Debit(5, entities.TransactionTypeBet, "round-2")

	// Execute
	recent := s.ledger.Transactions(2)
	round1 := s.ledger.TransactionsFor("round-1")

	// Assert
	s.Require().Len(recent, 2)
	s.Equal(entities.TransactionTypePayout, recent[0].Type)
	s.Equal("round-2", recent[1].ReferenceID)
	s.Len(round1, 2)
}

func (s *LedgerTestSuite) TestTransactionsAreCopies() {
	s.ledger.Debit(5, entities.TransactionTypeBet, "round-1")

	txs := s.ledger.Transactions(0)
	txs[0].Amount = 1000

	s.Equal(int64(-5), s.ledger.Transactions(0)[0].Amount)
}
