package main

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/games/blackjack"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	"github.com/stretchr/testify/suite"
)

type REPLTestSuite struct {
	suite.Suite
	out     *bytes.Buffer
	session *blackjack.Session
	repl    *repl
}

func TestREPLSuite(t *testing.T) {
	suite.Run(t, new(REPLTestSuite))
}

func (s *REPLTestSuite) SetupTest() {
	s.out = &bytes.Buffer{}
	logger := logging.NewWithWriter(io.Discard, logging.INFO)
	s.session = blackjack.NewSession("tester", rand.New(rand.NewSource(5)), blackjack.DefaultSettings(), round.NewMemoryRepository(), logger)
	s.repl = newREPL(s.session, s.out, newRenderer(false))
}

func (s *REPLTestSuite) run(input string) string {
	s.Require().NoError(s.repl.Run(context.Background(), strings.NewReader(input)))
	return s.out.String()
}

func (s *REPLTestSuite) TestPlayRound() {
	out := s.run("deal\nstand\nhistory\nsummary\nquit\n")

	s.Contains(out, "Dealer:")
	s.Contains(out, "[??]", "Hole card should be hidden after the deal")
	s.Contains(out, "Rounds: 1")
	s.Equal(1, strings.Count(out, " net "), "History should list the finished round")
	s.True(s.session.View().Finished())
}

func (s *REPLTestSuite) TestOnlyHoleCardHiddenAfterDeal() {
	out := s.run("deal\n")

	var dealer, player string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "Dealer:"):
			dealer = line
		case strings.HasPrefix(line, "You:"):
			player = line
		}
	}

	s.Require().NotEmpty(player)
	s.NotContains(player, "[??]", "Player should see both of their cards")
	s.Require().NotEmpty(dealer)
	s.Equal(1, strings.Count(dealer, "[??]"), "Only the dealer hole card should be hidden")
}

func (s *REPLTestSuite) TestDealerHandShownAfterStand() {
	out := s.run("deal\nstand\n")

	lines := strings.Split(out, "\n")
	var dealer string
	for _, line := range lines {
		if strings.HasPrefix(line, "Dealer:") {
			dealer = line
		}
	}

	s.Require().NotEmpty(dealer)
	s.NotContains(dealer, "[??]")
	s.NotContains(dealer, "(?)")
}

func (s *REPLTestSuite) TestInvalidActions() {
	out := s.run("hit\nstand\n")

	s.Contains(out, "cannot hit while the round is not dealt")
	s.Contains(out, "cannot stand while the round is not dealt")
	s.Equal(int64(200), s.session.View().Balance)
}

func (s *REPLTestSuite) TestBet() {
	out := s.run("bet 25\nbet 0\nbet lots\nbet\nbalance\n")

	s.Contains(out, "Bet set to 25")
	s.Contains(out, "bet must be positive, got 0")
	s.Contains(out, `Invalid amount "lots"`)
	s.Contains(out, "Usage: bet <amount>")
	s.Contains(out, "Balance: 200  Bet: 25")
}

func (s *REPLTestSuite) TestHistoryEmpty() {
	out := s.run("history\nhistory zero\n")

	s.Contains(out, "No rounds played yet.")
	s.Contains(out, `Invalid count "zero"`)
}

func (s *REPLTestSuite) TestUnknownCommand() {
	out := s.run("split\n")

	s.Contains(out, `Unknown command "split"`)
}

func (s *REPLTestSuite) TestQuitStopsReading() {
	out := s.run("quit\ndeal\n")

	s.NotContains(out, "Dealer:")
	s.Empty(s.session.View().PlayerCards)
}

func (s *REPLTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, writer := io.Pipe()
	defer writer.Close()

	s.NoError(s.repl.Run(ctx, reader))
}
