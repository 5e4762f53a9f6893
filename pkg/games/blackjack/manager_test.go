package blackjack

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	"github.com/stretchr/testify/suite"
)

type ManagerTestSuite struct {
	suite.Suite
	rounds  *round.MemoryRepository
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.rounds = round.NewMemoryRepository()
	settings := DefaultSettings()
	settings.Seed = 99
	s.manager = NewManager(s.rounds, settings, logging.NewWithWriter(io.Discard, logging.INFO))
}

func (s *ManagerTestSuite) TestNewManagerNilRepositoryPanics() {
	s.Panics(func() {
		NewManager(nil, DefaultSettings(), nil)
	})
}

func (s *ManagerTestSuite) TestSessionCreatedOnDemand() {
	first, err := s.manager.Session("player1")
	s.Require().NoError(err)

	again, err := s.manager.Session("player1")
	s.Require().NoError(err)

	other, err := s.manager.Session("player2")
	s.Require().NoError(err)

	s.Same(first, again)
	s.NotSame(first, other)
	s.Equal([]string{"player1", "player2"}, s.manager.Players())
}

func (s *ManagerTestSuite) TestSessionEmptyPlayerID() {
	session, err := s.manager.Session("")

	s.Nil(session)
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
}

func (s *ManagerTestSuite) TestGet() {
	_, err := s.manager.Get("player1")
	s.True(types.IsGameError(err, types.ErrSessionNotFound))

	created, err := s.manager.Session("player1")
	s.Require().NoError(err)

	found, err := s.manager.Get("player1")
	s.Require().NoError(err)
	s.Same(created, found)
}

func (s *ManagerTestSuite) TestRemove() {
	_, err := s.manager.Session("player1")
	s.Require().NoError(err)

	s.True(s.manager.Remove("player1"))
	s.False(s.manager.Remove("player1"))
	s.Empty(s.manager.Players())
}

func (s *ManagerTestSuite) TestSessionsAreIndependent() {
	ctx := context.Background()
	one, err := s.manager.Session("player1")
	s.Require().NoError(err)
	two, err := s.manager.Session("player2")
	s.Require().NoError(err)

	_, err = one.Deal(ctx)
	s.Require().NoError(err)
	_, err = one.Stand(ctx)
	s.Require().NoError(err)

	s.Equal(int64(200), two.View().Balance)

	history, err := one.History(ctx, 0)
	s.Require().NoError(err)
	s.Len(history, 1)

	history, err = two.History(ctx, 0)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *ManagerTestSuite) TestSeededSessionsRepeat() {
	settings := DefaultSettings()
	settings.Seed = 99
	other := NewManager(round.NewMemoryRepository(), settings, logging.NewWithWriter(io.Discard, logging.INFO))

	a, err := s.manager.Session("player1")
	s.Require().NoError(err)
	b, err := other.Session("someone-else")
	s.Require().NoError(err)

	viewA, err := a.Deal(context.Background())
	s.Require().NoError(err)
	viewB, err := b.Deal(context.Background())
	s.Require().NoError(err)

	s.Equal(viewA.PlayerCards, viewB.PlayerCards)
	s.Equal(viewA.DealerCards, viewB.DealerCards)
}

func (s *ManagerTestSuite) TestConcurrentSessionCreation() {
	var wg sync.WaitGroup
	sessions := make([]*Session, 20)

	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := s.manager.Session(fmt.Sprintf("player%d", i%2))
			if err == nil {
				sessions[i] = session
			}
		}(i)
	}
	wg.Wait()

	s.Len(s.manager.Players(), 2)
	for i, session := range sessions {
		s.Require().NotNil(session)
		s.Same(sessions[i%2], session)
	}
}

func (s *ManagerTestSuite) TestSettingsFromConfig() {
	cfg := &config.Config{NumberOfDecks: 6, StartingBalance: 1000, DefaultBet: 25, Seed: 3}

	settings := SettingsFromConfig(cfg)

	s.Equal(Settings{NumberOfDecks: 6, StartingBalance: 1000, Bet: 25, Seed: 3}, settings)
}
