package blackjack

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	engine "github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

// Settings are the table parameters every new session starts with
type Settings struct {
	NumberOfDecks   int
	StartingBalance int64
	Bet             int64
	Seed            int64 // 0 seeds each session from the clock
}

// DefaultSettings is a one-deck table with a 200 balance and a 5 bet
func DefaultSettings() Settings {
	return Settings{
		NumberOfDecks:   engine.DefaultDecks,
		StartingBalance: wallet.InitialBalance,
		Bet:             wallet.InitialBet,
	}
}

// SettingsFromConfig copies the table parameters out of the loaded config
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		NumberOfDecks:   cfg.NumberOfDecks,
		StartingBalance: cfg.StartingBalance,
		Bet:             cfg.DefaultBet,
		Seed:            cfg.Seed,
	}
}

// Manager manages one session per player
type Manager struct {
	rounds   round.Repository
	settings Settings
	logger   *logging.Logger
	sessions map[string]*Session
	created  int64
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager(rounds round.Repository, settings Settings, logger *logging.Logger) *Manager {
	if rounds == nil {
		panic("rounds repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default
	}
	return &Manager{
		rounds:   rounds,
		settings: settings,
		logger:   logger.Named("session"),
		sessions: make(map[string]*Session),
	}
}

// Session returns the player's session, creating it on first use
func (m *Manager) Session(playerID string) (*Session, error) {
	if playerID == "" {
		return nil, types.NewGameError(types.ErrInvalidArgument, "player ID cannot be empty")
	}

	m.mu.RLock()
	session, exists := m.sessions[playerID]
	m.mu.RUnlock()
	if exists {
		return session, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// another caller may have created it between the locks
	if session, exists := m.sessions[playerID]; exists {
		return session, nil
	}

	session = NewSession(playerID, m.newRand(), m.settings, m.rounds, m.logger)
	m.sessions[playerID] = session
	m.logger.Debug("session created", "player", playerID, "sessions", len(m.sessions))
	return session, nil
}

// Get returns an existing session
func (m *Manager) Get(playerID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[playerID]
	if !exists {
		return nil, types.NewGameError(types.ErrSessionNotFound, fmt.Sprintf("no session for player %q", playerID))
	}
	return session, nil
}

// Remove drops a player's session; their bankroll goes with it
func (m *Manager) Remove(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[playerID]; !exists {
		return false
	}
	delete(m.sessions, playerID)
	return true
}

// Players lists the players with a session, sorted
func (m *Manager) Players() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]string, 0, len(m.sessions))
	for playerID := range m.sessions {
		players = append(players, playerID)
	}
	sort.Strings(players)
	return players
}

// newRand gives every session its own source. With a fixed seed the n-th
// session created always gets seed+n. Callers hold m.mu.
func (m *Manager) newRand() *rand.Rand {
	seed := m.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += m.created
	}
	m.created++
	return rand.New(rand.NewSource(seed))
}
