package tournament

import (
	"sync"

	"go.uber.org/zap"
)

// Manager manages tournaments
type Manager struct {
	tournaments map[string]*Tournament
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewManager creates a new tournament manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		tournaments: make(map[string]*Tournament),
		logger:      logger,
	}
}

// CreateTournament creates a tournament and enters the named strategies.
func (m *Manager) CreateTournament(opts Options, entrants ...string) (*Tournament, error) {
	tournament := NewTournament(opts)
	for _, name := range entrants {
		if err := tournament.AddEntrant(name); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.tournaments[tournament.ID] = tournament
	m.mu.Unlock()

	m.logger.Info("tournament created",
		zap.String("tournament_id", tournament.ID),
		zap.String("name", opts.Name),
		zap.String("kingdom", tournament.Options.Kingdom.Name),
		zap.Strings("entrants", entrants),
		zap.Int("players", tournament.Options.Players),
		zap.Int("games", tournament.Options.Games),
	)

	return tournament, nil
}

// GetTournament retrieves a tournament by ID
func (m *Manager) GetTournament(tournamentID string) (*Tournament, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tournament, ok := m.tournaments[tournamentID]
	return tournament, ok
}

// RemoveTournament removes a tournament
func (m *Manager) RemoveTournament(tournamentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tournaments, tournamentID)

	m.logger.Info("tournament removed", zap.String("tournament_id", tournamentID))
}

// GetAllTournaments returns all tournaments
func (m *Manager) GetAllTournaments() []*Tournament {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tournaments := make([]*Tournament, 0, len(m.tournaments))
	for _, tournament := range m.tournaments {
		tournaments = append(tournaments, tournament)
	}
	return tournaments
}

// GetActiveTournamentCount returns the count of active tournaments
func (m *Manager) GetActiveTournamentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, tournament := range m.tournaments {
		if tournament.GetState() != TournamentStateFinished {
			count++
		}
	}
	return count
}
