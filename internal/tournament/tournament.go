package tournament

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/watchers"
	"github.com/kingdomworks/dominion-engine-go/internal/sim"
)

// TournamentState represents the state of a tournament
type TournamentState int

const (
	TournamentStateWaiting TournamentState = iota
	TournamentStateInProgress
	TournamentStateFinished
)

func (s TournamentState) String() string {
	switch s {
	case TournamentStateWaiting:
		return "WAITING"
	case TournamentStateInProgress:
		return "IN_PROGRESS"
	case TournamentStateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Points awarded per game.
const (
	winPoints  = 3
	drawPoints = 1
)

// Options configures a tournament.
type Options struct {
	Name      string
	Kingdom   cards.Kingdom
	Catalog   *cards.Catalog
	Players   int    // seats per game
	Games     int    // games per match; seats rotate between games
	Seed      uint64 // seed of the first game, incremented per game
	MaxTurns  int
	ReplayDir string // replays are written here when set
}

// Entrant is one strategy taking part.
type Entrant struct {
	Name     string
	Points   int
	Wins     int
	Losses   int
	Draws    int
	VP       int // victory points over every game
	Bought   int // cards bought
	Curses   int // curses received
	Blocked  int // attacks blocked by a reaction
	Refusals int // intents the engine refused
}

// GameRecord is the outcome of one game.
type GameRecord struct {
	ArenaID  string
	Seed     uint64
	Seats    []string // entrant per seat
	Scores   []int
	Winners  []string // more than one on a shared top score; none when unfinished
	Turns    int
	Finished bool     // false when stopped by the turn limit
	Replay   string // replay file, if written
}

// Match is a group of entrants playing Options.Games games together.
type Match struct {
	ID       string
	Entrants []string
	Games    []GameRecord
	Finished bool
}

// EntrantSnapshot captures entrant data for external use.
type EntrantSnapshot Entrant

// MatchSnapshot captures match data for external use.
type MatchSnapshot struct {
	ID       string
	Entrants []string
	Games    []GameRecord
	Finished bool
}

// TournamentSnapshot captures a consistent view of a tournament.
type TournamentSnapshot struct {
	ID         string
	Name       string
	Kingdom    string
	State      TournamentState
	Entrants   []EntrantSnapshot
	Matches    []MatchSnapshot
	CreateTime time.Time
	StartTime  *time.Time
	EndTime    *time.Time
}

// Tournament plays every combination of entrants against each other.
type Tournament struct {
	ID          string
	Name        string
	Options     Options
	State       TournamentState
	Entrants    map[string]*Entrant
	EntrantList []string // Maintains insertion order
	Matches     []*Match
	CreateTime  time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	mu          sync.RWMutex
}

// NewTournament creates a new tournament
func NewTournament(opts Options) *Tournament {
	if opts.Players == 0 {
		opts.Players = 2
	}
	if opts.Games == 0 {
		opts.Games = 1
	}
	if opts.Kingdom.Cards == nil {
		opts.Kingdom = cards.FirstGame
	}
	return &Tournament{
		ID:          uuid.New().String(),
		Name:        opts.Name,
		Options:     opts,
		State:       TournamentStateWaiting,
		Entrants:    make(map[string]*Entrant),
		EntrantList: make([]string, 0),
		Matches:     make([]*Match, 0),
		CreateTime:  time.Now(),
	}
}

// AddEntrant enters a built-in strategy by name.
func (t *Tournament) AddEntrant(name string) error {
	if _, err := sim.ByName(name); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateWaiting {
		return fmt.Errorf("tournament already started")
	}
	if _, exists := t.Entrants[name]; exists {
		return fmt.Errorf("entrant %s already joined", name)
	}

	t.Entrants[name] = &Entrant{Name: name}
	t.EntrantList = append(t.EntrantList, name)
	return nil
}

// RemoveEntrant withdraws an entrant before the start.
func (t *Tournament) RemoveEntrant(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateWaiting {
		return fmt.Errorf("tournament already started")
	}
	if _, exists := t.Entrants[name]; !exists {
		return fmt.Errorf("entrant %s not found", name)
	}

	delete(t.Entrants, name)
	for i, n := range t.EntrantList {
		if n == name {
			t.EntrantList = append(t.EntrantList[:i], t.EntrantList[i+1:]...)
			break
		}
	}
	return nil
}

// GetState returns the current tournament state
func (t *Tournament) GetState() TournamentState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.State
}

// Start schedules the matches and moves the tournament into progress.
func (t *Tournament) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.State != TournamentStateWaiting {
		return fmt.Errorf("tournament already started")
	}
	seats := t.Options.Players
	if seats < game.MinPlayers || seats > game.MaxPlayers {
		return apperrors.Newf(apperrors.CodeInvalidConfig, "players must be between %d and %d", game.MinPlayers, game.MaxPlayers)
	}
	if len(t.EntrantList) < seats {
		return fmt.Errorf("not enough entrants: %d for %d seats", len(t.EntrantList), seats)
	}

	now := time.Now()
	t.StartTime = &now
	t.State = TournamentStateInProgress
	t.Matches = t.Matches[:0]
	for _, group := range combinations(t.EntrantList, seats) {
		t.Matches = append(t.Matches, &Match{ID: uuid.New().String(), Entrants: group})
	}
	return nil
}

// combinations lists every k-sized group of names, keeping their order.
func combinations(names []string, k int) [][]string {
	var out [][]string
	group := make([]string, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(group) == k {
			out = append(out, append([]string(nil), group...))
			return
		}
		for i := start; i <= len(names)-(k-len(group)); i++ {
			group = append(group, names[i])
			walk(i + 1)
			group = group[:len(group)-1]
		}
	}
	walk(0)
	return out
}

// Run starts the tournament if needed and plays every scheduled game.
func (t *Tournament) Run(ctx context.Context, logger *zap.Logger) error {
	switch t.GetState() {
	case TournamentStateWaiting:
		if err := t.Start(); err != nil {
			return err
		}
	case TournamentStateFinished:
		return fmt.Errorf("tournament already finished")
	}

	t.mu.RLock()
	matches := append([]*Match(nil), t.Matches...)
	t.mu.RUnlock()

	seed := t.Options.Seed
	for _, m := range matches {
		for g := 0; g < t.Options.Games; g++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := t.playGame(ctx, m, g, seed, logger)
			if err != nil {
				return fmt.Errorf("match %s game %d: %w", m.ID, g+1, err)
			}
			if err := t.RecordGame(m.ID, rec); err != nil {
				return err
			}
			seed++
		}
		t.mu.Lock()
		m.Finished = true
		t.mu.Unlock()
	}

	t.mu.Lock()
	now := time.Now()
	t.State = TournamentStateFinished
	t.EndTime = &now
	t.mu.Unlock()

	if logger != nil {
		logger.Info("tournament finished",
			zap.String("tournament_id", t.ID),
			zap.String("name", t.Name),
			zap.Int("matches", len(matches)),
		)
	}
	return nil
}

// playGame plays game g of m, rotating the seats by g.
func (t *Tournament) playGame(ctx context.Context, m *Match, g int, seed uint64, logger *zap.Logger) (GameRecord, error) {
	n := len(m.Entrants)
	names := make([]string, n)
	seats := make([]sim.Strategy, n)
	for i := range names {
		names[i] = m.Entrants[(i+g)%n]
		s, err := sim.ByName(names[i])
		if err != nil {
			return GameRecord{}, err
		}
		seats[i] = s
	}

	a, err := game.NewArena(game.Options{
		Players: n,
		Kingdom: t.Options.Kingdom.Cards,
		Seed:    seed,
		Catalog: t.Options.Catalog,
		Record:  t.Options.ReplayDir != "",
	}, logger)
	if err != nil {
		return GameRecord{}, err
	}

	stats := watchers.Standard()
	detach := stats.Attach(a.Events())
	defer detach()

	res, err := sim.Play(ctx, a, seats, t.Options.MaxTurns, logger)
	if err != nil {
		return GameRecord{}, err
	}

	rec := GameRecord{
		ArenaID:  res.ArenaID,
		Seed:     seed,
		Seats:    names,
		Scores:   res.Scores,
		Turns:    res.Turns,
		Finished: res.Finished,
	}
	if res.Finished {
		rec.Winners = topScorers(names, res.Scores)
	}
	if a.Replay() != nil {
		path, err := a.Replay().SaveToFile(t.Options.ReplayDir)
		if err != nil {
			return GameRecord{}, err
		}
		rec.Replay = path
	}

	t.mu.Lock()
	for i, name := range names {
		e, ok := t.Entrants[name]
		if !ok {
			continue
		}
		e.Bought += watchers.CountFor(stats, watchers.KeyCardsBought, i)
		e.Curses += watchers.CountFor(stats, watchers.KeyCursesReceived, i)
		e.Blocked += watchers.CountFor(stats, watchers.KeyAttacksBlocked, i)
		e.Refusals += watchers.CountFor(stats, watchers.KeyIntentsRefused, i)
	}
	t.mu.Unlock()
	return rec, nil
}

func topScorers(names []string, scores []int) []string {
	best := scores[0]
	for _, s := range scores[1:] {
		best = max(best, s)
	}
	var winners []string
	for i, s := range scores {
		if s == best {
			winners = append(winners, names[i])
		}
	}
	return winners
}

// RecordGame adds a game to a match and updates the standings. A shared top
// score is a draw for the players sharing it. A game stopped by the turn
// limit is a draw for every seat, whatever the scores.
func (t *Tournament) RecordGame(matchID string, rec GameRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var match *Match
	for _, m := range t.Matches {
		if m.ID == matchID {
			match = m
			break
		}
	}
	if match == nil {
		return fmt.Errorf("match %s not found", matchID)
	}
	match.Games = append(match.Games, rec)

	for i, name := range rec.Seats {
		e, ok := t.Entrants[name]
		if !ok {
			return fmt.Errorf("entrant %s not found", name)
		}
		e.VP += rec.Scores[i]

		if !rec.Finished {
			e.Draws++
			e.Points += drawPoints
			continue
		}

		won := false
		for _, w := range rec.Winners {
			won = won || w == name
		}
		switch {
		case won && len(rec.Winners) == 1:
			e.Wins++
			e.Points += winPoints
		case won:
			e.Draws++
			e.Points += drawPoints
		default:
			e.Losses++
		}
	}
	return nil
}

// Standings returns the entrants ordered by points, then victory points,
// then entry order.
func (t *Tournament) Standings() []EntrantSnapshot {
	snap := t.Snapshot()
	out := snap.Entrants
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && ahead(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func ahead(x, y EntrantSnapshot) bool {
	if x.Points != y.Points {
		return x.Points > y.Points
	}
	return x.VP > y.VP
}

// Snapshot returns a consistent copy of the tournament state.
func (t *Tournament) Snapshot() TournamentSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entrants := make([]EntrantSnapshot, 0, len(t.EntrantList))
	for _, name := range t.EntrantList {
		if e, ok := t.Entrants[name]; ok {
			entrants = append(entrants, EntrantSnapshot(*e))
		}
	}

	matches := make([]MatchSnapshot, 0, len(t.Matches))
	for _, m := range t.Matches {
		games := make([]GameRecord, len(m.Games))
		for i, g := range m.Games {
			g.Seats = append([]string(nil), g.Seats...)
			g.Scores = append([]int(nil), g.Scores...)
			g.Winners = append([]string(nil), g.Winners...)
			games[i] = g
		}
		matches = append(matches, MatchSnapshot{
			ID:       m.ID,
			Entrants: append([]string(nil), m.Entrants...),
			Games:    games,
			Finished: m.Finished,
		})
	}

	return TournamentSnapshot{
		ID:         t.ID,
		Name:       t.Name,
		Kingdom:    t.Options.Kingdom.Name,
		State:      t.State,
		Entrants:   entrants,
		Matches:    matches,
		CreateTime: t.CreateTime,
		StartTime:  cloneTime(t.StartTime),
		EndTime:    cloneTime(t.EndTime),
	}
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}
