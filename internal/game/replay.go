package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const replayVersion = 1

// Replay is a recorded game: one snapshot per turn boundary, starting with
// the opening deal.
type Replay struct {
	ArenaID      string
	States       []*Snapshot
	CurrentIndex int
	mu           sync.RWMutex
	logger       *zap.Logger
}

// NewReplay creates an empty replay for an arena.
func NewReplay(arenaID string) *Replay {
	return &Replay{
		ArenaID: arenaID,
		States:  make([]*Snapshot, 0),
	}
}

// SetLogger attaches a logger for recording and saving. nil disables logging.
func (r *Replay) SetLogger(logger *zap.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger = logger
}

// RecordState appends a snapshot.
func (r *Replay) RecordState(snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = append(r.States, snapshot)

	if r.logger != nil {
		r.logger.Debug("recorded replay state",
			zap.String("arena_id", r.ArenaID),
			zap.Int("turn", snapshot.Turn.Number),
			zap.Int("state_count", len(r.States)),
		)
	}
}

// Start rewinds playback to the beginning.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the state at the cursor and advances it, or nil at the end.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		state := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return state
	}
	return nil
}

// Previous steps the cursor back and returns that state, or nil at the start.
func (r *Replay) Previous() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count states, clamped to the recording.
func (r *Replay) Skip(count int) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.States) {
		newIndex = len(r.States) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.States) {
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Size returns the number of recorded states.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// StateAt returns the state at index, or nil.
func (r *Replay) StateAt(index int) *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

// SaveToFile writes the replay to <directory>/<arena id>.replay as gzipped gob.
func (r *Replay) SaveToFile(directory string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := filepath.Join(directory, r.ArenaID+".replay")
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gzipWriter)

	metadata := replayMetadata{
		ArenaID:    r.ArenaID,
		Timestamp:  time.Now(),
		Version:    replayVersion,
		StateCount: len(r.States),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i, state := range r.States {
		if err := encoder.Encode(state); err != nil {
			return "", fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to flush replay: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("saved replay to disk",
			zap.String("arena_id", r.ArenaID),
			zap.Int("state_count", len(r.States)),
			zap.String("file", filename),
		)
	}
	return filename, nil
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(directory, arenaID string) (*Replay, error) {
	filename := filepath.Join(directory, arenaID+".replay")

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := NewReplay(metadata.ArenaID)
	for i := 0; i < metadata.StateCount; i++ {
		var state Snapshot
		if err := decoder.Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		replay.States = append(replay.States, &state)
	}
	return replay, nil
}

type replayMetadata struct {
	ArenaID    string
	Timestamp  time.Time
	Version    int
	StateCount int
}
