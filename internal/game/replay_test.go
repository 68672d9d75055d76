package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
)

func TestNewReplay(t *testing.T) {
	replay := NewReplay("arena-123")
	assert.Equal(t, "arena-123", replay.ArenaID)
	assert.Equal(t, 0, replay.CurrentIndex)
	assert.Equal(t, 0, replay.Size())
}

func TestReplayNavigation(t *testing.T) {
	replay := NewReplay("arena-123")
	for i := 0; i < 5; i++ {
		replay.RecordState(&Snapshot{ArenaID: "arena-123", Turn: rules.Turn{Number: i + 1}})
	}
	assert.Equal(t, 5, replay.Size())

	replay.Start()
	assert.Equal(t, 0, replay.CurrentIndex)

	state := replay.Next()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Turn.Number)
	assert.Equal(t, 1, replay.CurrentIndex)

	state = replay.Next()
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Turn.Number)

	state = replay.Previous()
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Turn.Number)
	assert.Equal(t, 1, replay.CurrentIndex)

	state = replay.Skip(10)
	require.NotNil(t, state)
	assert.Equal(t, 5, state.Turn.Number)

	state = replay.Skip(-10)
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Turn.Number)

	assert.Nil(t, replay.StateAt(5))
	assert.Equal(t, 3, replay.StateAt(2).Turn.Number)
}

func TestReplayEmptyNavigation(t *testing.T) {
	replay := NewReplay("arena-123")
	assert.Nil(t, replay.Next())
	assert.Nil(t, replay.Previous())
	assert.Nil(t, replay.Skip(1))
}

func TestArenaRecordsTurns(t *testing.T) {
	a, err := NewArena(Options{Players: 2, Kingdom: testKingdom, Seed: 3, Record: true}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, a.Replay())
	assert.Equal(t, 1, a.Replay().Size())

	for turn := 0; turn < 3; turn++ {
		player := a.Turn().ActivePlayer
		require.NoError(t, a.EndPhase(player))
		require.NoError(t, a.EndPhase(player))
	}
	assert.Equal(t, 4, a.Replay().Size())
	assert.Equal(t, a.Snapshot().Checksum(), a.Replay().StateAt(3).Checksum())
}

func TestReplaySaveAndLoad(t *testing.T) {
	a, err := NewArena(Options{Players: 2, Kingdom: testKingdom, Seed: 3, Record: true}, nil)
	require.NoError(t, err)
	require.NoError(t, a.EndPhase(0))
	require.NoError(t, a.EndPhase(0))

	dir := t.TempDir()
	path, err := a.Replay().SaveToFile(dir)
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := LoadReplayFromFile(dir, a.ID())
	require.NoError(t, err)
	assert.Equal(t, a.ID(), loaded.ArenaID)
	require.Equal(t, a.Replay().Size(), loaded.Size())
	for i := 0; i < loaded.Size(); i++ {
		assert.Equal(t, a.Replay().StateAt(i).Checksum(), loaded.StateAt(i).Checksum(), "state %d", i)
	}
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "missing")
	assert.Error(t, err)
}

func TestReplayLogsRecordingAndSaving(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a, err := NewArena(Options{Players: 2, Seed: 3, Record: true}, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, a.EndPhase(0))
	require.NoError(t, a.EndPhase(0))

	recorded := logs.FilterMessage("recorded replay state").AllUntimed()
	require.Len(t, recorded, 2)
	assert.Equal(t, a.ID(), recorded[1].ContextMap()["arena_id"])
	assert.EqualValues(t, 2, recorded[1].ContextMap()["state_count"])

	path, err := a.Replay().SaveToFile(t.TempDir())
	require.NoError(t, err)
	saved := logs.FilterMessage("saved replay to disk").AllUntimed()
	require.Len(t, saved, 1)
	assert.Equal(t, path, saved[0].ContextMap()["file"])
}
