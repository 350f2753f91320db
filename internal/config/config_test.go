package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
room "main" {
  small_blind = 1
  big_blind   = 2
}

room "deep" {
  small_blind   = 5
  big_blind     = 10
  max_seats     = 9
  buy_in_min    = 1000
  buy_in_max    = 5000
  bomb_pot_ante = 20
  double_board  = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Rooms, 2)

	main, err := cfg.Room("main")
	require.NoError(t, err)
	assert.Equal(t, 1, main.SmallBlind)
	assert.Equal(t, 2, main.BigBlind)
	// Defaults fill the optional fields.
	assert.Equal(t, 6, main.MaxSeats)
	assert.Equal(t, 100, main.BuyInMin)
	assert.Equal(t, 1000, main.BuyInMax)
	assert.False(t, main.DoubleBoard)

	deep, err := cfg.Room("deep")
	require.NoError(t, err)
	assert.Equal(t, 9, deep.MaxSeats)
	assert.Equal(t, 20, deep.BombPotAnte)
	assert.True(t, deep.DoubleBoard)

	room := deep.Room()
	assert.Equal(t, "deep", room.ID)
	assert.Equal(t, 10, room.BigBlind)
	assert.True(t, room.DoubleBoard)
}

func TestLoadUnknownRoom(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
room "main" {
  small_blind = 1
  big_blind   = 2
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.Room("missing")
	assert.Error(t, err)
}

func TestLoadInvalidBlinds(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
room "broken" {
  small_blind = 5
  big_blind   = 5
}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, ``)

	_, err := Load(path)
	assert.Error(t, err, "a config without rooms is rejected")
}

func TestLoadBadSyntax(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `room "x" {`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}
