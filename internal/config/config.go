// Package config loads room definitions from HCL files.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokerrooms/internal/engine"
)

// File is the top-level room configuration file.
type File struct {
	Rooms []RoomConfig `hcl:"room,block"`
}

// RoomConfig defines one room.
type RoomConfig struct {
	Name        string `hcl:"name,label"`
	SmallBlind  int    `hcl:"small_blind"`
	BigBlind    int    `hcl:"big_blind"`
	MaxSeats    int    `hcl:"max_seats,optional"`
	BuyInMin    int    `hcl:"buy_in_min,optional"`
	BuyInMax    int    `hcl:"buy_in_max,optional"`
	BombPotAnte int    `hcl:"bomb_pot_ante,optional"`
	DoubleBoard bool   `hcl:"double_board,optional"`
}

// Load parses a room configuration file and applies defaults.
func Load(filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	for i := range cfg.Rooms {
		applyDefaults(&cfg.Rooms[i])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(rc *RoomConfig) {
	if rc.MaxSeats == 0 {
		rc.MaxSeats = 6
	}
	if rc.BuyInMin == 0 {
		rc.BuyInMin = rc.BigBlind * 50
	}
	if rc.BuyInMax == 0 {
		rc.BuyInMax = rc.BigBlind * 500
	}
}

// Validate checks every room in the file.
func (f *File) Validate() error {
	if len(f.Rooms) == 0 {
		return fmt.Errorf("at least one room must be configured")
	}
	for _, rc := range f.Rooms {
		room := rc.Room()
		if err := room.Validate(); err != nil {
			return fmt.Errorf("room %s: %w", rc.Name, err)
		}
	}
	return nil
}

// Room returns a room configuration by name.
func (f *File) Room(name string) (*RoomConfig, error) {
	for i := range f.Rooms {
		if f.Rooms[i].Name == name {
			return &f.Rooms[i], nil
		}
	}
	return nil, fmt.Errorf("room %s not found", name)
}

// Room converts the config to an engine room.
func (rc *RoomConfig) Room() engine.Room {
	return engine.Room{
		ID:          rc.Name,
		SmallBlind:  rc.SmallBlind,
		BigBlind:    rc.BigBlind,
		MinBuyIn:    rc.BuyInMin,
		MaxBuyIn:    rc.BuyInMax,
		MaxSeats:    rc.MaxSeats,
		BombPotAnte: rc.BombPotAnte,
		DoubleBoard: rc.DoubleBoard,
		ButtonSeat:  0,
	}
}
