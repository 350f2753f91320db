package main

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerrooms/internal/config"
	"github.com/lox/pokerrooms/internal/engine"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/lox/pokerrooms/poker"
)

type CLI struct {
	Verbose bool `short:"v" help:"Verbose logging"`

	Deal     DealCmd     `cmd:"" help:"Deal a hand and print the resulting state"`
	Play     PlayCmd     `cmd:"" help:"Deal a hand and run a scripted action sequence"`
	Simulate SimulateCmd `cmd:"" help:"Play random hands in parallel, checking chip conservation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerrooms"),
		kong.Description("Deterministic poker room hand engine"),
	)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}

type roomFlags struct {
	Config     string `help:"Room configuration file (HCL)" type:"existingfile"`
	Room       string `default:"main" help:"Room name within the config file"`
	SmallBlind int    `default:"1" help:"Small blind (ignored with --config)"`
	BigBlind   int    `default:"2" help:"Big blind (ignored with --config)"`
	Players    int    `default:"3" help:"Number of seated players"`
	Stack      int    `default:"200" help:"Starting stack per player"`
}

func (rf *roomFlags) room() (engine.Room, error) {
	if rf.Config != "" {
		cfg, err := config.Load(rf.Config)
		if err != nil {
			return engine.Room{}, err
		}
		rc, err := cfg.Room(rf.Room)
		if err != nil {
			return engine.Room{}, err
		}
		return rc.Room(), nil
	}

	room := engine.Room{
		ID:         rf.Room,
		SmallBlind: rf.SmallBlind,
		BigBlind:   rf.BigBlind,
		MinBuyIn:   rf.BigBlind * 50,
		MaxBuyIn:   rf.BigBlind * 500,
		MaxSeats:   6,
	}
	return room, room.Validate()
}

func (rf *roomFlags) seatedPlayers() []engine.SeatedPlayer {
	players := make([]engine.SeatedPlayer, rf.Players)
	for i := range players {
		players[i] = engine.SeatedPlayer{
			Seat:       i,
			ConnID:     fmt.Sprintf("player-%d", i),
			Chips:      rf.Stack,
			TotalBuyIn: rf.Stack,
		}
	}
	return players
}

type DealCmd struct {
	roomFlags
	Seed       string `help:"Deck seed (decimal int64); random when omitted"`
	ShowSecret bool   `help:"Print the full secret boards and all hole cards"`
}

func (c *DealCmd) Run(logger *log.Logger) error {
	room, err := c.room()
	if err != nil {
		return err
	}

	deal, err := engine.Deal(room, c.seatedPlayers(), c.Seed)
	if err != nil {
		return err
	}

	logger.Info("hand dealt", "hand", deal.State.HandID, "seed", deal.SeedUsed, "button", deal.State.ButtonSeat)
	printState(&deal.State, deal.Players)

	if c.ShowSecret {
		for b, board := range deal.Secret.Boards {
			fmt.Printf("board %d: %s\n", b+1, formatBoard(board))
		}
		for _, p := range deal.Players {
			fmt.Printf("seat %d: %s\n", p.Seat, deal.HoleCards[p.Seat])
		}
	}
	return nil
}

type PlayCmd struct {
	roomFlags
	Seed    string   `help:"Deck seed (decimal int64); random when omitted"`
	Actions []string `arg:"" help:"Actions as seat:action[:amount], e.g. 0:call 1:raise:10"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	room, err := c.room()
	if err != nil {
		return err
	}

	deal, err := engine.Deal(room, c.seatedPlayers(), c.Seed)
	if err != nil {
		return err
	}
	logger.Info("hand dealt", "hand", deal.State.HandID, "seed", deal.SeedUsed)

	state := deal.State
	players := deal.Players
	secret := deal.Secret

	for _, raw := range c.Actions {
		seat, action, amount, err := parseScriptAction(raw)
		if err != nil {
			return err
		}

		in := engine.ApplyInput{Room: room, Players: players, State: state, Secret: &secret}
		res, err := engine.ApplyAction(in, seat, action, amount)
		if err != nil {
			return fmt.Errorf("action %q: %w", raw, err)
		}
		state = res.State
		players = res.Players

		logger.Info("action applied", "seat", seat, "action", action, "street", state.Street, "pot", state.Pot)
		if res.HandCompleted {
			printResult(res.Result)
			return nil
		}
	}

	printState(&state, players)
	return nil
}

type SimulateCmd struct {
	Hands   int   `default:"1000" help:"Number of hands to simulate"`
	Players int   `default:"4" help:"Players per hand"`
	Stack   int   `default:"200" help:"Starting stack per player"`
	Seed    int64 `default:"0" help:"Master seed (0 for random)"`
	Workers int   `default:"4" help:"Parallel workers"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	if c.Seed == 0 {
		c.Seed = int64(os.Getpid())<<20 + int64(c.Hands)
	}

	room := engine.Room{
		ID:         "sim",
		SmallBlind: 1,
		BigBlind:   2,
		MinBuyIn:   100,
		MaxBuyIn:   1000,
		MaxSeats:   6,
	}

	var completed, foldOuts atomic.Int64
	var g errgroup.Group
	g.SetLimit(c.Workers)

	master := randutil.New(c.Seed)
	for hand := 0; hand < c.Hands; hand++ {
		handSeed := master.Int64()
		g.Go(func() error {
			foldOut, err := playRandomHand(room, c.Players, c.Stack, handSeed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", handSeed, err)
			}
			completed.Add(1)
			if foldOut {
				foldOuts.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("simulation complete",
		"hands", completed.Load(),
		"fold_outs", foldOuts.Load(),
		"seed", c.Seed)
	return nil
}

// playRandomHand plays one hand to completion with a random but legal
// policy, verifying that no chip is created or destroyed along the way.
func playRandomHand(room engine.Room, numPlayers, stack int, seed int64) (bool, error) {
	players := make([]engine.SeatedPlayer, numPlayers)
	for i := range players {
		players[i] = engine.SeatedPlayer{Seat: i, Chips: stack, TotalBuyIn: stack}
	}
	bankroll := engine.TotalChips(players)

	deal, err := engine.Deal(room, players, strconv.FormatInt(seed, 10))
	if err != nil {
		return false, err
	}
	if deal.HandCompleted {
		return deal.Result.AutoWinnerSeat >= 0, checkConservation(deal.Players, 0, bankroll)
	}

	rng := randutil.New(seed ^ 0x5eed)
	state := deal.State
	handPlayers := deal.Players

	for turn := 0; turn < 500; turn++ {
		if err := checkConservation(handPlayers, state.Pot, bankroll); err != nil {
			return false, err
		}

		seat := state.ActingSeat
		idx := -1
		for i := range handPlayers {
			if handPlayers[i].Seat == seat {
				idx = i
			}
		}
		p := handPlayers[idx]

		action, amount := randomAction(rng, &state, &p, room.BigBlind)
		in := engine.ApplyInput{Room: room, Players: handPlayers, State: state, Secret: &deal.Secret}
		res, err := engine.ApplyAction(in, seat, action, amount)
		if err != nil {
			return false, fmt.Errorf("%s by seat %d: %w", action, seat, err)
		}
		state = res.State
		handPlayers = res.Players

		if res.HandCompleted {
			return res.AutoWinnerSeat >= 0, checkConservation(handPlayers, 0, bankroll)
		}
	}
	return false, fmt.Errorf("hand did not complete")
}

func randomAction(rng *rand.Rand, state *engine.HandState, p *engine.SeatedPlayer, bigBlind int) (engine.ActionType, int) {
	gap := state.BetToCall - p.StreetWager

	if gap == 0 {
		switch rng.IntN(4) {
		case 0:
			if state.BetToCall == 0 && p.Chips > bigBlind {
				return engine.Bet, bigBlind + rng.IntN(p.Chips-bigBlind+1)
			}
			return engine.Check, 0
		default:
			return engine.Check, 0
		}
	}

	switch rng.IntN(6) {
	case 0:
		return engine.Fold, 0
	case 1:
		if !state.NoRaise[p.Seat] && p.Chips+p.StreetWager >= state.BetToCall+state.MinRaise {
			return engine.Raise, state.BetToCall + state.MinRaise
		}
		return engine.Call, 0
	case 2:
		return engine.AllIn, 0
	default:
		return engine.Call, 0
	}
}

func checkConservation(players []engine.SeatedPlayer, pot, bankroll int) error {
	if total := engine.TotalChips(players) + pot; total != bankroll {
		return fmt.Errorf("chip conservation violated: %d chips in play, started with %d", total, bankroll)
	}
	return nil
}

func parseScriptAction(raw string) (seat int, action engine.ActionType, amount int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("action must be seat:action[:amount], got %q", raw)
	}
	if seat, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid seat in %q: %w", raw, err)
	}
	if action, err = engine.ParseActionType(parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if len(parts) == 3 {
		if amount, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid amount in %q: %w", raw, err)
		}
	}
	return seat, action, amount, nil
}

func printState(state *engine.HandState, players []engine.SeatedPlayer) {
	fmt.Printf("hand %s street %s pot %d bet-to-call %d acting seat %d\n",
		state.HandID, state.Street, state.Pot, state.BetToCall, state.ActingSeat)
	for b, board := range state.Boards {
		fmt.Printf("board %d: %s\n", b+1, formatBoard(board))
	}
	for _, p := range players {
		status := ""
		if p.Folded {
			status = " folded"
		} else if p.AllIn {
			status = " all-in"
		}
		fmt.Printf("seat %d: %d chips, %d wagered%s\n", p.Seat, p.Chips, p.HandWager, status)
	}
}

func printResult(result *engine.HandResult) {
	fmt.Printf("hand %s complete, pot %d\n", result.HandID, result.FinalPot)
	if result.AutoWinnerSeat >= 0 {
		fmt.Printf("seat %d wins uncontested\n", result.AutoWinnerSeat)
	} else {
		for b, winners := range result.BoardWinners {
			fmt.Printf("board %d (%s) winners: %v\n", b+1, formatBoard(result.Boards[b]), winners)
		}
	}
	for _, p := range result.Payouts {
		fmt.Printf("seat %d collects %d\n", p.Seat, p.Amount)
	}
}

func formatBoard(board []poker.Card) string {
	if len(board) == 0 {
		return "(none)"
	}
	parts := make([]string, len(board))
	for i, c := range board {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
