package engine

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/lox/pokerrooms/internal/handid"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/lox/pokerrooms/poker"
)

// DealResult is everything the deal step produces. The caller persists it as
// one transactional unit: if storing the secret or hole cards fails, the
// hand state must be rolled back so a hand is never half-created.
type DealResult struct {
	State     HandState
	Players   []SeatedPlayer
	HoleCards map[int]poker.Hand
	Secret    HandSecret
	SeedUsed  string

	// Set when forced bets put every seat all-in and the hand ran straight
	// to showdown with no action possible.
	HandCompleted bool
	Result        *HandResult
}

// Deal starts a new hand: a deterministic shuffle from the seed, hole cards
// round-robin from the seat left of the button, full board(s) precomputed
// into the secret, and blinds (plus any bomb-pot ante) posted as forced
// wagers. An empty seed draws a fresh one; either way the seed used is
// recorded so the hand can be reproduced and audited.
func Deal(room Room, players []SeatedPlayer, seed string) (*DealResult, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if room.Paused {
		return nil, fmt.Errorf("room %s is paused", room.ID)
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrInsufficientPlayers, len(players))
	}

	seedVal, seedUsed, err := resolveSeed(seed)
	if err != nil {
		return nil, err
	}

	rng := randutil.New(seedVal)
	deck := poker.NewDeck(rng)

	players = clonePlayers(players)
	for i := range players {
		players[i].Folded = false
		players[i].AllIn = false
		players[i].StreetWager = 0
		players[i].HandWager = 0
	}

	button := nextSeat(players, room.ButtonSeat, func(*SeatedPlayer) bool { return true })

	st := HandState{
		HandID:     handid.Generate(),
		HandNumber: room.HandNumber + 1,
		ButtonSeat: button,
		Street:     Preflop,
		MinRaise:   room.BigBlind,
		Acted:      map[int]bool{},
		NoRaise:    map[int]bool{},
	}

	// Hole cards one at a time round-robin, starting left of the button.
	holeCards := make(map[int]poker.Hand, len(players))
	order := dealOrder(players, button)
	for round := 0; round < 2; round++ {
		for _, seat := range order {
			h := holeCards[seat]
			h.AddCard(deck.DealOne())
			holeCards[seat] = h
		}
	}

	// Full boards are computed eagerly so the hand is reproducible from the
	// seed, but they live only in the secret: the state reveals a prefix per
	// street and nothing more.
	// Bomb pot hands always run two boards.
	numBoards := 1
	if room.DoubleBoard || room.BombPotAnte > 0 {
		numBoards = 2
	}
	boards := make([][]poker.Card, numBoards)
	st.Boards = make([][]poker.Card, numBoards)
	for b := 0; b < numBoards; b++ {
		boards[b] = append([]poker.Card(nil), deck.Deal(5)...)
		st.Boards[b] = []poker.Card{}
	}

	if room.BombPotAnte > 0 {
		for _, seat := range order {
			p := &players[seatIndex(players, seat)]
			ante := min(room.BombPotAnte, p.Chips)
			p.Chips -= ante
			p.HandWager += ante
			st.Pot += ante
			if p.Chips == 0 {
				p.AllIn = true
			}
			st.History = append(st.History, ActionRecord{Seat: seat, Kind: recordPostAnte, Amount: ante, Street: Preflop})
		}
	}

	// Heads-up the button posts the small blind; otherwise blinds go to the
	// two seats after the button.
	if len(players) == 2 {
		st.SBSeat = button
		st.BBSeat = order[0]
	} else {
		st.SBSeat = order[0]
		st.BBSeat = order[1]
	}
	postBlind(&st, &players[seatIndex(players, st.SBSeat)], room.SmallBlind, recordPostSmallBlind)
	postBlind(&st, &players[seatIndex(players, st.BBSeat)], room.BigBlind, recordPostBigBlind)
	st.BetToCall = room.BigBlind

	st.ActingSeat = nextSeat(players, st.BBSeat, (*SeatedPlayer).CanAct)

	secret := HandSecret{
		HandID:    st.HandID,
		Seed:      seedUsed,
		Boards:    boards,
		HoleCards: holeCards,
	}

	result := &DealResult{
		State:     st,
		Players:   players,
		HoleCards: holeCards,
		Secret:    secret,
		SeedUsed:  seedUsed,
	}

	// Forced bets can leave nobody able to act (every seat all-in from the
	// blinds or ante). The hand then runs out to showdown immediately.
	if st.ActingSeat == -1 || streetClosed(players, &st) {
		fin, err := finish(&room, players, &st, &secret)
		if err != nil {
			return nil, err
		}
		result.State = fin.State
		result.Players = fin.Players
		result.HandCompleted = fin.HandCompleted
		result.Result = fin.Result
	}

	return result, nil
}

func postBlind(st *HandState, p *SeatedPlayer, blind int, kind string) {
	amount := min(blind, p.Chips)
	p.Chips -= amount
	p.StreetWager += amount
	p.HandWager += amount
	st.Pot += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	st.History = append(st.History, ActionRecord{Seat: p.Seat, Kind: kind, Amount: amount, Street: Preflop})
}

// dealOrder returns seats clockwise starting left of the button.
func dealOrder(players []SeatedPlayer, button int) []int {
	order := make([]int, 0, len(players))
	seat := button
	for range players {
		seat = nextSeat(players, seat, func(*SeatedPlayer) bool { return true })
		order = append(order, seat)
	}
	return order
}

// resolveSeed parses a caller-supplied seed or draws a fresh one. Seeds are
// decimal int64 strings.
func resolveSeed(seed string) (int64, string, error) {
	if seed == "" {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, "", fmt.Errorf("generating seed: %w", err)
		}
		val := int64(binary.BigEndian.Uint64(buf[:]))
		return val, strconv.FormatInt(val, 10), nil
	}
	val, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q is not a decimal int64", ErrInvalidSeed, seed)
	}
	return val, seed, nil
}
