package engine

import (
	"fmt"

	"github.com/lox/pokerrooms/poker"
)

// Street represents the betting round.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Complete
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "complete"}[s]
}

// ActionType is the closed set of player actions. Dispatch over it is an
// exhaustive switch so a new action kind is a compile-visible decision.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "all_in"}[a]
}

// ParseActionType parses an action name as used on the wire and in the CLI.
func ParseActionType(s string) (ActionType, error) {
	for a := Fold; a <= AllIn; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// ActionRecord is one entry in the append-only hand history. Forced bets are
// logged with post_* kinds alongside the player actions.
type ActionRecord struct {
	Seat   int
	Kind   string
	Amount int
	Street Street
}

const (
	recordPostSmallBlind = "post_small_blind"
	recordPostBigBlind   = "post_big_blind"
	recordPostAnte       = "post_ante"
)

// HandState is the public, player-visible snapshot of a hand in progress.
// Boards hold only the revealed prefix of each board; the full boards live in
// the HandSecret and are never serialized into this struct.
type HandState struct {
	HandID     string
	HandNumber int
	ButtonSeat int
	SBSeat     int
	BBSeat     int

	Street     Street
	Pot        int
	BetToCall  int
	MinRaise   int
	ActingSeat int

	// Acted tracks which seats have acted since the last full raise; posting
	// a blind does not count, which is what gives the big blind its preflop
	// option. NoRaise marks seats whose action was closed by a short all-in:
	// they may only fold or call until a full raise reopens the street.
	Acted   map[int]bool
	NoRaise map[int]bool

	Boards  [][]poker.Card
	History []ActionRecord

	// Version supports the storage tier's compare-and-swap. The engine bumps
	// it on every accepted action but performs no locking itself.
	Version uint64
}

// HandSecret is the dealer-held record for a hand: the seed that reproduces
// the shuffle, the full boards for every street, and each seat's hole cards.
// It is destroyed with the hand and never reaches a player-facing surface.
type HandSecret struct {
	HandID    string
	Seed      string
	Boards    [][]poker.Card
	HoleCards map[int]poker.Hand
}

// Clone returns a deep copy of the state. Apply never mutates its input
// snapshot; it clones, mutates the clone, and returns it.
func (s *HandState) Clone() HandState {
	out := *s
	out.Acted = make(map[int]bool, len(s.Acted))
	for k, v := range s.Acted {
		out.Acted[k] = v
	}
	out.NoRaise = make(map[int]bool, len(s.NoRaise))
	for k, v := range s.NoRaise {
		out.NoRaise[k] = v
	}
	out.Boards = make([][]poker.Card, len(s.Boards))
	for i, b := range s.Boards {
		out.Boards[i] = append([]poker.Card(nil), b...)
	}
	out.History = append([]ActionRecord(nil), s.History...)
	return out
}

// seatIndex returns the index of a seat in the player slice, or -1.
func seatIndex(players []SeatedPlayer, seat int) int {
	for i := range players {
		if players[i].Seat == seat {
			return i
		}
	}
	return -1
}

// nextSeat returns the first seat clockwise after from (ascending seat
// numbers, wrapping) satisfying pred, or -1 when none does. Seats are assumed
// sorted ascending, as the persistence layer supplies them.
func nextSeat(players []SeatedPlayer, from int, pred func(*SeatedPlayer) bool) int {
	n := len(players)
	if n == 0 {
		return -1
	}
	start := 0
	for i := range players {
		if players[i].Seat > from {
			start = i
			break
		}
		start = i + 1 // every seat <= from, wrap to 0 below
	}
	for i := 0; i < n; i++ {
		p := &players[(start+i)%n]
		if pred(p) {
			return p.Seat
		}
	}
	return -1
}

func remainingSeats(players []SeatedPlayer) []int {
	var seats []int
	for i := range players {
		if !players[i].Folded {
			seats = append(seats, players[i].Seat)
		}
	}
	return seats
}
