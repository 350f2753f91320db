package engine

import (
	"fmt"
	"sort"
)

// SeatPayout credits one seat at hand completion. Applied exactly once.
type SeatPayout struct {
	Seat   int
	Amount int
}

// PayoutOptions make the odd-chip convention explicit rather than implicit:
// indivisible remainders go one chip per seat starting clockwise from the
// button among the tied winners, cycling until exhausted. OddChipSeat
// overrides the starting point when a different house rule applies.
type PayoutOptions struct {
	ButtonSeat  int
	OddChipSeat int // -1 uses the seat clockwise from the button
}

// Payout splits a pot among the winner set(s). With one board the full
// amount splits evenly across board1Winners; with two boards the pot is cut
// 50/50 between the boards first (board 1 takes the odd chip of an odd pot)
// and each half splits among that board's winners. The credited total always
// equals the pot: a mismatch is a programming error and panics rather than
// under- or over-paying.
func Payout(board1Winners, board2Winners []int, pot int, opts PayoutOptions) []SeatPayout {
	if pot < 0 {
		panic(fmt.Sprintf("negative pot %d", pot))
	}
	if len(board1Winners) == 0 {
		panic("payout requires at least one winner on board 1")
	}

	credits := make(map[int]int)
	if len(board2Winners) == 0 {
		splitAmong(credits, pot, board1Winners, opts)
	} else {
		half := pot / 2
		splitAmong(credits, pot-half, board1Winners, opts)
		splitAmong(credits, half, board2Winners, opts)
	}

	seats := make([]int, 0, len(credits))
	for seat := range credits {
		seats = append(seats, seat)
	}
	sort.Ints(seats)

	payouts := make([]SeatPayout, 0, len(seats))
	total := 0
	for _, seat := range seats {
		payouts = append(payouts, SeatPayout{Seat: seat, Amount: credits[seat]})
		total += credits[seat]
	}
	if total != pot {
		panic(fmt.Sprintf("payout conservation violated: credited %d of pot %d", total, pot))
	}
	return payouts
}

// splitAmong divides amount evenly among winners, assigning odd chips one per
// seat in button-clockwise order, cycling.
func splitAmong(credits map[int]int, amount int, winners []int, opts PayoutOptions) {
	if len(winners) == 0 || amount <= 0 {
		return
	}

	share := amount / len(winners)
	remainder := amount % len(winners)

	ordered := append([]int(nil), winners...)
	from := opts.ButtonSeat
	if opts.OddChipSeat >= 0 {
		from = opts.OddChipSeat - 1
	}
	sort.Slice(ordered, func(i, j int) bool {
		return clockwiseDistance(from, ordered[i]) < clockwiseDistance(from, ordered[j])
	})

	for _, seat := range ordered {
		credits[seat] += share
	}
	for i := 0; remainder > 0; i, remainder = i+1, remainder-1 {
		credits[ordered[i%len(ordered)]]++
	}
}

// clockwiseDistance orders seats clockwise starting immediately after from.
// Seat numbers cap at 10 per room, so any modulus above that works.
func clockwiseDistance(from, seat int) int {
	const wrap = 64
	return ((seat - from - 1) % wrap + wrap) % wrap
}
