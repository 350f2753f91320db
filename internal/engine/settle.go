package engine

import (
	"fmt"

	"github.com/lox/pokerrooms/poker"
)

// HandResult is the once-per-hand completion row: final pot, revealed
// boards, winners per board, and the payouts applied to stacks.
type HandResult struct {
	HandID         string
	HandNumber     int
	FinalPot       int
	Boards         [][]poker.Card
	BoardWinners   [][]int
	Payouts        []SeatPayout
	AutoWinnerSeat int // -1 unless the hand ended by fold-out
}

// Settle computes the completion result for a hand whose betting has ended:
// a fold-out when a single seat remains, otherwise a showdown settled from
// the dealer-held secret. Deal and ApplyAction call this internally; it is
// exported so a recorded hand can be re-settled from its stored snapshot for
// auditing. Stacks in the input are not modified.
func Settle(room Room, players []SeatedPlayer, st *HandState, secret *HandSecret) (*HandResult, error) {
	players = clonePlayers(players)
	if remaining := remainingSeats(players); len(remaining) == 1 {
		return settleFoldOut(st, players, remaining[0]), nil
	}
	return settleShowdown(&room, players, st, secret)
}

// settleFoldOut awards the entire pot to the sole remaining seat without
// invoking the evaluator.
func settleFoldOut(st *HandState, players []SeatedPlayer, winnerSeat int) *HandResult {
	result := &HandResult{
		HandID:         st.HandID,
		HandNumber:     st.HandNumber,
		FinalPot:       st.Pot,
		Boards:         st.Boards,
		BoardWinners:   [][]int{{winnerSeat}},
		Payouts:        []SeatPayout{{Seat: winnerSeat, Amount: st.Pot}},
		AutoWinnerSeat: winnerSeat,
	}
	creditPayouts(players, result.Payouts, st.Pot)
	return result
}

// settleShowdown runs the pot accountant, evaluator, and payout calculator
// over the dealer-held secret boards and credits the winners.
func settleShowdown(room *Room, players []SeatedPlayer, st *HandState, secret *HandSecret) (*HandResult, error) {
	if secret == nil || len(secret.Boards) == 0 {
		return nil, fmt.Errorf("%w: cannot settle hand %s", ErrMissingSecret, st.HandID)
	}

	hands := make(map[int]poker.Hand, len(players))
	for _, seat := range remainingSeats(players) {
		cards, ok := secret.HoleCards[seat]
		if !ok {
			return nil, &EvaluationError{Seat: seat, Detail: "no hole cards recorded"}
		}
		hands[seat] = cards
	}

	pots := BuildPots(players)
	if total := PotTotal(pots); total != st.Pot {
		panic(fmt.Sprintf("pot ledger mismatch: layers sum to %d, pot is %d", total, st.Pot))
	}

	var board2 []poker.Card
	if len(secret.Boards) > 1 {
		board2 = secret.Boards[1]
	}

	opts := PayoutOptions{ButtonSeat: st.ButtonSeat, OddChipSeat: -1}
	credits := make(map[int]int)
	var mainWinners [][]int

	for potIdx, pot := range pots {
		eligible := make([]SeatHand, 0, len(pot.Eligible))
		for _, seat := range pot.Eligible {
			eligible = append(eligible, SeatHand{Seat: seat, Cards: hands[seat]})
		}

		var winners *ShowdownResult
		if len(eligible) == 1 {
			// Sole eligible seat wins its layer outright, no evaluation.
			winners = &ShowdownResult{Board1Winners: []int{eligible[0].Seat}}
		} else {
			var err error
			winners, err = EvaluateShowdown(eligible, secret.Boards[0], board2)
			if err != nil {
				return nil, err
			}
		}

		for _, p := range Payout(winners.Board1Winners, winners.Board2Winners, pot.Amount, opts) {
			credits[p.Seat] += p.Amount
		}
		if potIdx == 0 {
			mainWinners = [][]int{winners.Board1Winners}
			if winners.Board2Winners != nil {
				mainWinners = append(mainWinners, winners.Board2Winners)
			}
		}
	}

	payouts := make([]SeatPayout, 0, len(credits))
	for _, p := range players {
		if amount, ok := credits[p.Seat]; ok {
			payouts = append(payouts, SeatPayout{Seat: p.Seat, Amount: amount})
		}
	}

	result := &HandResult{
		HandID:         st.HandID,
		HandNumber:     st.HandNumber,
		FinalPot:       st.Pot,
		Boards:         secret.Boards,
		BoardWinners:   mainWinners,
		Payouts:        payouts,
		AutoWinnerSeat: -1,
	}
	creditPayouts(players, payouts, st.Pot)
	return result, nil
}

// creditPayouts applies payouts to stacks, asserting the conservation
// invariant: the credited total must exactly equal the pot awarded.
func creditPayouts(players []SeatedPlayer, payouts []SeatPayout, pot int) {
	total := 0
	for _, p := range payouts {
		idx := seatIndex(players, p.Seat)
		if idx < 0 {
			panic(fmt.Sprintf("payout to unknown seat %d", p.Seat))
		}
		players[idx].Chips += p.Amount
		total += p.Amount
	}
	if total != pot {
		panic(fmt.Sprintf("payout conservation violated: credited %d of pot %d", total, pot))
	}
}
