package engine

import (
	"fmt"

	"github.com/lox/pokerrooms/poker"
)

// SeatHand pairs a seat with its hole cards for showdown evaluation.
type SeatHand struct {
	Seat  int
	Cards poker.Hand
}

// ShowdownResult holds the winner set per board. Ties within a board yield
// multiple winners for that board.
type ShowdownResult struct {
	Board1Winners []int
	Board2Winners []int
}

// EvaluateShowdown ranks each remaining player's best hand against one or
// two community boards, evaluated independently. board2 may be nil for
// single-board hands.
func EvaluateShowdown(hands []SeatHand, board1, board2 []poker.Card) (*ShowdownResult, error) {
	if len(board1) == 0 {
		return nil, fmt.Errorf("%w: no board to evaluate", ErrMissingSecret)
	}
	if len(hands) == 0 {
		return nil, &EvaluationError{Seat: -1, Detail: "no hands to evaluate"}
	}

	result := &ShowdownResult{}
	var err error
	if result.Board1Winners, err = bestSeats(hands, board1); err != nil {
		return nil, err
	}
	if board2 != nil {
		if result.Board2Winners, err = bestSeats(hands, board2); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// bestSeats returns the seats holding the strongest hand against one board.
func bestSeats(hands []SeatHand, board []poker.Card) ([]int, error) {
	if len(board) != 5 {
		return nil, &EvaluationError{Seat: -1, Detail: fmt.Sprintf("board has %d cards, want 5", len(board))}
	}
	boardHand := poker.NewHand(board...)
	if boardHand.CountCards() != 5 {
		return nil, &EvaluationError{Seat: -1, Detail: "board contains duplicate cards"}
	}

	var best poker.HandRank
	var winners []int
	for _, sh := range hands {
		if sh.Cards.CountCards() != 2 {
			return nil, &EvaluationError{Seat: sh.Seat, Detail: fmt.Sprintf("expected 2 hole cards, got %d", sh.Cards.CountCards())}
		}
		full := sh.Cards | boardHand
		rank, err := poker.Evaluate7(full)
		if err != nil {
			return nil, &EvaluationError{Seat: sh.Seat, Detail: err.Error()}
		}

		switch poker.CompareHands(rank, best) {
		case 1:
			best = rank
			winners = []int{sh.Seat}
		case 0:
			winners = append(winners, sh.Seat)
		}
	}
	return winners, nil
}
