package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for deal and action validation. Validation failures never
// mutate state: callers reject the request and surface the reason.
var (
	// ErrInsufficientPlayers is returned when a deal is requested with fewer
	// than two active players.
	ErrInsufficientPlayers = errors.New("at least 2 active players required")

	// ErrOutOfTurn is returned when a seat acts that is not the current actor.
	ErrOutOfTurn = errors.New("not this seat's turn to act")

	// ErrInvalidSeed is returned when a supplied deck seed cannot be parsed.
	ErrInvalidSeed = errors.New("invalid deck seed")

	// ErrMissingSecret signals the secret record is absent when the hand
	// needs it. This is data corruption, fatal for the hand: the engine
	// never fabricates a result around it.
	ErrMissingSecret = errors.New("hand secret missing")
)

// IllegalReason is the specific cause of a rejected action.
type IllegalReason string

const (
	ReasonWrongAmount    IllegalReason = "wrong_amount"
	ReasonBelowMinRaise  IllegalReason = "below_minimum_raise"
	ReasonExceedsStack   IllegalReason = "exceeds_stack"
	ReasonStreetClosed   IllegalReason = "street_closed"
	ReasonNotReopened    IllegalReason = "action_not_reopened"
	ReasonOutstandingBet IllegalReason = "outstanding_bet"
	ReasonNothingToCall  IllegalReason = "nothing_to_call"
	ReasonUnknownSeat    IllegalReason = "unknown_seat"
)

// IllegalActionError rejects an action with the specific reason.
type IllegalActionError struct {
	Action ActionType
	Reason IllegalReason
	Detail string
}

func (e *IllegalActionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("illegal %s: %s (%s)", e.Action, e.Reason, e.Detail)
	}
	return fmt.Sprintf("illegal %s: %s", e.Action, e.Reason)
}

func illegalf(action ActionType, reason IllegalReason, format string, args ...any) error {
	return &IllegalActionError{Action: action, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// EvaluationError reports malformed hole-card or board data at showdown.
type EvaluationError struct {
	Seat   int // -1 when the problem is a board, not a seat
	Detail string
}

func (e *EvaluationError) Error() string {
	if e.Seat >= 0 {
		return fmt.Sprintf("evaluation failed for seat %d: %s", e.Seat, e.Detail)
	}
	return fmt.Sprintf("evaluation failed: %s", e.Detail)
}
