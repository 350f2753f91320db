package engine

import "github.com/lox/pokerrooms/poker"

// ApplyInput is the snapshot an action is applied against. The engine never
// mutates it: results are fresh copies the caller persists, replacing the
// previous snapshot under its own serialization guarantee (the engine is not
// safe to invoke twice concurrently for the same room).
type ApplyInput struct {
	Room    Room
	Players []SeatedPlayer
	State   HandState
	Secret  *HandSecret
}

// ActionResult is the outcome of one applied action.
type ActionResult struct {
	State          HandState
	Players        []SeatedPlayer
	HandCompleted  bool
	AutoWinnerSeat int // -1 unless the hand folded out to one player
	PotAwarded     int // final pot, set when the hand completed
	Result         *HandResult
}

// ApplyAction validates and applies a single player action, advancing the
// street or completing the hand as a consequence. amount is the seat's total
// wager for the street on bet/raise and is ignored otherwise.
func ApplyAction(in ApplyInput, seat int, action ActionType, amount int) (*ActionResult, error) {
	if in.State.Street > River {
		return nil, illegalf(action, ReasonStreetClosed, "hand is at %s", in.State.Street)
	}

	st := in.State.Clone()
	players := clonePlayers(in.Players)

	idx := seatIndex(players, seat)
	if idx < 0 {
		return nil, illegalf(action, ReasonUnknownSeat, "seat %d not in hand", seat)
	}
	if seat != st.ActingSeat {
		return nil, ErrOutOfTurn
	}
	p := &players[idx]
	if !p.CanAct() {
		return nil, illegalf(action, ReasonStreetClosed, "seat %d cannot act", seat)
	}

	recordKind := action.String()

	switch action {
	case Fold:
		p.Folded = true

	case Check:
		if p.StreetWager != st.BetToCall {
			return nil, illegalf(action, ReasonOutstandingBet, "must call %d", st.BetToCall-p.StreetWager)
		}

	case Call:
		gap := st.BetToCall - p.StreetWager
		if gap <= 0 {
			return nil, illegalf(action, ReasonNothingToCall, "no outstanding bet")
		}
		commit(&st, p, min(gap, p.Chips))
		if p.AllIn {
			// Call for less than the gap: the stack ran out, so this is an
			// all-in, not a short call that caps the bet.
			recordKind = AllIn.String()
		}

	case Bet:
		if st.BetToCall != 0 {
			return nil, illegalf(action, ReasonWrongAmount, "facing a bet of %d, raise instead", st.BetToCall)
		}
		available := p.Chips + p.StreetWager
		if amount <= 0 {
			return nil, illegalf(action, ReasonWrongAmount, "bet must be positive")
		}
		if amount > available {
			return nil, illegalf(action, ReasonExceedsStack, "bet %d exceeds stack %d", amount, available)
		}
		if amount < in.Room.BigBlind && amount < available {
			return nil, illegalf(action, ReasonBelowMinRaise, "first bet must be at least the big blind %d", in.Room.BigBlind)
		}
		commit(&st, p, amount-p.StreetWager)
		// An all-in open below the big blind is a short bet: it does not set
		// the raise increment or reopen anything, same as the all-in verb.
		if amount >= st.MinRaise {
			fullRaise(&st, seat, amount)
		} else {
			shortRaise(&st, players, seat, amount)
		}

	case Raise:
		if st.BetToCall == 0 {
			return nil, illegalf(action, ReasonWrongAmount, "nothing to raise, bet instead")
		}
		if st.NoRaise[seat] {
			return nil, illegalf(action, ReasonNotReopened, "short all-in did not reopen the action")
		}
		available := p.Chips + p.StreetWager
		if amount > available {
			return nil, illegalf(action, ReasonExceedsStack, "raise to %d exceeds stack %d", amount, available)
		}
		if amount <= st.BetToCall {
			return nil, illegalf(action, ReasonWrongAmount, "raise to %d must exceed current bet %d", amount, st.BetToCall)
		}
		minTotal := st.BetToCall + st.MinRaise
		if amount < minTotal && amount < available {
			return nil, illegalf(action, ReasonBelowMinRaise, "minimum raise is to %d", minTotal)
		}
		commit(&st, p, amount-p.StreetWager)
		if amount >= minTotal {
			fullRaise(&st, seat, amount)
		} else {
			shortRaise(&st, players, seat, amount)
		}

	case AllIn:
		total := p.Chips + p.StreetWager
		commit(&st, p, p.Chips)
		if total > st.BetToCall {
			if total-st.BetToCall >= st.MinRaise {
				fullRaise(&st, seat, total)
			} else {
				shortRaise(&st, players, seat, total)
			}
		}

	default:
		return nil, illegalf(action, ReasonWrongAmount, "unknown action")
	}

	st.Acted[seat] = true
	st.History = append(st.History, ActionRecord{Seat: seat, Kind: recordKind, Amount: p.StreetWager, Street: st.Street})
	st.Version++
	st.ActingSeat = nextSeat(players, seat, (*SeatedPlayer).CanAct)

	return finish(&in.Room, players, &st, in.Secret)
}

// commit moves chips from a stack into the pot, flagging all-in when the
// stack empties. Stacks never go negative: callers cap amounts first.
func commit(st *HandState, p *SeatedPlayer, amount int) {
	p.Chips -= amount
	p.StreetWager += amount
	p.HandWager += amount
	st.Pot += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// fullRaise applies a bet or raise that meets the minimum: everyone else
// must act again and may re-raise.
func fullRaise(st *HandState, seat, total int) {
	st.MinRaise = total - st.BetToCall
	st.BetToCall = total
	st.Acted = map[int]bool{seat: true}
	st.NoRaise = map[int]bool{}
}

// shortRaise applies an all-in below the minimum raise: the total still must
// be called, but seats that already matched the smaller bet may only fold or
// call, and the raise increment is left untouched for any later full raise.
func shortRaise(st *HandState, players []SeatedPlayer, seat, total int) {
	st.BetToCall = total
	for i := range players {
		p := &players[i]
		if p.Seat != seat && p.CanAct() && st.Acted[p.Seat] {
			st.NoRaise[p.Seat] = true
		}
	}
}

// finish checks fold-out and street closure after an accepted action (or a
// deal that left no one able to act), advancing streets, running out boards,
// and settling at showdown.
func finish(room *Room, players []SeatedPlayer, st *HandState, secret *HandSecret) (*ActionResult, error) {
	res := &ActionResult{AutoWinnerSeat: -1}

	if remaining := remainingSeats(players); len(remaining) == 1 {
		st.Street = Complete
		st.ActingSeat = -1
		res.Result = settleFoldOut(st, players, remaining[0])
		res.HandCompleted = true
		res.AutoWinnerSeat = remaining[0]
		res.PotAwarded = st.Pot
		res.State = *st
		res.Players = players
		return res, nil
	}

	for streetClosed(players, st) {
		if st.Street == River {
			st.Street = Showdown
			result, err := settleShowdown(room, players, st, secret)
			if err != nil {
				return nil, err
			}
			st.Street = Complete
			st.ActingSeat = -1
			res.Result = result
			res.HandCompleted = true
			res.PotAwarded = st.Pot
			break
		}
		if err := advanceStreet(room, players, st, secret); err != nil {
			return nil, err
		}
	}

	res.State = *st
	res.Players = players
	return res, nil
}

// streetClosed reports whether every seat that can still act has matched the
// bet-to-call and acted since the last full raise. Seats that are folded or
// all-in never hold a street open. When at most one seat can act and it owes
// nothing, no further betting is possible and the board runs out without
// requiring checks.
func streetClosed(players []SeatedPlayer, st *HandState) bool {
	live := 0
	acted := true
	for i := range players {
		p := &players[i]
		if !p.CanAct() {
			continue
		}
		live++
		if p.StreetWager != st.BetToCall {
			return false
		}
		if !st.Acted[p.Seat] {
			acted = false
		}
	}
	if live <= 1 {
		return true
	}
	return acted
}

// advanceStreet collects street wagers, reveals the next cards of every
// board from the secret, and hands action to the first seat after the button.
func advanceStreet(room *Room, players []SeatedPlayer, st *HandState, secret *HandSecret) error {
	if secret == nil || len(secret.Boards) == 0 {
		return ErrMissingSecret
	}

	for i := range players {
		players[i].StreetWager = 0
	}
	st.BetToCall = 0
	st.MinRaise = room.BigBlind
	st.Acted = map[int]bool{}
	st.NoRaise = map[int]bool{}
	st.Street++

	reveal := map[Street]int{Flop: 3, Turn: 4, River: 5}[st.Street]
	for b := range secret.Boards {
		if len(secret.Boards[b]) < reveal {
			return ErrMissingSecret
		}
		st.Boards[b] = append([]poker.Card(nil), secret.Boards[b][:reveal]...)
	}

	st.ActingSeat = nextSeat(players, st.ButtonSeat, (*SeatedPlayer).CanAct)
	return nil
}
