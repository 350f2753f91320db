package engine

import (
	"errors"
	"testing"
)

func testRoom() Room {
	return Room{
		ID:         "test",
		SmallBlind: 1,
		BigBlind:   2,
		MinBuyIn:   100,
		MaxBuyIn:   1000,
		MaxSeats:   6,
	}
}

func testPlayers(stacks ...int) []SeatedPlayer {
	players := make([]SeatedPlayer, len(stacks))
	for i, stack := range stacks {
		players[i] = SeatedPlayer{Seat: i, Chips: stack, TotalBuyIn: stack}
	}
	return players
}

func TestDealDeterminism(t *testing.T) {
	t.Parallel()
	room := testRoom()

	a, err := Deal(room, testPlayers(200, 200, 200), "12345")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Deal(room, testPlayers(200, 200, 200), "12345")
	if err != nil {
		t.Fatal(err)
	}

	for seat, hand := range a.HoleCards {
		if b.HoleCards[seat] != hand {
			t.Errorf("seat %d hole cards differ: %s vs %s", seat, hand, b.HoleCards[seat])
		}
	}
	for bi := range a.Secret.Boards {
		for ci, c := range a.Secret.Boards[bi] {
			if b.Secret.Boards[bi][ci] != c {
				t.Errorf("board %d card %d differs: %s vs %s", bi, ci, c, b.Secret.Boards[bi][ci])
			}
		}
	}
	if a.SeedUsed != "12345" || b.SeedUsed != "12345" {
		t.Errorf("seed not recorded: %q, %q", a.SeedUsed, b.SeedUsed)
	}
}

func TestDealDifferentSeedsDiffer(t *testing.T) {
	t.Parallel()
	room := testRoom()

	a, err := Deal(room, testPlayers(200, 200), "1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Deal(room, testPlayers(200, 200), "2")
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for seat, hand := range a.HoleCards {
		if b.HoleCards[seat] != hand {
			same = false
		}
	}
	if same && a.Secret.Boards[0][0] == b.Secret.Boards[0][0] {
		t.Error("different seeds produced identical deals")
	}
}

func TestDealRandomSeedIsRecorded(t *testing.T) {
	t.Parallel()
	res, err := Deal(testRoom(), testPlayers(200, 200), "")
	if err != nil {
		t.Fatal(err)
	}
	if res.SeedUsed == "" {
		t.Fatal("expected a generated seed to be recorded")
	}

	// Replaying the recorded seed reproduces the deal.
	replay, err := Deal(testRoom(), testPlayers(200, 200), res.SeedUsed)
	if err != nil {
		t.Fatal(err)
	}
	for seat, hand := range res.HoleCards {
		if replay.HoleCards[seat] != hand {
			t.Errorf("seat %d not reproduced from recorded seed", seat)
		}
	}
}

func TestDealInvalidSeed(t *testing.T) {
	t.Parallel()
	_, err := Deal(testRoom(), testPlayers(200, 200), "not-a-number")
	if !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("expected ErrInvalidSeed, got %v", err)
	}
}

func TestDealInsufficientPlayers(t *testing.T) {
	t.Parallel()
	_, err := Deal(testRoom(), testPlayers(200), "1")
	if !errors.Is(err, ErrInsufficientPlayers) {
		t.Errorf("expected ErrInsufficientPlayers, got %v", err)
	}
}

func TestDealPausedRoom(t *testing.T) {
	t.Parallel()
	room := testRoom()
	room.Paused = true
	if _, err := Deal(room, testPlayers(200, 200), "1"); err == nil {
		t.Error("expected an error dealing in a paused room")
	}
}

func TestDealBlindsThreeHanded(t *testing.T) {
	t.Parallel()
	room := testRoom()
	room.ButtonSeat = 2 // wraps: button lands on seat 0

	res, err := Deal(room, testPlayers(200, 200, 200), "42")
	if err != nil {
		t.Fatal(err)
	}

	st := res.State
	if st.ButtonSeat != 0 {
		t.Errorf("button = %d, want 0", st.ButtonSeat)
	}
	if st.SBSeat != 1 || st.BBSeat != 2 {
		t.Errorf("blinds at %d/%d, want 1/2", st.SBSeat, st.BBSeat)
	}
	if st.ActingSeat != 0 {
		t.Errorf("first to act = %d, want 0 (left of big blind)", st.ActingSeat)
	}
	if st.BetToCall != 2 || st.Pot != 3 {
		t.Errorf("bet-to-call %d pot %d, want 2 and 3", st.BetToCall, st.Pot)
	}

	sb := res.Players[seatIndex(res.Players, 1)]
	bb := res.Players[seatIndex(res.Players, 2)]
	if sb.Chips != 199 || sb.StreetWager != 1 {
		t.Errorf("small blind: chips %d wager %d", sb.Chips, sb.StreetWager)
	}
	if bb.Chips != 198 || bb.StreetWager != 2 {
		t.Errorf("big blind: chips %d wager %d", bb.Chips, bb.StreetWager)
	}
}

func TestDealBlindsHeadsUp(t *testing.T) {
	t.Parallel()
	room := testRoom()
	room.ButtonSeat = 1 // button wraps to seat 0

	res, err := Deal(room, testPlayers(200, 200), "42")
	if err != nil {
		t.Fatal(err)
	}

	st := res.State
	// Heads-up the button posts the small blind and acts first preflop.
	if st.SBSeat != st.ButtonSeat {
		t.Errorf("small blind at %d, want button seat %d", st.SBSeat, st.ButtonSeat)
	}
	if st.ActingSeat != st.ButtonSeat {
		t.Errorf("first to act = %d, want button %d", st.ActingSeat, st.ButtonSeat)
	}
}

func TestDealHoleCardsUniqueAcrossSeats(t *testing.T) {
	t.Parallel()
	res, err := Deal(testRoom(), testPlayers(200, 200, 200, 200), "99")
	if err != nil {
		t.Fatal(err)
	}

	var all uint64
	count := 0
	for _, hand := range res.HoleCards {
		if hand.CountCards() != 2 {
			t.Errorf("expected 2 hole cards, got %d", hand.CountCards())
		}
		if all&uint64(hand) != 0 {
			t.Error("hole cards overlap between seats")
		}
		all |= uint64(hand)
		count++
	}
	if count != 4 {
		t.Errorf("expected 4 seats dealt, got %d", count)
	}
	for _, c := range res.Secret.Boards[0] {
		if all&uint64(c) != 0 {
			t.Error("board card also dealt as a hole card")
		}
	}
}

func TestDealRevealsNothing(t *testing.T) {
	t.Parallel()
	res, err := Deal(testRoom(), testPlayers(200, 200), "5")
	if err != nil {
		t.Fatal(err)
	}
	for _, board := range res.State.Boards {
		if len(board) != 0 {
			t.Errorf("preflop board should be empty, has %d cards", len(board))
		}
	}
	if len(res.Secret.Boards[0]) != 5 {
		t.Errorf("secret board should hold 5 cards, has %d", len(res.Secret.Boards[0]))
	}
}

func TestDealDoubleBoard(t *testing.T) {
	t.Parallel()
	room := testRoom()
	room.DoubleBoard = true

	res, err := Deal(room, testPlayers(200, 200), "5")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Secret.Boards) != 2 {
		t.Fatalf("expected 2 secret boards, got %d", len(res.Secret.Boards))
	}

	var all uint64
	for _, board := range res.Secret.Boards {
		if len(board) != 5 {
			t.Errorf("board should hold 5 cards, has %d", len(board))
		}
		for _, c := range board {
			if all&uint64(c) != 0 {
				t.Error("card appears on both boards")
			}
			all |= uint64(c)
		}
	}
}

func TestDealBombPotAnte(t *testing.T) {
	t.Parallel()
	room := testRoom()
	room.BombPotAnte = 10

	res, err := Deal(room, testPlayers(200, 200, 200), "7")
	if err != nil {
		t.Fatal(err)
	}

	// 3 antes of 10 plus blinds 1+2.
	if res.State.Pot != 33 {
		t.Errorf("pot = %d, want 33", res.State.Pot)
	}
	// Bomb pots run two boards.
	if len(res.Secret.Boards) != 2 {
		t.Errorf("bomb pot dealt %d boards, want 2", len(res.Secret.Boards))
	}
	for _, p := range res.Players {
		if p.HandWager < 10 {
			t.Errorf("seat %d wagered %d, want at least the ante", p.Seat, p.HandWager)
		}
	}
}

func TestDealConservation(t *testing.T) {
	t.Parallel()
	players := testPlayers(200, 150, 75)
	before := TotalChips(players)

	res, err := Deal(testRoom(), players, "11")
	if err != nil {
		t.Fatal(err)
	}
	if got := TotalChips(res.Players) + res.State.Pot; got != before {
		t.Errorf("chips not conserved: %d, want %d", got, before)
	}
}

func TestDealForcedAllInRunsOut(t *testing.T) {
	t.Parallel()
	room := testRoom()
	room.BombPotAnte = 500 // exceeds every stack

	players := testPlayers(50, 50)
	before := TotalChips(players)

	res, err := Deal(room, players, "3")
	if err != nil {
		t.Fatal(err)
	}
	if !res.HandCompleted {
		t.Fatal("hand with every seat all-in from forced bets should complete immediately")
	}
	if res.Result == nil {
		t.Fatal("completed hand should carry a result")
	}
	if got := TotalChips(res.Players); got != before {
		t.Errorf("chips not conserved through run-out: %d, want %d", got, before)
	}
}
