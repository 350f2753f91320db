package engine

import "fmt"

// Room holds the table configuration a hand is dealt under.
type Room struct {
	ID          string
	SmallBlind  int
	BigBlind    int
	MinBuyIn    int
	MaxBuyIn    int
	MaxSeats    int
	BombPotAnte int
	DoubleBoard bool
	Paused      bool
	ButtonSeat  int
	HandNumber  int
}

// Validate checks the room invariants.
func (r *Room) Validate() error {
	if r.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", r.SmallBlind)
	}
	if r.BigBlind <= r.SmallBlind {
		return fmt.Errorf("big blind %d must be greater than small blind %d", r.BigBlind, r.SmallBlind)
	}
	if r.MaxBuyIn < r.MinBuyIn {
		return fmt.Errorf("max buy-in %d must be at least min buy-in %d", r.MaxBuyIn, r.MinBuyIn)
	}
	if r.MaxSeats < 2 || r.MaxSeats > 10 {
		return fmt.Errorf("max seats must be between 2 and 10, got %d", r.MaxSeats)
	}
	if r.BombPotAnte < 0 {
		return fmt.Errorf("bomb pot ante must not be negative, got %d", r.BombPotAnte)
	}
	return nil
}

// SeatedPlayer is one seat's row in a room. Stacks only ever decrease through
// wagers and increase through payouts.
type SeatedPlayer struct {
	Seat       int
	ConnID     string
	Chips      int
	TotalBuyIn int
	Folded     bool
	AllIn      bool

	// StreetWager is the amount wagered on the current street; HandWager is
	// the cumulative contribution to the pot across the whole hand. The pot
	// accountant layers side pots from HandWager at completion.
	StreetWager int
	HandWager   int
}

// CanAct reports whether the seat can still take a betting action.
func (p *SeatedPlayer) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// clonePlayers deep-copies a player slice so results never alias inputs.
func clonePlayers(players []SeatedPlayer) []SeatedPlayer {
	out := make([]SeatedPlayer, len(players))
	copy(out, players)
	return out
}

// TotalChips sums stacks across seats. Together with the pot this is the
// conserved quantity for a hand.
func TotalChips(players []SeatedPlayer) int {
	total := 0
	for i := range players {
		total += players[i].Chips
	}
	return total
}
