package engine

import "sort"

// Pot is one layer of the pot ledger: a main pot or a side pot. Eligible
// lists the non-folded seats that contributed at least this layer's
// threshold and may therefore win it.
type Pot struct {
	Amount    int
	Threshold int
	Eligible  []int
}

// BuildPots partitions the hand's cumulative contributions into ordered
// layers by ascending all-in threshold. Chips from folded seats stay in the
// layers they funded but folded seats are never eligible. A layer funded by
// a single seat (an uncalled bet) comes back to that seat through the payout
// step, since it is the sole eligible winner.
func BuildPots(players []SeatedPlayer) []Pot {
	levels := make(map[int]bool)
	maxContribution := 0
	for i := range players {
		p := &players[i]
		if p.HandWager > maxContribution {
			maxContribution = p.HandWager
		}
		if p.AllIn && !p.Folded && p.HandWager > 0 {
			levels[p.HandWager] = true
		}
	}
	if maxContribution == 0 {
		return nil
	}
	levels[maxContribution] = true

	thresholds := make([]int, 0, len(levels))
	for level := range levels {
		thresholds = append(thresholds, level)
	}
	sort.Ints(thresholds)

	var pots []Pot
	prev := 0
	carry := 0
	for _, threshold := range thresholds {
		pot := Pot{Threshold: threshold, Amount: carry}
		carry = 0
		for i := range players {
			p := &players[i]
			contribution := min(p.HandWager, threshold) - min(p.HandWager, prev)
			pot.Amount += contribution
		}
		for i := range players {
			p := &players[i]
			if !p.Folded && p.HandWager >= threshold {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if pot.Amount > 0 {
			if len(pot.Eligible) > 0 {
				pots = append(pots, pot)
			} else if len(pots) > 0 {
				// A layer funded only by folded seats cannot strand chips.
				pots[len(pots)-1].Amount += pot.Amount
			} else {
				carry = pot.Amount
			}
		}
		prev = threshold
	}

	return pots
}

// PotTotal sums every layer.
func PotTotal(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
