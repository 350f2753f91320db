package poker

import (
	"fmt"
	"math/bits"
)

// HandRank is the strength of a best five-card hand, packed so that a plain
// integer comparison orders any two hands: the category sits in the high bits
// and the tie-break ranks fill the low bits. Higher values are stronger.
type HandRank uint32

// HandType enumerates hand categories from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const tiebreakBits = 20

// Type returns the category of the hand.
func (hr HandRank) Type() HandType {
	return HandType(hr >> tiebreakBits)
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	switch hr.Type() {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for a tie.
func CompareHands(a, b HandRank) int {
	if a > b {
		return 1
	} else if a < b {
		return -1
	}
	return 0
}

// Evaluate7 evaluates the best 5-card hand from exactly 7 cards.
func Evaluate7(hand Hand) (HandRank, error) {
	if n := hand.CountCards(); n != 7 {
		return 0, fmt.Errorf("expected 7 cards, got %d", n)
	}
	return evaluateUnchecked(hand), nil
}

// Evaluate evaluates the best 5-card hand from 5 to 7 cards.
func Evaluate(hand Hand) (HandRank, error) {
	if n := hand.CountCards(); n < 5 || n > 7 {
		return 0, fmt.Errorf("expected 5-7 cards, got %d", n)
	}
	return evaluateUnchecked(hand), nil
}

func evaluateUnchecked(hand Hand) HandRank {
	var suitMasks [NumSuits]uint16
	var rankMask uint16
	for suit := uint8(0); suit < NumSuits; suit++ {
		mask := hand.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}

	// Flush check first. With at most 7 cards a flush cannot coexist with
	// quads or a full house, so a straight flush can return immediately and
	// a plain flush only has to wait for the straight-flush scan.
	var flushRank HandRank
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return pack(StraightFlush, uint32(high))
		}
		if r := pack(Flush, packTopRanks(suitMask, 5)); r > flushRank {
			flushRank = r
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestRank(quadsMask); quad >= 0 {
		kicker := highestRank(rankMask &^ (1 << quad))
		return pack(FourOfAKind, uint32(quad)<<4|uint32(kicker))
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		pairCandidates := pairsMask | (tripsMask &^ (1 << trip))
		if pair := highestRank(pairCandidates); pair >= 0 {
			return pack(FullHouse, uint32(trip)<<4|uint32(pair))
		}
	}

	if flushRank > 0 {
		return flushRank
	}

	if high := straightHigh(rankMask); high > 0 {
		return pack(Straight, uint32(high))
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		kickers := rankMask &^ (1 << trip)
		k1 := highestRank(kickers)
		k2 := highestRank(kickers &^ (1 << k1))
		return pack(ThreeOfAKind, uint32(trip)<<8|uint32(k1)<<4|uint32(k2))
	}

	if hi := highestRank(pairsMask); hi >= 0 {
		if lo := highestRank(pairsMask &^ (1 << hi)); lo >= 0 {
			kicker := highestRank(rankMask &^ (1 << hi) &^ (1 << lo))
			return pack(TwoPair, uint32(hi)<<8|uint32(lo)<<4|uint32(kicker))
		}
		kickers := rankMask &^ (1 << hi)
		k1 := highestRank(kickers)
		k2 := highestRank(kickers &^ (1 << k1))
		k3 := highestRank(kickers &^ (1 << k1) &^ (1 << k2))
		return pack(Pair, uint32(hi)<<12|uint32(k1)<<8|uint32(k2)<<4|uint32(k3))
	}

	return pack(HighCard, packTopRanks(rankMask, 5))
}

func pack(t HandType, tiebreak uint32) HandRank {
	return HandRank(uint32(t)<<tiebreakBits | tiebreak)
}

// packTopRanks packs the n highest set ranks into descending 4-bit nibbles.
func packTopRanks(mask uint16, n int) uint32 {
	var packed uint32
	for i := 0; i < n; i++ {
		r := highestRank(mask)
		if r < 0 {
			r = 0
		} else {
			mask &^= 1 << r
		}
		packed = packed<<4 | uint32(r)
	}
	return packed
}

// highestRank returns the highest rank present in the bitmask (or -1 when empty).
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// straightHigh returns the high-card rank of the best straight in the rank
// mask (0 if none). The wheel reports its five as the high card (rank 3).
func straightHigh(mask uint16) uint8 {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	mask &= 0x1FFF

	// Bitwise cascade finds runs of five consecutive ranks in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := uint8(bits.Len16(seq) - 1)
		return low + 4
	}

	if mask&wheelMask == wheelMask {
		return 3
	}
	return 0
}
