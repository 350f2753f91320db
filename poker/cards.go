package poker

import (
	"fmt"
	"math/bits"
)

// Card is a single card encoded as one set bit in a 64-bit word.
// Bit position is suit*13 + rank, so a Hand is the bitwise OR of its cards.
type Card uint64

// Hand is a set of cards encoded as a bitset.
type Hand uint64

// Ranks, ordered from Two (0) to Ace (12).
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	// NumRanks is the number of distinct ranks in a standard deck.
	NumRanks = 13
	// NumSuits is the number of suits in a standard deck.
	NumSuits = 4
	// DeckSize is the number of cards in a standard deck.
	DeckSize = NumRanks * NumSuits
)

var rankChars = "23456789TJQKA"
var suitChars = "cdhs"

// NewCard creates a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint64(suit)*NumRanks + uint64(rank))
}

// Rank returns the card's rank (0-12).
func (c Card) Rank() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)) % NumRanks)
}

// Suit returns the card's suit (0-3).
func (c Card) Suit() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)) / NumRanks)
}

// String returns the card in "As" notation.
func (c Card) String() string {
	if c == 0 || bits.OnesCount64(uint64(c)) != 1 {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// ParseCard parses a two-character card like "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("card must be 2 characters, got %q", s)
	}

	rank := -1
	for i := 0; i < len(rankChars); i++ {
		if rankChars[i] == s[0] {
			rank = i
			break
		}
	}
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank %q", s[0])
	}

	suit := -1
	for i := 0; i < len(suitChars); i++ {
		if suitChars[i] == s[1] {
			suit = i
			break
		}
	}
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit %q", s[1])
	}

	return NewCard(uint8(rank), uint8(suit)), nil
}

// NewHand creates a hand from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// ParseHand parses concatenated card notation like "AsKh".
func ParseHand(s string) (Hand, error) {
	if len(s)%2 != 0 {
		return 0, fmt.Errorf("hand must be pairs of characters, got %q", s)
	}
	var h Hand
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return 0, err
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("duplicate card %s in %q", c, s)
		}
		h |= Hand(c)
	}
	return h, nil
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the hand contains the card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint64(suit) * NumRanks)) & 0x1FFF)
}

// Cards returns the individual cards in the hand, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	rest := uint64(h)
	for rest != 0 {
		low := rest & -rest
		cards = append(cards, Card(low))
		rest &^= low
	}
	return cards
}

// String returns the hand as concatenated card notation.
func (h Hand) String() string {
	buf := make([]byte, 0, h.CountCards()*2)
	for _, c := range h.Cards() {
		buf = append(buf, c.String()...)
	}
	return string(buf)
}
