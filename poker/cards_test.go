package poker

import (
	"math/bits"
	rand "math/rand/v2"
	"testing"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank() != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank())
	}
	if aceSpades.Suit() != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit())
	}

	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}

	// Two of clubs is the lowest card
	twoClubs := NewCard(Two, Clubs)
	if twoClubs.String() != "2c" {
		t.Errorf("Expected '2c', got %s", twoClubs.String())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCard Card
		wantErr  bool
	}{
		{name: "ace of spades", input: "As", wantCard: NewCard(Ace, Spades)},
		{name: "two of hearts", input: "2h", wantCard: NewCard(Two, Hearts)},
		{name: "king of diamonds", input: "Kd", wantCard: NewCard(King, Diamonds)},
		{name: "ten of clubs", input: "Tc", wantCard: NewCard(Ten, Clubs)},
		{name: "nine of spades", input: "9s", wantCard: NewCard(Nine, Spades)},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "too long", input: "Asd", wantErr: true},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCard(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err == nil && card != tc.wantCard {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.wantCard)
			}
		})
	}
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()
	cards := make(map[string]bool)

	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := uint8(0); rank < NumRanks; rank++ {
			card := NewCard(rank, suit)
			str := card.String()

			if cards[str] {
				t.Errorf("Duplicate card: %s", str)
			}
			cards[str] = true

			parsed, err := ParseCard(str)
			if err != nil {
				t.Errorf("Failed to parse %s: %v", str, err)
			}
			if parsed != card {
				t.Errorf("Round-trip failed for %s", str)
			}
		}
	}

	if len(cards) != DeckSize {
		t.Errorf("Expected %d unique cards, got %d", DeckSize, len(cards))
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()
	aceSpades, _ := ParseCard("As")
	kingHearts, _ := ParseCard("Kh")
	queenDiamonds, _ := ParseCard("Qd")

	hand := NewHand(aceSpades, kingHearts)

	if !hand.HasCard(aceSpades) {
		t.Error("Hand should contain Ace of Spades")
	}
	if !hand.HasCard(kingHearts) {
		t.Error("Hand should contain King of Hearts")
	}
	if hand.HasCard(queenDiamonds) {
		t.Error("Hand should not contain Queen of Diamonds")
	}

	if hand.CountCards() != 2 {
		t.Errorf("Hand should have 2 cards, got %d", hand.CountCards())
	}

	hand.AddCard(queenDiamonds)
	if !hand.HasCard(queenDiamonds) {
		t.Error("Hand should now contain Queen of Diamonds")
	}
	if hand.CountCards() != 3 {
		t.Errorf("Hand should have 3 cards, got %d", hand.CountCards())
	}
}

func TestParseHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		count   int
		wantErr bool
	}{
		{name: "two cards", input: "AsKh", count: 2},
		{name: "seven cards", input: "AsKhQd9c8h3s2d", count: 7},
		{name: "empty", input: "", count: 0},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "bad card", input: "AsXx", wantErr: true},
		{name: "duplicate card", input: "AsAs", wantErr: true},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hand, err := ParseHand(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseHand(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err == nil && hand.CountCards() != tc.count {
				t.Errorf("ParseHand(%q) has %d cards, want %d", tc.input, hand.CountCards(), tc.count)
			}
		})
	}
}

func TestHandBitset(t *testing.T) {
	t.Parallel()
	aceSpades, _ := ParseCard("As")
	aceHearts, _ := ParseCard("Ah")
	twoClubs, _ := ParseCard("2c")

	// Cards are single bits
	if bits.OnesCount64(uint64(aceSpades)) != 1 {
		t.Error("Card should be a single bit")
	}

	if aceSpades&aceHearts != 0 {
		t.Error("Different cards should not share bits")
	}
	if aceSpades&twoClubs != 0 {
		t.Error("Different cards should not share bits")
	}
	if aceHearts&twoClubs != 0 {
		t.Error("Different cards should not share bits")
	}

	combined := Hand(aceSpades) | Hand(aceHearts) | Hand(twoClubs)
	if combined.CountCards() != 3 {
		t.Errorf("Combined hand should have 3 cards, got %d", combined.CountCards())
	}
}

func TestGetSuitMask(t *testing.T) {
	t.Parallel()
	cards := []Card{}
	for rank := uint8(0); rank < NumRanks; rank++ {
		cards = append(cards, NewCard(rank, Spades))
	}
	hand := NewHand(cards...)

	spadesMask := hand.GetSuitMask(Spades)
	if spadesMask != 0x1FFF {
		t.Errorf("Expected all spades, got mask %016b", spadesMask)
	}

	if hand.GetSuitMask(Hearts) != 0 {
		t.Error("Hearts should be empty")
	}
}

func TestHandCards(t *testing.T) {
	t.Parallel()
	hand, err := ParseHand("AsKh2c")
	if err != nil {
		t.Fatal(err)
	}

	cards := hand.Cards()
	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}
	for _, c := range cards {
		if !hand.HasCard(c) {
			t.Errorf("Cards() returned %s not in hand", c)
		}
	}
}

func TestDeck(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(42, 99))
	deck := NewDeck(rng)

	cards1 := deck.Deal(2)
	if len(cards1) != 2 {
		t.Errorf("Expected 2 cards, got %d", len(cards1))
	}

	cards2 := deck.Deal(3)
	if len(cards2) != 3 {
		t.Errorf("Expected 3 cards, got %d", len(cards2))
	}

	for _, c1 := range cards1 {
		for _, c2 := range cards2 {
			if c1 == c2 {
				t.Error("Dealt same card twice")
			}
		}
	}

	remaining := deck.Deal(47)
	if len(remaining) != 47 {
		t.Errorf("Expected 47 remaining cards, got %d", len(remaining))
	}

	extra := deck.Deal(1)
	if extra != nil {
		t.Error("Should not be able to deal from empty deck")
	}

	deck.Reset()
	newCards := deck.Deal(2)
	if len(newCards) != 2 {
		t.Error("Should be able to deal after reset")
	}
}

func TestDeckDealsWholeDeck(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 7))
	deck := NewDeck(rng)

	seen := make(map[Card]bool)
	for i := 0; i < DeckSize; i++ {
		c := deck.DealOne()
		if c == 0 {
			t.Fatalf("Deck exhausted after %d cards", i)
		}
		if seen[c] {
			t.Fatalf("Card %s dealt twice", c)
		}
		seen[c] = true
	}
	if deck.CardsRemaining() != 0 {
		t.Errorf("Expected empty deck, %d cards remain", deck.CardsRemaining())
	}
	if deck.DealOne() != 0 {
		t.Error("DealOne on an empty deck should return the zero card")
	}
}

func TestDeckDeterminism(t *testing.T) {
	t.Parallel()
	deckA := NewDeck(rand.New(rand.NewPCG(1234, 1234)))
	deckB := NewDeck(rand.New(rand.NewPCG(1234, 1234)))

	for i := 0; i < DeckSize; i++ {
		a, b := deckA.DealOne(), deckB.DealOne()
		if a != b {
			t.Fatalf("Decks diverged at card %d: %s vs %s", i, a, b)
		}
	}
}

func BenchmarkCardCreation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewCard(Ace, Spades)
	}
}

func BenchmarkCardString(b *testing.B) {
	card := NewCard(Ace, Spades)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = card.String()
	}
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}
