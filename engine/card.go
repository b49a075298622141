// Package engine implements the Mau Mau card game rules.
//
// The package is self-contained and dependency-free: it owns the
// authoritative game state, the per-player belief tracking that bots use to
// estimate hidden hands, and the bot decision policy itself. Callers are
// expected to serialize access externally (see internal/table).
package engine

// Suit identifies one of the four suits, in the traditional German
// Kreuz/Pik/Karo/Herz order.
type Suit uint8

const (
	SuitClubs Suit = iota
	SuitSpades
	SuitDiamonds
	SuitHearts

	NumSuits = 4
)

// Rank identifies one of the eight ranks of a 32-card skat deck.
// Seven, Eight, Jack and Ace carry special effects when played:
// Seven forces the next player to draw two (stackable), Eight skips the
// next player, Jack may be played on anything and declares a new suit,
// Ace keeps the turn with the same player.
type Rank uint8

const (
	RankSeven Rank = iota
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce

	NumRanks = 8
)

// DeckSize is the total number of cards in play for one game.
const DeckSize = NumSuits * NumRanks

var suitNames = [NumSuits]string{"Clubs", "Spades", "Diamonds", "Hearts"}
var rankNames = [NumRanks]string{"7", "8", "9", "10", "J", "Q", "K", "A"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "?"
}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "?"
}

// ParseSuit parses a suit name as produced by Suit.String. It fails closed:
// any unrecognized input returns ok == false.
func ParseSuit(s string) (Suit, bool) {
	for i, name := range suitNames {
		if s == name {
			return Suit(i), true
		}
	}
	return 0, false
}

// Card is a single card. Suit and Rank are its immutable identity;
// Displayed is the suit the card currently counts as for play legality.
// Displayed equals Suit except for a Jack that has been played with a
// declared suit.
type Card struct {
	Suit      Suit
	Rank      Rank
	Displayed Suit
}

// NewCard constructs a Card whose displayed suit is its natural suit.
func NewCard(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r, Displayed: s}
}

// Same reports whether two cards are the same logical card. Displayed is
// presentation state, not identity.
func (c Card) Same(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

func (c Card) String() string {
	if c.Displayed != c.Suit {
		return c.Suit.String() + " " + c.Rank.String() + " (as " + c.Displayed.String() + ")"
	}
	return c.Suit.String() + " " + c.Rank.String()
}
