package engine

import (
	"fmt"
	"math/bits"
)

// FullDeckMask covers all 32 (suit, rank) slots.
const FullDeckMask uint64 = (1 << DeckSize) - 1

// slotIndex maps a (suit, rank) pair to its bit position: suit-major,
// eight ranks per suit.
func slotIndex(s Suit, r Rank) uint {
	return uint(s)*NumRanks + uint(r)
}

// SuitMask returns the mask covering all eight ranks of one suit.
func SuitMask(s Suit) uint64 {
	return 0xFF << (uint(s) * NumRanks)
}

// RankMask returns the mask covering one rank across all four suits.
func RankMask(r Rank) uint64 {
	return 0x01010101 << uint(r)
}

// CardSet is a presence set over the 32 (suit, rank) slots with a redundant
// cached cardinality. The count must always equal the population count of
// the bitset; Remove of an absent card is a state corruption and reports an
// error rather than silently desyncing the two.
type CardSet struct {
	bits  uint64
	count int
}

// NewCardSet builds a set containing exactly the given cards.
func NewCardSet(cards []Card) *CardSet {
	cs := &CardSet{}
	for _, c := range cards {
		cs.Add(c.Suit, c.Rank)
	}
	return cs
}

// NewComplementSet builds the set of every card the holder of the given hand
// provably does not hold: the full deck minus the hand minus one externally
// revealed card.
func NewComplementSet(hand []Card, revealed Card) (*CardSet, error) {
	cs := &CardSet{bits: FullDeckMask, count: DeckSize}
	for _, c := range hand {
		if err := cs.Remove(c.Suit, c.Rank); err != nil {
			return nil, err
		}
	}
	if err := cs.Remove(revealed.Suit, revealed.Rank); err != nil {
		return nil, err
	}
	return cs, nil
}

// Contains reports whether the (suit, rank) slot is present.
func (cs *CardSet) Contains(s Suit, r Rank) bool {
	return cs.bits>>slotIndex(s, r)&1 != 0
}

// ContainsCard reports whether the card's identity slot is present.
func (cs *CardSet) ContainsCard(c Card) bool {
	return cs.Contains(c.Suit, c.Rank)
}

// Add inserts the (suit, rank) slot and bumps the cardinality.
func (cs *CardSet) Add(s Suit, r Rank) {
	cs.bits |= 1 << slotIndex(s, r)
	cs.count++
}

// Remove clears the (suit, rank) slot. Removing an absent card indicates a
// sequencing bug in the caller and is reported as an error with the set
// unchanged.
func (cs *CardSet) Remove(s Suit, r Rank) error {
	if !cs.Contains(s, r) {
		return fmt.Errorf("card set does not contain %s %s", s, r)
	}
	cs.bits &^= 1 << slotIndex(s, r)
	cs.count--
	return nil
}

// RemoveCard clears the card's identity slot.
func (cs *CardSet) RemoveCard(c Card) error {
	return cs.Remove(c.Suit, c.Rank)
}

// Count returns the cached cardinality.
func (cs *CardSet) Count() int {
	return cs.count
}

// CountMatching returns how many present slots fall under the given mask.
func (cs *CardSet) CountMatching(mask uint64) int {
	return bits.OnesCount64(cs.bits & mask)
}
