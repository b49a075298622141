package engine

import (
	"fmt"
	"math"
)

// BotType selects the decision policy controlling a player. BotNone means a
// human drives the player through the external caller.
type BotType uint8

const (
	BotNone BotType = iota
	BotEasy
)

// Player is one seat at the table: the actual hand plus everything this
// player believes about the hidden hands of the others.
//
// Belief is organized in generations. Each time the shared deck is
// (re)shuffled, every player appends a fresh CardSet holding the new deck
// contents: the pool of cards that are unknown relative to that shuffle.
// For every opponent the player keeps one believed count per generation:
// how many cards the opponent is thought to have drawn from that pool.
// The two slices are index-aligned, most recent generation last.
type Player struct {
	Name string
	Hand []Card
	Bot  BotType

	generations []*CardSet
	believed    map[string][]int
}

func newPlayer(name string, bot BotType) *Player {
	return &Player{
		Name:     name,
		Bot:      bot,
		believed: make(map[string][]int),
	}
}

// initOpponents registers every other seat for belief tracking.
func (p *Player) initOpponents(players []*Player) {
	for _, o := range players {
		if o != p {
			p.believed[o.Name] = nil
		}
	}
}

// NotifyShuffle records a fresh shuffle of the given deck contents: a new
// generation with a believed count of zero for every opponent, since nobody
// has drawn from the new pool yet.
func (p *Player) NotifyShuffle(deck []Card) {
	p.generations = append(p.generations, NewCardSet(deck))
	for name := range p.believed {
		p.believed[name] = append(p.believed[name], 0)
	}
}

// NotifyOpponentDraw records that the named opponent drew a card whose
// identity is hidden from this player. Only the most recent generation is
// touched: the card necessarily came from the current pool.
func (p *Player) NotifyOpponentDraw(name string) {
	counts, ok := p.believed[name]
	if !ok || len(counts) == 0 {
		return
	}
	counts[len(counts)-1]++
}

// NotifySelfDraw appends the drawn card to the hand and strikes it from this
// player's own most recent generation: it is now known to be out of the pool.
func (p *Player) NotifySelfDraw(card Card) error {
	p.Hand = append(p.Hand, card)
	if len(p.generations) == 0 {
		return fmt.Errorf("player %s drew %s before any shuffle", p.Name, card)
	}
	return p.generations[len(p.generations)-1].RemoveCard(card)
}

// NotifyCardPlayed records a card revealed face-up by another seat. The card
// is attributed to exactly one generation, the most recent one that still
// contains it: that generation's believed count for the acting player is
// decremented and the card is struck from it. An empty byName means the card was
// revealed by the game itself (the initial discard flip), which strikes the
// card from a pool without charging it to anyone.
func (p *Player) NotifyCardPlayed(card Card, byName string) error {
	for i := len(p.generations) - 1; i >= 0; i-- {
		if !p.generations[i].ContainsCard(card) {
			continue
		}
		if byName != "" {
			if counts, ok := p.believed[byName]; ok && i < len(counts) {
				counts[i]--
			}
		}
		return p.generations[i].RemoveCard(card)
	}
	return fmt.Errorf("played card %s is in no generation of player %s", card, p.Name)
}

// HoldsProbability estimates the probability that the named opponent holds
// at least one card matching the mask.
//
// Each generation is treated as an independent urn: an opponent believed to
// hold k cards from a pool of n, of which m match, fails to hold a match
// with probability (1 - m/n)^k. The per-generation results combine as
// independent events. This approximates the true without-replacement
// combinatorics; the bot policy is defined in terms of this formula, so it
// must not be swapped for an exact hypergeometric.
func (p *Player) HoldsProbability(name string, mask uint64) float64 {
	counts, ok := p.believed[name]
	if !ok {
		return 0
	}

	probability := 0.0
	for i, gen := range p.generations {
		if i >= len(counts) || counts[i] <= 0 {
			continue
		}
		matching := gen.CountMatching(mask)
		if matching == 0 {
			continue
		}
		miss := math.Pow(1-float64(matching)/float64(gen.Count()), float64(counts[i]))
		probability = 1 - (1-probability)*miss
	}
	return probability
}

// HandSize returns the number of cards currently held.
func (p *Player) HandSize() int {
	return len(p.Hand)
}

// Generations exposes the belief generations for inspection.
func (p *Player) Generations() []*CardSet {
	return p.generations
}

// BelievedCounts exposes the per-generation believed counts for the named
// opponent, index-aligned with Generations.
func (p *Player) BelievedCounts(name string) []int {
	return p.believed[name]
}
