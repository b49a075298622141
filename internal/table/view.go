// internal/table/view.go
package table

import (
	"github.com/maustack/maumau/engine"
)

// OpponentView is what a player may know about another seat: name, hand
// count and whether a bot sits there. Never the cards themselves.
type OpponentView struct {
	Name     string
	HandSize int
	Bot      bool
}

// View is the read model for one viewer. Hand and Legal are only populated
// for seated players; spectators get the public fields and every seat listed
// as an opponent.
type View struct {
	Started  bool
	Finished bool

	TopDiscard   *engine.Card
	DrawPile     int
	PendingDraws int

	Hand  []engine.Card
	Legal []bool

	YourTurn bool
	// MayDraw is false once the viewer drew this turn; they can then only
	// play or end the turn.
	MayDraw bool

	ActivePlayer string
	Opponents    []OpponentView
	Remaining    []string
}

// PlayProbability scores one playable card: the probability that the next
// player can answer it. Jacks appear once per declarable suit, with the
// card's displayed suit carrying the declaration.
type PlayProbability struct {
	CardIndex   int
	Card        engine.Card
	Probability float64
}

// View builds the viewer's snapshot of the table.
func (t *Table) View(viewer string) View {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := t.game
	v := View{
		Started:      g.Started(),
		Finished:     t.dealt && !g.Started(),
		DrawPile:     g.DrawPileLen(),
		PendingDraws: g.PendingDraws(),
	}
	if top, ok := g.TopDiscard(); ok {
		v.TopDiscard = &top
	}
	for _, p := range g.Players() {
		v.Remaining = append(v.Remaining, p.Name)
	}

	self := g.FindPlayer(viewer)
	for _, p := range g.Players() {
		if p == self {
			continue
		}
		v.Opponents = append(v.Opponents, OpponentView{
			Name:     p.Name,
			HandSize: p.HandSize(),
			Bot:      p.Bot != engine.BotNone,
		})
	}
	if !g.Started() || self == nil {
		return v
	}

	v.ActivePlayer = g.ActivePlayer().Name
	v.YourTurn = g.ActivePlayer() == self
	v.MayDraw = v.YourTurn && !g.LastActionWasDraw()
	v.Hand = append(v.Hand, self.Hand...)
	for _, c := range self.Hand {
		v.Legal = append(v.Legal, v.YourTurn && g.IsLegalPlay(c))
	}
	return v
}

// PlayProbabilities scores every card the named player could legally play
// against the next player's believed hand. These are the same numbers the
// bot minimizes over; surfacing them to a human is openly a cheat sheet.
func (t *Table) PlayProbabilities(name string) []PlayProbability {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := t.game
	if !g.Started() || g.ActivePlayer().Name != name {
		return nil
	}
	self := g.ActivePlayer()
	next := g.NextPlayer()

	var probs []PlayProbability
	for i, c := range self.Hand {
		if !g.IsLegalPlay(c) {
			continue
		}
		if c.Rank == engine.RankJack {
			for s := engine.SuitClubs; s <= engine.SuitHearts; s++ {
				declared := c
				declared.Displayed = s
				probs = append(probs, PlayProbability{
					CardIndex:   i,
					Card:        declared,
					Probability: self.HoldsProbability(next.Name, engine.ResponseMask(s, c.Rank)),
				})
			}
			continue
		}
		probs = append(probs, PlayProbability{
			CardIndex:   i,
			Card:        c,
			Probability: self.HoldsProbability(next.Name, engine.ResponseMask(c.Displayed, c.Rank)),
		})
	}
	return probs
}
