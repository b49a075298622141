package engine

import "fmt"

// HandSize is the number of cards dealt to each player at game start.
const HandSize = 5

// Seat describes one entry of the starting lobby: a player identity and the
// policy controlling it.
type Seat struct {
	Name string
	Bot  BotType
}

// GameState is the authoritative, single source of truth for one table.
//
// The players slice is the turn order; active indexes into it and every
// index adjustment (advance, skip, elimination) is defined relative to this
// ordering. The last element of discard is the top card; the head of draw is
// the next card to be drawn. GameState performs no locking of its own.
type GameState struct {
	players []*Player
	discard []Card
	draw    []Card

	started      bool
	firstAction  bool
	lastWasDraw  bool
	pendingDraws int
	active       int

	rng uint64
}

// NewGameState creates an idle game with the given shuffle seed.
func NewGameState(seed uint64) *GameState {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return &GameState{rng: seed}
}

// xorshift64, inline, no interface.
func (g *GameState) nextRand() uint64 {
	x := g.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.rng = x
	return x
}

func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// shuffleDeck permutes the cards in place (Fisher-Yates) and resets every
// displayed suit back to the natural suit, so a recycled Jack no longer
// carries its declared suit.
func (g *GameState) shuffleDeck(cards []Card) {
	for i := range cards {
		cards[i].Displayed = cards[i].Suit
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// StartGame resets the table and deals a fresh game for the given seats in
// seat order. Fewer than two seats is silently ignored: the game simply does
// not start.
func (g *GameState) StartGame(seats []Seat) error {
	if len(seats) < 2 {
		return nil
	}
	deck := make([]Card, 0, DeckSize)
	for s := Suit(0); s < NumSuits; s++ {
		for r := Rank(0); r < NumRanks; r++ {
			deck = append(deck, NewCard(s, r))
		}
	}
	g.shuffleDeck(deck)
	return g.startWithDeck(seats, deck)
}

// startWithDeck deals from an explicit draw pile: head of deck is drawn
// first. Split out of StartGame so tests can fix the permutation.
func (g *GameState) startWithDeck(seats []Seat, deck []Card) error {
	g.players = nil
	g.discard = nil
	g.draw = deck
	g.active = 0
	g.pendingDraws = 0
	g.firstAction = true
	g.lastWasDraw = false
	g.started = false

	for _, s := range seats {
		g.players = append(g.players, newPlayer(s.Name, s.Bot))
	}
	for _, p := range g.players {
		p.initOpponents(g.players)
		p.NotifyShuffle(g.draw)
	}

	// Flip the first discard, then deal each hand. Both go through DrawCard
	// so belief state sees the same public events as live play.
	if err := g.DrawCard(nil); err != nil {
		return err
	}
	for _, p := range g.players {
		for i := 0; i < HandSize; i++ {
			if err := g.DrawCard(p); err != nil {
				return err
			}
		}
	}

	g.started = true
	return nil
}

// DrawCard moves the next card off the draw pile. A nil player seeds the
// discard pile (used once, at game start); otherwise the card goes to the
// player's hand. Either way every other seat is notified of the public
// event.
//
// When the draw pile is empty it is replenished first: all discards except
// the top card are reshuffled into a new draw pile, and every player starts
// a new belief generation from the reshuffled contents. The pile is
// replenished at draw time, never eagerly after a draw empties it.
func (g *GameState) DrawCard(p *Player) error {
	if len(g.draw) == 0 {
		if len(g.discard) <= 1 {
			return fmt.Errorf("draw pile exhausted with no discards to recycle")
		}
		top := g.discard[len(g.discard)-1]
		g.draw = g.discard[:len(g.discard)-1]
		g.discard = []Card{top}
		g.shuffleDeck(g.draw)
		for _, pl := range g.players {
			pl.NotifyShuffle(g.draw)
		}
	}

	card := g.draw[0]
	g.draw = g.draw[1:]

	if p == nil {
		g.discard = append(g.discard, card)
	} else if err := p.NotifySelfDraw(card); err != nil {
		return err
	}

	for _, pl := range g.players {
		if pl == p {
			continue
		}
		if p != nil {
			pl.NotifyOpponentDraw(p.Name)
		} else if err := pl.NotifyCardPlayed(card, ""); err != nil {
			return err
		}
	}
	return nil
}

// IsLegalPlay reports whether the card may be played on the current top
// discard: suit match against the displayed suit, rank match, or a Jack,
// which is always legal.
func (g *GameState) IsLegalPlay(c Card) bool {
	if len(g.discard) == 0 {
		return false
	}
	top := g.discard[len(g.discard)-1]
	return c.Displayed == top.Displayed || c.Rank == top.Rank || c.Rank == RankJack
}

// PlayCard plays the active player's card at cardIndex. For a Jack,
// suitChoice names the declared suit; a choice that fails to parse rejects
// the play. Returns applied == false, with no state change, for any invalid
// play. A non-nil error means the table state is corrupt.
//
// A pending draw-two chain must be paid before any non-Seven card goes on
// top of a Seven: the penalty cards are drawn first, then the play proceeds.
// Playing another Seven instead extends the chain.
func (g *GameState) PlayCard(cardIndex int, suitChoice string) (bool, error) {
	if !g.started {
		return false, nil
	}
	initial := g.active
	current := g.players[g.active]
	if cardIndex < 0 || cardIndex >= len(current.Hand) {
		return false, nil
	}
	card := current.Hand[cardIndex]
	if !g.IsLegalPlay(card) {
		return false, nil
	}
	if card.Rank == RankJack {
		chosen, ok := ParseSuit(suitChoice)
		if !ok {
			return false, nil
		}
		card.Displayed = chosen
	}

	if g.firstAction && g.pendingDraws > 0 && g.topDiscard().Rank == RankSeven && card.Rank != RankSeven {
		for i := 0; i < g.pendingDraws; i++ {
			if err := g.DrawCard(current); err != nil {
				return false, err
			}
		}
		g.pendingDraws = 0
		g.lastWasDraw = true
	}

	g.firstAction = false
	g.lastWasDraw = false
	g.discard = append(g.discard, card)
	current.Hand = append(current.Hand[:cardIndex], current.Hand[cardIndex+1:]...)

	for _, pl := range g.players {
		if pl == current {
			continue
		}
		if err := pl.NotifyCardPlayed(card, current.Name); err != nil {
			return false, err
		}
	}

	switch card.Rank {
	case RankAce:
		// Same player keeps the turn.
	case RankEight:
		g.active++
		g.EndTurn()
	case RankSeven:
		g.pendingDraws += 2
		g.EndTurn()
	default:
		g.EndTurn()
	}

	// A player whose hand emptied is out once the turn has moved past them.
	// Going out on an Ace keeps the turn, so the seat stays until it does.
	if len(current.Hand) == 0 && g.active != initial {
		if g.active > initial {
			g.active--
		}
		g.players = append(g.players[:initial], g.players[initial+1:]...)
		if len(g.players) <= 1 {
			g.started = false
		}
	}

	return true, nil
}

// DrawTurn performs the active player's draw action. With a pending
// draw-two chain on a Seven, the whole chain is paid and the turn continues
// (the player may still play or must end the turn). Otherwise one card is
// drawn and the turn ends. Returns applied == false if the player already
// drew this turn.
func (g *GameState) DrawTurn() (bool, error) {
	if !g.started || g.lastWasDraw {
		return false, nil
	}
	current := g.players[g.active]

	if g.firstAction && g.pendingDraws > 0 && g.topDiscard().Rank == RankSeven {
		for i := 0; i < g.pendingDraws; i++ {
			if err := g.DrawCard(current); err != nil {
				return false, err
			}
		}
		g.pendingDraws = 0
		g.firstAction = false
		g.lastWasDraw = true
		return true, nil
	}

	if err := g.DrawCard(current); err != nil {
		return false, err
	}
	g.EndTurn()
	return true, nil
}

// EndTurn advances the active index to the next remaining player and resets
// the per-turn flags.
func (g *GameState) EndTurn() {
	g.active = (g.active + 1) % len(g.players)
	g.firstAction = true
	g.lastWasDraw = false
}

func (g *GameState) topDiscard() Card {
	return g.discard[len(g.discard)-1]
}

// TopDiscard returns the top discard card, if any.
func (g *GameState) TopDiscard() (Card, bool) {
	if len(g.discard) == 0 {
		return Card{}, false
	}
	return g.topDiscard(), true
}

// Started reports whether a game is in progress. It turns false again once
// only one player remains.
func (g *GameState) Started() bool { return g.started }

// ActivePlayer returns the player whose turn it is, or nil before StartGame.
func (g *GameState) ActivePlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[g.active]
}

// ActiveIndex returns the active player's position in turn order.
func (g *GameState) ActiveIndex() int { return g.active }

// NextPlayer returns the player who acts after the active one.
func (g *GameState) NextPlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[(g.active+1)%len(g.players)]
}

// Players returns the remaining players in turn order.
func (g *GameState) Players() []*Player { return g.players }

// FindPlayer returns the named player, or nil if eliminated or unknown.
func (g *GameState) FindPlayer(name string) *Player {
	for _, p := range g.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// DrawPileLen returns the number of cards left to draw.
func (g *GameState) DrawPileLen() int { return len(g.draw) }

// DiscardPileLen returns the number of discarded cards, top included.
func (g *GameState) DiscardPileLen() int { return len(g.discard) }

// PendingDraws returns the accumulated draw-two penalty.
func (g *GameState) PendingDraws() int { return g.pendingDraws }

// IsFirstAction reports whether the active player has acted this turn.
func (g *GameState) IsFirstAction() bool { return g.firstAction }

// LastActionWasDraw reports whether the active player's last action this
// turn was a draw (which forbids drawing again).
func (g *GameState) LastActionWasDraw() bool { return g.lastWasDraw }
