package engine

// ResponseMask covers every card the opponent could legally answer the
// given play with: same rank, same (declared) suit, or any Jack.
func ResponseMask(s Suit, r Rank) uint64 {
	return RankMask(r) | SuitMask(s) | RankMask(RankJack)
}

// ResolveBots plays bot turns until the active player is a human or the
// game has ended. Callers invoke this after every human action, inside the
// same critical section.
func (g *GameState) ResolveBots() error {
	for g.started {
		p := g.players[g.active]
		if p.Bot == BotNone {
			return nil
		}
		if err := g.easyBotTurn(p); err != nil {
			return err
		}
	}
	return nil
}

// easyBotTurn picks the statistically safest play for the bot: the legal
// play whose response probability against the next player is lowest, ties
// broken by encounter order. Jack candidates are scored once per declarable
// suit. When a Seven is on top and the bot holds a legal Seven, stacking it
// is preferred over the globally safest play. With no legal play the bot
// draws one card and ends its turn.
func (g *GameState) easyBotTurn(p *Player) error {
	lowest := 1.0
	lowestSeven := 1.0
	best := -1
	bestSeven := -1
	jackSuit := SuitClubs

	next := g.NextPlayer()

	for i, card := range p.Hand {
		if !g.IsLegalPlay(card) {
			continue
		}
		if card.Rank == RankJack {
			for s := SuitClubs; s <= SuitHearts; s++ {
				probability := p.HoldsProbability(next.Name, ResponseMask(s, RankJack))
				if probability < lowest {
					lowest = probability
					best = i
					jackSuit = s
				}
			}
			continue
		}
		probability := p.HoldsProbability(next.Name, ResponseMask(card.Suit, card.Rank))
		if card.Rank == RankSeven && probability < lowestSeven {
			lowestSeven = probability
			bestSeven = i
		}
		if probability < lowest {
			lowest = probability
			best = i
		}
	}

	if best == -1 {
		if err := g.DrawCard(p); err != nil {
			return err
		}
		g.EndTurn()
		return nil
	}

	index := best
	if top, ok := g.TopDiscard(); ok && top.Rank == RankSeven && bestSeven != -1 {
		index = bestSeven
	}

	// The suit choice only matters when the chosen card is a Jack.
	applied, err := g.PlayCard(index, jackSuit.String())
	if err != nil {
		return err
	}
	if !applied {
		// Should be unreachable: the candidate was vetted as legal. Fall
		// back to drawing so a bot can never wedge the table.
		if err := g.DrawCard(p); err != nil {
			return err
		}
		g.EndTurn()
	}
	return nil
}
