// internal/table/table.go
package table

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/maustack/maumau/engine"
)

// EasyBotName is the lobby name under which the built-in bot joins a table.
const EasyBotName = "DracoMalfoy"

// Table owns one game and serializes all access to it. Callers never touch
// the engine directly: every entry point takes the table lock, validates the
// acting player, applies the action, and resolves any bot turns before
// returning, so the engine only ever runs inside this critical section.
type Table struct {
	ID uuid.UUID

	mu    sync.Mutex
	log   *logrus.Entry
	game  *engine.GameState
	lobby []engine.Seat
	dealt bool
}

// New creates an empty table with the given RNG seed.
func New(logger *logrus.Logger, seed uint64) *Table {
	id := uuid.New()
	return &Table{
		ID:   id,
		log:  logger.WithField("table", id),
		game: engine.NewGameState(seed),
	}
}

// Join seats a named player in the lobby. Names are identities: joining
// twice, joining with an empty name, or joining a running game all fail.
func (t *Table) Join(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if name == "" {
		return fmt.Errorf("player name must not be empty")
	}
	if t.game.Started() {
		return fmt.Errorf("table %s: game already in progress", t.ID)
	}
	for _, s := range t.lobby {
		if s.Name == name {
			return fmt.Errorf("player %q already seated", name)
		}
	}
	t.lobby = append(t.lobby, engine.Seat{Name: name})
	t.log.WithField("player", name).Info("player joined lobby")
	return nil
}

// AddBot seats the easy bot. A table holds at most one bot seat; adding it
// again is a no-op. Returns the bot's lobby name.
func (t *Table) AddBot() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.lobby {
		if s.Name == EasyBotName {
			return EasyBotName
		}
	}
	t.lobby = append(t.lobby, engine.Seat{Name: EasyBotName, Bot: engine.BotEasy})
	t.log.WithField("player", EasyBotName).Info("bot joined lobby")
	return EasyBotName
}

// Lobby returns the seated names in join order.
func (t *Table) Lobby() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, len(t.lobby))
	for i, s := range t.lobby {
		names[i] = s.Name
	}
	return names
}

// Start deals a new game for the current lobby. Turn order is join order.
func (t *Table) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.game.Started() {
		return fmt.Errorf("table %s: game already in progress", t.ID)
	}
	if len(t.lobby) < 2 {
		return fmt.Errorf("table %s: need at least 2 players, have %d", t.ID, len(t.lobby))
	}
	if err := t.game.StartGame(t.lobby); err != nil {
		t.log.WithError(err).Error("deal failed")
		return err
	}
	t.dealt = true
	t.log.WithFields(logrus.Fields{
		"players": len(t.lobby),
		"first":   t.game.ActivePlayer().Name,
	}).Info("game started")

	// The first seat may be a bot.
	return t.resolveBotsLocked()
}

// Play plays the card at cardIndex from the named player's hand. For a Jack,
// suitChoice names the suit to declare; it is ignored otherwise. An illegal
// or out-of-turn play is rejected with the game untouched.
func (t *Table) Play(name string, cardIndex int, suitChoice string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurnLocked(name); err != nil {
		return err
	}
	p := t.game.ActivePlayer()
	if cardIndex < 0 || cardIndex >= p.HandSize() {
		return fmt.Errorf("card index %d out of range", cardIndex)
	}
	card := p.Hand[cardIndex]

	applied, err := t.game.PlayCard(cardIndex, suitChoice)
	if err != nil {
		t.log.WithError(err).Error("play corrupted table state")
		return err
	}
	if !applied {
		return fmt.Errorf("card %s cannot be played", card)
	}
	t.log.WithFields(logrus.Fields{
		"player": name,
		"card":   card.String(),
	}).Info("card played")

	if !t.game.Started() {
		t.logFinishLocked()
		return nil
	}
	return t.resolveBotsLocked()
}

// Draw executes the named player's draw action: paying a pending draw-two
// chain keeps the turn, a plain draw takes one card and ends it. When the
// chain payment leaves the player with no legal card the turn ends
// immediately, matching the rendered flow where there is nothing left to do.
func (t *Table) Draw(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurnLocked(name); err != nil {
		return err
	}
	applied, err := t.game.DrawTurn()
	if err != nil {
		t.log.WithError(err).Error("draw corrupted table state")
		return err
	}
	if !applied {
		return fmt.Errorf("player %q already drew this turn", name)
	}
	t.log.WithFields(logrus.Fields{
		"player": name,
		"hand":   t.game.FindPlayer(name).HandSize(),
	}).Info("player drew")

	if t.game.LastActionWasDraw() && !t.anyLegalLocked(t.game.ActivePlayer()) {
		t.game.EndTurn()
	}
	return t.resolveBotsLocked()
}

// EndTurn passes after a draw. It is only valid once the player has drawn
// this turn and still holds no obligation to act.
func (t *Table) EndTurn(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurnLocked(name); err != nil {
		return err
	}
	if !t.game.LastActionWasDraw() {
		return fmt.Errorf("player %q must play or draw before ending the turn", name)
	}
	t.game.EndTurn()
	return t.resolveBotsLocked()
}

// LegalPlays returns the hand indices the named player could legally play
// right now. Empty unless it is their turn.
func (t *Table) LegalPlays(name string) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.game.Started() || t.game.ActivePlayer().Name != name {
		return nil
	}
	var indices []int
	for i, c := range t.game.ActivePlayer().Hand {
		if t.game.IsLegalPlay(c) {
			indices = append(indices, i)
		}
	}
	return indices
}

// checkTurnLocked validates that the game runs and name is the active player.
func (t *Table) checkTurnLocked(name string) error {
	if !t.game.Started() {
		return fmt.Errorf("table %s: no game in progress", t.ID)
	}
	if t.game.ActivePlayer().Name != name {
		return fmt.Errorf("player %q: not your turn", name)
	}
	return nil
}

// anyLegalLocked reports whether the player holds any legally playable card.
func (t *Table) anyLegalLocked(p *engine.Player) bool {
	for _, c := range p.Hand {
		if t.game.IsLegalPlay(c) {
			return true
		}
	}
	return false
}

// resolveBotsLocked runs bot turns to completion and logs a finished game.
func (t *Table) resolveBotsLocked() error {
	if err := t.game.ResolveBots(); err != nil {
		t.log.WithError(err).Error("bot turn corrupted table state")
		return err
	}
	if !t.game.Started() {
		t.logFinishLocked()
	}
	return nil
}

func (t *Table) logFinishLocked() {
	remaining := make([]string, 0, len(t.game.Players()))
	for _, p := range t.game.Players() {
		remaining = append(remaining, p.Name)
	}
	t.log.WithField("remaining", remaining).Info("game finished")
}
