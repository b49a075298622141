// internal/table/table_test.go
package table

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maustack/maumau/engine"
)

// testLogger returns a silenced logger for table construction.
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newStartedTable seats alice and bob and deals.
func newStartedTable(t *testing.T, seed uint64) *Table {
	t.Helper()
	tbl := New(testLogger(), seed)
	require.NoError(t, tbl.Join("alice"))
	require.NoError(t, tbl.Join("bob"))
	require.NoError(t, tbl.Start())
	return tbl
}

func TestLobbyJoinRules(t *testing.T) {
	tbl := New(testLogger(), 1)

	require.NoError(t, tbl.Join("alice"))
	assert.Error(t, tbl.Join("alice"), "duplicate name must be rejected")
	assert.Error(t, tbl.Join(""), "empty name must be rejected")

	assert.Equal(t, EasyBotName, tbl.AddBot())
	assert.Equal(t, EasyBotName, tbl.AddBot(), "second bot add is a no-op")
	assert.Equal(t, []string{"alice", EasyBotName}, tbl.Lobby())

	require.NoError(t, tbl.Start())
	assert.Error(t, tbl.Join("carol"), "joining a running game must be rejected")
}

func TestStartNeedsTwoPlayers(t *testing.T) {
	tbl := New(testLogger(), 1)
	require.NoError(t, tbl.Join("alice"))
	assert.Error(t, tbl.Start())

	require.NoError(t, tbl.Join("bob"))
	require.NoError(t, tbl.Start())
	assert.Error(t, tbl.Start(), "starting a running game must be rejected")
}

func TestTurnEnforcement(t *testing.T) {
	tbl := newStartedTable(t, 1)
	v := tbl.View("alice")
	require.True(t, v.Started)

	active, inactive := "alice", "bob"
	if !v.YourTurn {
		active, inactive = "bob", "alice"
	}

	assert.Error(t, tbl.Play(inactive, 0, ""), "out-of-turn play must be rejected")
	assert.Error(t, tbl.Draw(inactive), "out-of-turn draw must be rejected")
	assert.Error(t, tbl.EndTurn(inactive), "out-of-turn end must be rejected")
	assert.Nil(t, tbl.LegalPlays(inactive))
	assert.Nil(t, tbl.PlayProbabilities(inactive))

	assert.Error(t, tbl.Play(active, -1, ""), "negative index must be rejected")
	assert.Error(t, tbl.Play(active, engine.HandSize, ""), "out-of-range index must be rejected")
	assert.Error(t, tbl.EndTurn(active), "ending before acting must be rejected")

	// None of the rejected actions may have touched the deal.
	after := tbl.View(active)
	assert.Len(t, after.Hand, engine.HandSize)
	assert.Equal(t, v.DrawPile, after.DrawPile)
}

func TestViewHidesOpponentHands(t *testing.T) {
	tbl := newStartedTable(t, 3)

	for _, viewer := range []string{"alice", "bob"} {
		v := tbl.View(viewer)
		assert.Len(t, v.Hand, engine.HandSize)
		assert.Len(t, v.Legal, engine.HandSize)
		require.Len(t, v.Opponents, 1)
		assert.NotEqual(t, viewer, v.Opponents[0].Name)
		assert.Equal(t, engine.HandSize, v.Opponents[0].HandSize)
	}

	spectator := tbl.View("nobody")
	assert.True(t, spectator.Started)
	assert.Nil(t, spectator.Hand, "spectators see no cards")
	assert.Len(t, spectator.Opponents, 2)
	assert.Equal(t, 21, spectator.DrawPile)
	require.NotNil(t, spectator.TopDiscard)
}

func TestDrawTakesOneCardAndPassesTurn(t *testing.T) {
	tbl := newStartedTable(t, 5)

	v := tbl.View("alice")
	active, other := "alice", "bob"
	if !v.YourTurn {
		active, other = "bob", "alice"
	}
	before := tbl.View(active)
	require.True(t, before.MayDraw)

	require.NoError(t, tbl.Draw(active))

	assert.Error(t, tbl.Draw(active), "turn passed, drawing again is out of turn")
	afterOther := tbl.View(other)
	assert.True(t, afterOther.YourTurn)
	assert.Equal(t, engine.HandSize+1, afterOther.Opponents[0].HandSize)
	assert.Equal(t, before.DrawPile-1, afterOther.DrawPile)
}

func TestPlayProbabilitiesCoverLegalPlays(t *testing.T) {
	tbl := newStartedTable(t, 9)

	v := tbl.View("alice")
	active := "alice"
	if !v.YourTurn {
		active = "bob"
		v = tbl.View("bob")
	}

	legal := tbl.LegalPlays(active)
	probs := tbl.PlayProbabilities(active)

	// One entry per legal card, with Jacks fanned out per declarable suit.
	want := 0
	for _, i := range legal {
		if v.Hand[i].Rank == engine.RankJack {
			want += int(engine.NumSuits)
		} else {
			want++
		}
	}
	assert.Len(t, probs, want)

	covered := map[int]bool{}
	for _, pp := range probs {
		assert.GreaterOrEqual(t, pp.Probability, 0.0)
		assert.LessOrEqual(t, pp.Probability, 1.0)
		assert.True(t, v.Legal[pp.CardIndex], "scored card must be legal")
		covered[pp.CardIndex] = true
	}
	for _, i := range legal {
		assert.True(t, covered[i], "legal card %d missing from cheat sheet", i)
	}
}

// TestHumanVersusBotGame drives a full game greedily against the bot. The
// guard must hand every decision back with the human active, and the game
// must reach a terminal state.
func TestHumanVersusBotGame(t *testing.T) {
	tbl := New(testLogger(), 11)
	require.NoError(t, tbl.Join("alice"))
	tbl.AddBot()
	require.NoError(t, tbl.Start())

	var actErr error
	for steps := 0; steps < 2000; steps++ {
		v := tbl.View("alice")
		if v.Finished {
			break
		}
		require.True(t, v.YourTurn, "guard returned with the bot still to act")

		legal := tbl.LegalPlays("alice")
		switch {
		case len(legal) > 0:
			// Declare Hearts for Jacks; ignored for other ranks.
			actErr = tbl.Play("alice", legal[0], engine.SuitHearts.String())
		case v.MayDraw:
			actErr = tbl.Draw("alice")
		default:
			actErr = tbl.EndTurn("alice")
		}
		if actErr != nil {
			break
		}
	}

	final := tbl.View("alice")
	// A drained table (both piles empty) surfaces as an action error; any
	// other outcome must be a finished game with one loser left.
	if actErr == nil {
		require.True(t, final.Finished, "game did not terminate")
		assert.Len(t, final.Remaining, 1)
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(testLogger())

	t1 := store.Create(1)
	t2 := store.Create(2)
	assert.NotEqual(t, t1.ID, t2.ID)
	assert.Len(t, store.Tables(), 2)

	found, ok := store.Find(t1.ID)
	require.True(t, ok)
	assert.Same(t, t1, found)

	require.NoError(t, store.Remove(t1.ID))
	_, ok = store.Find(t1.ID)
	assert.False(t, ok)
	assert.Error(t, store.Remove(t1.ID), "double remove must fail")
	assert.Len(t, store.Tables(), 1)
}
