package tournament

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brainink/arena/internal/model"

	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSubscriptionsReceiveAndUnsubscribe(t *testing.T) {
	o, _, _, registry := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background()))
	defer o.Close()

	got := make(chan model.LedgerEvent, 4)
	unsub := o.OnPlayerJoined(func(ev model.LedgerEvent) { got <- ev })

	registry.events <- model.LedgerEvent{Type: model.EventPlayerJoined, TournamentID: 7, Player: otherAddr}

	select {
	case ev := <-got:
		require.EqualValues(t, 7, ev.TournamentID)
		require.Equal(t, otherAddr, ev.Player)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never fired")
	}

	// After unsubscribe the handler must never fire again. Unsubscribe is
	// idempotent.
	unsub()
	unsub()
	registry.events <- model.LedgerEvent{Type: model.EventPlayerJoined, TournamentID: 8}
	registry.events <- model.LedgerEvent{Type: model.EventTournamentEnded, TournamentID: 8}

	// Drain through a second subscriber to know the pump processed both.
	done := make(chan struct{})
	o.OnTournamentEnded(func(model.LedgerEvent) { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pump stalled")
	}
	select {
	case ev := <-got:
		t.Fatalf("unsubscribed handler fired: %+v", ev)
	default:
	}
}

func TestTypedSubscriptionsAreIndependent(t *testing.T) {
	o, _, _, _ := newTestOrchestrator(t)

	var created, joined, all int
	o.OnTournamentCreated(func(model.LedgerEvent) { created++ })
	o.OnPlayerJoined(func(model.LedgerEvent) { joined++ })
	o.OnAnyEvent(func(model.LedgerEvent) { all++ })

	o.bus.publish(model.LedgerEvent{Type: model.EventTournamentCreated})
	o.bus.publish(model.LedgerEvent{Type: model.EventPlayerJoined})
	o.bus.publish(model.LedgerEvent{Type: model.EventScoreSubmitted})

	require.Equal(t, 1, created)
	require.Equal(t, 1, joined)
	require.Equal(t, 3, all)
}

func TestHandlerCanUnsubscribeItself(t *testing.T) {
	o, _, _, _ := newTestOrchestrator(t)

	fired := 0
	var unsub func()
	unsub = o.OnTournamentCreated(func(model.LedgerEvent) {
		fired++
		unsub()
	})

	o.bus.publish(model.LedgerEvent{Type: model.EventTournamentCreated})
	o.bus.publish(model.LedgerEvent{Type: model.EventTournamentCreated})
	require.Equal(t, 1, fired)
}

func TestEventInvalidatesAggregateCache(t *testing.T) {
	o, _, _, registry := newTestOrchestrator(t)
	ctx := context.Background()

	resp, err := o.CreateTournament(ctx, &model.CreateTournamentRequest{
		Name: "t", EntryFee: "1", MaxParticipants: 4, DurationHours: 1,
	})
	require.NoError(t, err)

	_, err = o.AllTournamentsWithDetails(ctx)
	require.NoError(t, err)

	require.NoError(t, o.Start(ctx))
	defer o.Close()

	// Simulate another player joining on-ledger, observed via the event feed.
	registry.mu.Lock()
	registry.tournaments[resp.TournamentID].CurrentParticipants = 1
	registry.tournaments[resp.TournamentID].Participants = []string{otherAddr}
	registry.mu.Unlock()
	registry.events <- model.LedgerEvent{Type: model.EventPlayerJoined, TournamentID: resp.TournamentID, Player: otherAddr}

	waitFor(t, func() bool {
		all, err := o.AllTournamentsWithDetails(ctx)
		return err == nil && len(all) == 1 && all[0].CurrentParticipants == 1
	})
}

func TestOwnWinRefreshesBalance(t *testing.T) {
	o, wallet, _, registry := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background()))
	defer o.Close()

	var seen atomic.Int32
	o.OnTournamentEnded(func(model.LedgerEvent) { seen.Add(1) })

	// Someone else's win does not touch our balance.
	registry.events <- model.LedgerEvent{Type: model.EventTournamentEnded, TournamentID: 1, Winner: otherAddr}
	// Our win does.
	registry.events <- model.LedgerEvent{Type: model.EventTournamentEnded, TournamentID: 2, Winner: testAddr}

	waitFor(t, func() bool { return seen.Load() == 2 })
	require.EqualValues(t, 1, wallet.refreshes.Load())
}

func TestCloseDropsSubscriptions(t *testing.T) {
	o, _, _, registry := newTestOrchestrator(t)
	require.NoError(t, o.Start(context.Background()))

	fired := 0
	o.OnAnyEvent(func(model.LedgerEvent) { fired++ })

	o.Close()
	require.True(t, registry.watchStopped)

	o.bus.publish(model.LedgerEvent{Type: model.EventPlayerJoined})
	require.Zero(t, fired)

	// Close is idempotent.
	o.Close()
}
