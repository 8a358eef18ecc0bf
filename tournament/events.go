package tournament

import (
	"sync"

	"github.com/brainink/arena/internal/model"
)

// EventHandler receives a decoded ledger event. Handlers run on the event
// pump goroutine and must not block.
type EventHandler func(model.LedgerEvent)

// bus fans ledger events out to local subscribers. Subscriptions are keyed
// so an unsubscribe removes exactly the handler it was issued for.
type bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[model.LedgerEventType]map[uint64]EventHandler
	anyID  uint64
	any    map[uint64]EventHandler
}

func newBus() *bus {
	return &bus{
		subs: make(map[model.LedgerEventType]map[uint64]EventHandler),
		any:  make(map[uint64]EventHandler),
	}
}

func (b *bus) subscribe(t model.LedgerEventType, h EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[t] == nil {
		b.subs[t] = make(map[uint64]EventHandler)
	}
	b.nextID++
	id := b.nextID
	b.subs[t][id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[t], id)
			b.mu.Unlock()
		})
	}
}

func (b *bus) subscribeAll(h EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.anyID++
	id := b.anyID
	b.any[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.any, id)
			b.mu.Unlock()
		})
	}
}

// publish snapshots the handler set under the lock, then calls handlers
// outside it so a handler can unsubscribe itself without deadlocking.
func (b *bus) publish(ev model.LedgerEvent) {
	b.mu.Lock()
	handlers := make([]EventHandler, 0, len(b.subs[ev.Type])+len(b.any))
	for _, h := range b.subs[ev.Type] {
		handlers = append(handlers, h)
	}
	for _, h := range b.any {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (b *bus) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[model.LedgerEventType]map[uint64]EventHandler)
	b.any = make(map[uint64]EventHandler)
}

// OnTournamentCreated subscribes to creation events. The returned function
// removes the subscription; calling it more than once is harmless.
func (o *Orchestrator) OnTournamentCreated(h EventHandler) func() {
	return o.bus.subscribe(model.EventTournamentCreated, h)
}

// OnPlayerJoined subscribes to join events.
func (o *Orchestrator) OnPlayerJoined(h EventHandler) func() {
	return o.bus.subscribe(model.EventPlayerJoined, h)
}

// OnScoreSubmitted subscribes to score submission events.
func (o *Orchestrator) OnScoreSubmitted(h EventHandler) func() {
	return o.bus.subscribe(model.EventScoreSubmitted, h)
}

// OnTournamentEnded subscribes to resolution events.
func (o *Orchestrator) OnTournamentEnded(h EventHandler) func() {
	return o.bus.subscribe(model.EventTournamentEnded, h)
}

// OnAnyEvent subscribes to every ledger event type. The websocket feed uses
// this to mirror the whole stream to clients.
func (o *Orchestrator) OnAnyEvent(h EventHandler) func() {
	return o.bus.subscribeAll(h)
}
