// Package tournament coordinates the wallet session, the token ledger client
// and the on-chain tournament registry into the create/join/submit/resolve
// flows. The registry is authoritative; everything cached here is an advisory
// snapshot that events and resyncs keep fresh.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/history"
	"github.com/brainink/arena/internal/model"

	"go.uber.org/zap"
)

// Wallet is the slice of the wallet session the orchestrator needs.
type Wallet interface {
	Address() (string, error)
	RefreshBalance(ctx context.Context) (string, error)
}

// TokenLedger is the fungible-token client. Amounts are decimal strings.
type TokenLedger interface {
	Decimals(ctx context.Context) (uint8, error)
	Allowance(ctx context.Context, owner, spender string) (string, error)
	Approve(ctx context.Context, spender, amount string) (string, error)
}

// Registry is the on-ledger tournament store. Writes confirm before returning;
// rejections come back classified against the model error taxonomy.
type Registry interface {
	SpenderAddress() string
	CreateTournament(ctx context.Context, name, entryFee string, maxParticipants uint32, duration time.Duration) (uint64, string, error)
	JoinTournament(ctx context.Context, id uint64) (string, error)
	SubmitScore(ctx context.Context, id, score, completionTimeMs uint64) (string, error)
	GetTournament(ctx context.Context, id uint64) (*model.Tournament, error)
	GetParticipant(ctx context.Context, id uint64, player string) (*model.Participant, error)
	ActiveTournamentIDs(ctx context.Context) ([]uint64, error)
	WatchEvents(ctx context.Context) (<-chan model.LedgerEvent, func(), error)
}

// Orchestrator owns the cached aggregate views and serializes all ledger
// writes: signing is single-threaded per address, so concurrent callers
// queue on the write lock instead of racing nonces.
type Orchestrator struct {
	wallet   Wallet
	ledger   TokenLedger
	registry Registry
	store    history.Store
	log      *zap.Logger

	// one signed transaction in flight at a time
	writeMu sync.Mutex

	bus *bus

	mu         sync.Mutex
	cached     []model.Tournament
	cacheValid bool
	stopWatch  func()
}

// New wires an orchestrator. store may be a MemoryStore; log must not be nil.
func New(wallet Wallet, ledger TokenLedger, registry Registry, store history.Store, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		wallet:   wallet,
		ledger:   ledger,
		registry: registry,
		store:    store,
		log:      log,
		bus:      newBus(),
	}
}

// CreateTournament submits a creation transaction and returns the id parsed
// from the confirmation receipt's TournamentCreated event. A confirmed
// transaction without that event fails: the protocol contract was violated.
func (o *Orchestrator) CreateTournament(ctx context.Context, req *model.CreateTournamentRequest) (*model.CreateTournamentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := o.wallet.Address(); err != nil {
		return nil, err
	}

	entryID := o.record(ctx, model.TransactionTypeCreate, 0, req.EntryFee)

	o.writeMu.Lock()
	id, txHash, err := o.registry.CreateTournament(ctx, req.Name, req.EntryFee, req.MaxParticipants,
		time.Duration(req.DurationHours)*time.Hour)
	o.writeMu.Unlock()

	if err != nil {
		o.settle(ctx, entryID, txHash, err)
		return nil, err
	}
	o.settle(ctx, entryID, txHash, nil)
	o.invalidate()

	o.log.Info("tournament created",
		zap.Uint64("id", id), zap.String("name", req.Name), zap.String("tx", txHash))
	return &model.CreateTournamentResponse{TournamentID: id, TxID: txHash}, nil
}

// JoinTournament runs the approve-then-join saga for the active wallet.
//
// The approval is a true dependency: the join transaction fails unless the
// approval has confirmed, so the two are strictly serialized. An
// AlreadyJoined rejection is recoverable: state is resynchronized and the
// existing membership is reported instead of an error.
func (o *Orchestrator) JoinTournament(ctx context.Context, id uint64) (*model.JoinResponse, error) {
	addr, err := o.wallet.Address()
	if err != nil {
		return nil, err
	}

	t, err := o.registry.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.HasParticipant(addr) {
		return o.alreadyJoined(ctx, id)
	}
	// Advisory only: another participant can still take the last seat between
	// this check and confirmation. The ledger has the final word.
	if t.IsFull() {
		return nil, fmt.Errorf("%w: tournament %d", model.ErrTournamentFull, id)
	}

	entryID := o.record(ctx, model.TransactionTypeJoin, id, t.EntryFee)

	saga := o.NewJoinSaga(id, t.EntryFee, addr)

	o.writeMu.Lock()
	err = saga.Run(ctx)
	o.writeMu.Unlock()

	if saga.ApproveTx != "" {
		o.recordApproval(ctx, id, t.EntryFee, saga)
	}

	if err != nil {
		if errors.Is(err, model.ErrAlreadyJoined) {
			o.settle(ctx, entryID, saga.JoinTx, nil)
			return o.alreadyJoined(ctx, id)
		}
		o.settle(ctx, entryID, saga.JoinTx, err)
		return nil, err
	}

	o.settle(ctx, entryID, saga.JoinTx, nil)
	o.invalidate()
	if _, err := o.wallet.RefreshBalance(ctx); err != nil {
		o.log.Warn("balance refresh after join failed", zap.Error(err))
	}

	fresh, err := o.registry.GetTournament(ctx, id)
	if err != nil {
		// The join confirmed; a stale projection is not worth failing over.
		o.log.Warn("tournament resync after join failed", zap.Uint64("id", id), zap.Error(err))
		fresh = t
	}
	o.log.Info("tournament joined", zap.Uint64("id", id), zap.String("player", addr), zap.String("tx", saga.JoinTx))
	return &model.JoinResponse{
		Status:     model.JoinStatusJoined,
		TxID:       saga.JoinTx,
		ApproveTx:  saga.ApproveTx,
		Tournament: fresh,
	}, nil
}

// alreadyJoined resynchronizes and reports existing membership as an
// informational outcome, never a failure.
func (o *Orchestrator) alreadyJoined(ctx context.Context, id uint64) (*model.JoinResponse, error) {
	o.invalidate()
	fresh, err := o.registry.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.JoinResponse{
		Status:     model.JoinStatusAlreadyJoined,
		NextStep:   model.NextStep(model.ErrAlreadyJoined),
		Tournament: fresh,
	}, nil
}

// SubmitScore records a score for the active tournament. At most one
// submission per participant; a DuplicateSubmission rejection is surfaced
// verbatim and never retried.
func (o *Orchestrator) SubmitScore(ctx context.Context, id, score, completionTimeMs uint64) (*model.SubmitScoreResponse, error) {
	addr, err := o.wallet.Address()
	if err != nil {
		return nil, err
	}

	entryID := o.record(ctx, model.TransactionTypeSubmit, id, "")

	o.writeMu.Lock()
	txHash, err := o.registry.SubmitScore(ctx, id, score, completionTimeMs)
	o.writeMu.Unlock()

	if err != nil {
		o.settle(ctx, entryID, txHash, err)
		return nil, err
	}
	o.settle(ctx, entryID, txHash, nil)
	o.invalidate()

	o.log.Info("score submitted",
		zap.Uint64("id", id), zap.String("player", addr), zap.Uint64("score", score), zap.String("tx", txHash))
	return &model.SubmitScoreResponse{TxID: txHash}, nil
}

// GetTournament reads one tournament straight from the registry.
func (o *Orchestrator) GetTournament(ctx context.Context, id uint64) (*model.Tournament, error) {
	return o.registry.GetTournament(ctx, id)
}

// GetParticipant reads one participant record straight from the registry.
func (o *Orchestrator) GetParticipant(ctx context.Context, id uint64, player string) (*model.Participant, error) {
	return o.registry.GetParticipant(ctx, id, player)
}

// ActiveTournamentIDs lists ids of tournaments not yet completed.
func (o *Orchestrator) ActiveTournamentIDs(ctx context.Context) ([]uint64, error) {
	return o.registry.ActiveTournamentIDs(ctx)
}

// AllTournamentsWithDetails fetches every active tournament individually.
// A fetch failure for one id is logged and skipped, not propagated: partial
// results are a valid, expected outcome. Results are cached until the next
// write or ledger event.
func (o *Orchestrator) AllTournamentsWithDetails(ctx context.Context) ([]model.Tournament, error) {
	o.mu.Lock()
	if o.cacheValid {
		out := make([]model.Tournament, len(o.cached))
		copy(out, o.cached)
		o.mu.Unlock()
		return out, nil
	}
	o.mu.Unlock()

	ids, err := o.registry.ActiveTournamentIDs(ctx)
	if err != nil {
		return nil, err
	}

	tournaments := make([]model.Tournament, 0, len(ids))
	for _, id := range ids {
		t, err := o.registry.GetTournament(ctx, id)
		if err != nil {
			o.log.Warn("skipping tournament fetch", zap.Uint64("id", id), zap.Error(err))
			continue
		}
		tournaments = append(tournaments, *t)
	}

	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].StartTime.After(tournaments[j].StartTime)
	})

	o.mu.Lock()
	o.cached = tournaments
	o.cacheValid = true
	o.mu.Unlock()

	out := make([]model.Tournament, len(tournaments))
	copy(out, tournaments)
	return out, nil
}

// IsUserInTournament derives membership from the participant record.
// A lookup failure is reported as an error, not as "not a participant":
// a network failure silently reported as not-joined would mislead a user
// who has in fact joined.
func (o *Orchestrator) IsUserInTournament(ctx context.Context, id uint64, player string) (bool, error) {
	p, err := o.registry.GetParticipant(ctx, id, player)
	if err != nil {
		return false, err
	}
	return !p.IsZero(), nil
}

// Start begins consuming ledger events: each event invalidates the cached
// aggregate views and is republished to local subscribers. Requires a
// websocket endpoint.
func (o *Orchestrator) Start(ctx context.Context) error {
	events, stop, err := o.registry.WatchEvents(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.stopWatch = stop
	o.mu.Unlock()

	go func() {
		for ev := range events {
			o.invalidate()
			o.refreshOnOwnEvent(ctx, ev)
			o.bus.publish(ev)
		}
	}()
	return nil
}

// refreshOnOwnEvent refreshes the cached balance when an event moved our
// tokens: our own join (fee escrowed) or our own win (prize paid out).
func (o *Orchestrator) refreshOnOwnEvent(ctx context.Context, ev model.LedgerEvent) {
	addr, err := o.wallet.Address()
	if err != nil {
		return
	}
	affected := (ev.Type == model.EventPlayerJoined && common.SameAddress(ev.Player, addr)) ||
		(ev.Type == model.EventTournamentEnded && common.SameAddress(ev.Winner, addr))
	if !affected {
		return
	}
	if _, err := o.wallet.RefreshBalance(ctx); err != nil {
		o.log.Warn("balance refresh on ledger event failed", zap.Error(err))
	}
}

// Close stops the event pump and drops every local subscription.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	stop := o.stopWatch
	o.stopWatch = nil
	o.mu.Unlock()
	if stop != nil {
		stop()
	}
	o.bus.clear()
}

// History lists locally issued transactions, newest first.
func (o *Orchestrator) History(ctx context.Context, req *model.HistoryRequest) ([]model.Transaction, error) {
	return o.store.List(ctx, req)
}

func (o *Orchestrator) invalidate() {
	o.mu.Lock()
	o.cacheValid = false
	o.mu.Unlock()
}

// record opens a pending bookkeeping entry. Bookkeeping failures are logged,
// never allowed to block the ledger operation itself.
func (o *Orchestrator) record(ctx context.Context, txType model.TransactionType, tournamentID uint64, amount string) string {
	entry := &model.Transaction{
		ID:           history.NewID(),
		Type:         txType,
		TournamentID: tournamentID,
		Amount:       amount,
		Status:       model.TransactionPending,
		Timestamp:    time.Now().UTC(),
	}
	if err := o.store.Record(ctx, entry); err != nil {
		o.log.Warn("failed to record transaction", zap.Error(err))
	}
	return entry.ID
}

func (o *Orchestrator) settle(ctx context.Context, entryID, txHash string, opErr error) {
	status := model.TransactionConfirmed
	errMsg := ""
	if opErr != nil {
		status = model.TransactionFailed
		errMsg = opErr.Error()
	}
	if err := o.store.UpdateStatus(ctx, entryID, status, txHash, errMsg); err != nil {
		o.log.Warn("failed to update transaction", zap.Error(err))
	}
}

// recordApproval books the approval leg of a join saga after the fact.
func (o *Orchestrator) recordApproval(ctx context.Context, tournamentID uint64, amount string, saga *JoinSaga) {
	entry := &model.Transaction{
		ID:           history.NewID(),
		Type:         model.TransactionTypeApprove,
		TournamentID: tournamentID,
		Amount:       amount,
		Status:       model.TransactionConfirmed,
		TxHash:       saga.ApproveTx,
		Timestamp:    time.Now().UTC(),
	}
	if err := o.store.Record(ctx, entry); err != nil {
		o.log.Warn("failed to record approval", zap.Error(err))
	}
}
