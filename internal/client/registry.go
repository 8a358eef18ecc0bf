package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/model"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RegistryClient talks to the TournamentManager contract: the authoritative
// store of tournament and participant records. It converts between on-chain
// base units and the decimal strings the rest of the service uses, reading the
// scale from the token contract.
type RegistryClient struct {
	chain    *Chain
	contract *bind.BoundContract
	addr     ethcommon.Address
	signer   SignerFunc
	decimals func(ctx context.Context) (uint8, error)
}

// NewRegistryClient binds the TournamentManager contract at contractAddr.
// decimals is the token scale getter (TokenClient.Decimals).
func NewRegistryClient(chain *Chain, contractAddr string, signer SignerFunc, decimals func(ctx context.Context) (uint8, error)) (*RegistryClient, error) {
	normalized, err := common.NormalizeAddress(contractAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid tournament contract address: %w", err)
	}
	addr := ethcommon.HexToAddress(normalized)
	backend := chain.Backend()
	return &RegistryClient{
		chain:    chain,
		contract: bind.NewBoundContract(addr, parsedTournamentABI, backend, backend, backend),
		addr:     addr,
		signer:   signer,
		decimals: decimals,
	}, nil
}

// SpenderAddress is the address the token allowance must name: entry fees are
// escrowed by the tournament contract itself.
func (r *RegistryClient) SpenderAddress() string {
	return strings.ToLower(r.addr.Hex())
}

// rawTournament matches the getTournament return tuple.
type rawTournament struct {
	Id                  *big.Int
	Name                string
	Creator             ethcommon.Address
	EntryFee            *big.Int
	MaxParticipants     *big.Int
	CurrentParticipants *big.Int
	PrizePool           *big.Int
	StartTime           *big.Int
	EndTime             *big.Int
	IsActive            bool
	IsCompleted         bool
	Participants        []ethcommon.Address
	Winner              ethcommon.Address
	VrfRequestId        *big.Int
}

// rawParticipant matches the getParticipant return tuple.
type rawParticipant struct {
	Player         ethcommon.Address
	Score          *big.Int
	CompletionTime *big.Int
	HasSubmitted   bool
}

// CreateTournament submits a creation transaction, waits for confirmation and
// extracts the new tournament id from the TournamentCreated event in the
// receipt. A confirmed receipt without that event violates the protocol
// contract and fails with CreationError semantics.
func (r *RegistryClient) CreateTournament(ctx context.Context, name, entryFee string, maxParticipants uint32, duration time.Duration) (uint64, string, error) {
	decimals, err := r.decimals(ctx)
	if err != nil {
		return 0, "", err
	}
	fee, err := common.ParseUnits(entryFee, decimals)
	if err != nil {
		return 0, "", fmt.Errorf("invalid entry fee: %w", err)
	}

	opts, err := r.signer(ctx)
	if err != nil {
		return 0, "", err
	}

	tx, err := r.contract.Transact(opts, "createTournament",
		name, fee, new(big.Int).SetUint64(uint64(maxParticipants)), big.NewInt(int64(duration.Seconds())))
	if err != nil {
		return 0, "", model.ClassifyLedgerError(err)
	}

	receipt, err := r.chain.WaitMined(ctx, tx)
	if err != nil {
		return 0, tx.Hash().Hex(), model.ClassifyLedgerError(err)
	}

	id, ok := r.createdID(receipt)
	if !ok {
		return 0, tx.Hash().Hex(), fmt.Errorf("%w: tx %s", model.ErrCreationEventMissing, tx.Hash().Hex())
	}
	return id, tx.Hash().Hex(), nil
}

// createdID scans the receipt for the TournamentCreated event emitted by our
// contract and returns the indexed tournament id.
func (r *RegistryClient) createdID(receipt *types.Receipt) (uint64, bool) {
	createdTopic := parsedTournamentABI.Events["TournamentCreated"].ID
	for _, lg := range receipt.Logs {
		if lg.Address != r.addr || len(lg.Topics) < 2 || lg.Topics[0] != createdTopic {
			continue
		}
		return new(big.Int).SetBytes(lg.Topics[1].Bytes()).Uint64(), true
	}
	return 0, false
}

// JoinTournament submits a join transaction and waits for confirmation.
// Ledger rejections come back classified (AlreadyJoined, TournamentFull, ...).
func (r *RegistryClient) JoinTournament(ctx context.Context, id uint64) (string, error) {
	opts, err := r.signer(ctx)
	if err != nil {
		return "", err
	}
	tx, err := r.contract.Transact(opts, "joinTournament", new(big.Int).SetUint64(id))
	if err != nil {
		return "", model.ClassifyLedgerError(err)
	}
	if _, err := r.chain.WaitMined(ctx, tx); err != nil {
		return tx.Hash().Hex(), model.ClassifyLedgerError(err)
	}
	return tx.Hash().Hex(), nil
}

// SubmitScore records a score for the active tournament. The ledger enforces
// the one-submission-per-participant rule.
func (r *RegistryClient) SubmitScore(ctx context.Context, id, score, completionTimeMs uint64) (string, error) {
	opts, err := r.signer(ctx)
	if err != nil {
		return "", err
	}
	tx, err := r.contract.Transact(opts, "submitScore",
		new(big.Int).SetUint64(id), new(big.Int).SetUint64(score), new(big.Int).SetUint64(completionTimeMs))
	if err != nil {
		return "", model.ClassifyLedgerError(err)
	}
	if _, err := r.chain.WaitMined(ctx, tx); err != nil {
		return tx.Hash().Hex(), model.ClassifyLedgerError(err)
	}
	return tx.Hash().Hex(), nil
}

// GetTournament reads one tournament record.
func (r *RegistryClient) GetTournament(ctx context.Context, id uint64) (*model.Tournament, error) {
	decimals, err := r.decimals(ctx)
	if err != nil {
		return nil, err
	}

	var out []interface{}
	err = r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getTournament", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	raw := *abi.ConvertType(out[0], new(rawTournament)).(*rawTournament)

	participants := make([]string, 0, len(raw.Participants))
	for _, p := range raw.Participants {
		participants = append(participants, strings.ToLower(p.Hex()))
	}

	t := &model.Tournament{
		ID:                  raw.Id.Uint64(),
		Name:                raw.Name,
		Creator:             strings.ToLower(raw.Creator.Hex()),
		EntryFee:            common.FormatUnits(raw.EntryFee, decimals),
		MaxParticipants:     uint32(raw.MaxParticipants.Uint64()),
		CurrentParticipants: uint32(raw.CurrentParticipants.Uint64()),
		PrizePool:           common.FormatUnits(raw.PrizePool, decimals),
		StartTime:           time.Unix(raw.StartTime.Int64(), 0).UTC(),
		EndTime:             time.Unix(raw.EndTime.Int64(), 0).UTC(),
		IsActive:            raw.IsActive,
		IsCompleted:         raw.IsCompleted,
		Participants:        participants,
	}
	if !common.IsZeroAddress(raw.Winner.Hex()) {
		t.Winner = strings.ToLower(raw.Winner.Hex())
	}
	t.State = t.DeriveState()
	return t, nil
}

// GetParticipant reads the participant record for one (tournament, player)
// pair. The ledger returns a zero record for addresses that never joined.
func (r *RegistryClient) GetParticipant(ctx context.Context, id uint64, player string) (*model.Participant, error) {
	normalized, err := common.NormalizeAddress(player)
	if err != nil {
		return nil, err
	}

	var out []interface{}
	err = r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getParticipant",
		new(big.Int).SetUint64(id), ethcommon.HexToAddress(normalized))
	if err != nil {
		return nil, fmt.Errorf("failed to get participant %s in tournament %d: %w", normalized, id, err)
	}
	raw := *abi.ConvertType(out[0], new(rawParticipant)).(*rawParticipant)

	p := &model.Participant{
		Score:          raw.Score.Uint64(),
		CompletionTime: raw.CompletionTime.Uint64(),
		HasSubmitted:   raw.HasSubmitted,
	}
	if !common.IsZeroAddress(raw.Player.Hex()) {
		p.Player = strings.ToLower(raw.Player.Hex())
	}
	return p, nil
}

// ActiveTournamentIDs lists ids of tournaments not yet completed.
func (r *RegistryClient) ActiveTournamentIDs(ctx context.Context) ([]uint64, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getActiveTournaments"); err != nil {
		return nil, fmt.Errorf("failed to list active tournaments: %w", err)
	}
	raw := out[0].([]*big.Int)
	ids := make([]uint64, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, id.Uint64())
	}
	return ids, nil
}

// WatchEvents subscribes to every tournament contract event and delivers them
// decoded. The returned stop function must be called to release the
// subscription; the channel closes on stop or subscription failure.
func (r *RegistryClient) WatchEvents(ctx context.Context) (<-chan model.LedgerEvent, func(), error) {
	ws, err := r.chain.wsBackend()
	if err != nil {
		return nil, nil, err
	}

	logs := make(chan types.Log, 32)
	sub, err := ws.SubscribeFilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []ethcommon.Address{r.addr},
	}, logs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe to contract logs: %w", err)
	}

	out := make(chan model.LedgerEvent, 32)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				sub.Unsubscribe()
				return
			case <-sub.Err():
				return
			case lg := <-logs:
				ev, ok := r.decodeLog(ctx, lg)
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					sub.Unsubscribe()
					return
				}
			}
		}
	}()
	return out, sub.Unsubscribe, nil
}

// decodeLog turns a raw contract log into a LedgerEvent. Unknown topics and
// undecodable payloads are skipped, not fatal: the stream must survive
// contract upgrades that add events.
func (r *RegistryClient) decodeLog(ctx context.Context, lg types.Log) (model.LedgerEvent, bool) {
	if len(lg.Topics) < 2 {
		return model.LedgerEvent{}, false
	}

	ev := model.LedgerEvent{
		TournamentID: new(big.Int).SetBytes(lg.Topics[1].Bytes()).Uint64(),
		TxHash:       lg.TxHash.Hex(),
	}

	decimals, err := r.decimals(ctx)
	if err != nil {
		return model.LedgerEvent{}, false
	}

	switch lg.Topics[0] {
	case parsedTournamentABI.Events["TournamentCreated"].ID:
		vals, err := parsedTournamentABI.Unpack("TournamentCreated", lg.Data)
		if err != nil {
			return model.LedgerEvent{}, false
		}
		ev.Type = model.EventTournamentCreated
		ev.Name = vals[0].(string)
		ev.Creator = strings.ToLower(vals[1].(ethcommon.Address).Hex())
		ev.EntryFee = common.FormatUnits(vals[2].(*big.Int), decimals)

	case parsedTournamentABI.Events["PlayerJoined"].ID:
		vals, err := parsedTournamentABI.Unpack("PlayerJoined", lg.Data)
		if err != nil {
			return model.LedgerEvent{}, false
		}
		ev.Type = model.EventPlayerJoined
		ev.Player = strings.ToLower(vals[0].(ethcommon.Address).Hex())

	case parsedTournamentABI.Events["ScoreSubmitted"].ID:
		vals, err := parsedTournamentABI.Unpack("ScoreSubmitted", lg.Data)
		if err != nil {
			return model.LedgerEvent{}, false
		}
		ev.Type = model.EventScoreSubmitted
		ev.Player = strings.ToLower(vals[0].(ethcommon.Address).Hex())
		ev.Score = vals[1].(*big.Int).Uint64()
		ev.Completion = vals[2].(*big.Int).Uint64()

	case parsedTournamentABI.Events["TournamentEnded"].ID:
		vals, err := parsedTournamentABI.Unpack("TournamentEnded", lg.Data)
		if err != nil {
			return model.LedgerEvent{}, false
		}
		ev.Type = model.EventTournamentEnded
		ev.Winner = strings.ToLower(vals[0].(ethcommon.Address).Hex())
		ev.Prize = common.FormatUnits(vals[1].(*big.Int), decimals)

	default:
		return model.LedgerEvent{}, false
	}
	return ev, true
}
