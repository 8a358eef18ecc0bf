package tournament

import (
	"context"
	"errors"
	"fmt"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/model"

	"go.uber.org/zap"
)

// SagaState is the observable phase of a join saga.
type SagaState string

const (
	SagaIdle      SagaState = "IDLE"
	SagaApproving SagaState = "APPROVING"
	SagaJoining   SagaState = "JOINING"
	SagaJoined    SagaState = "JOINED"
	SagaFailed    SagaState = "FAILED"
)

// JoinSaga walks the two-phase escrow for a single join: check the standing
// allowance, approve the entry fee if it falls short, then join. The approval
// must confirm before the join is attempted; there is no parallelism to
// exploit here.
//
// A saga is single-use per attempt but resumable: after a failure, Run picks
// up at the step that failed, so a confirmed approval is never repeated.
// Not safe for concurrent use; the orchestrator serializes all writes.
type JoinSaga struct {
	TournamentID uint64
	EntryFee     string
	Owner        string

	ApproveTx string
	JoinTx    string

	ledger   TokenLedger
	registry Registry
	log      *zap.Logger

	phase   SagaState
	lastErr error
}

// NewJoinSaga prepares a saga for one (tournament, wallet) join attempt.
func (o *Orchestrator) NewJoinSaga(tournamentID uint64, entryFee, owner string) *JoinSaga {
	return &JoinSaga{
		TournamentID: tournamentID,
		EntryFee:     entryFee,
		Owner:        owner,
		ledger:       o.ledger,
		registry:     o.registry,
		log:          o.log,
		phase:        SagaIdle,
	}
}

// State reports the saga phase. A saga that stopped on an error reports
// Failed until Run is called again.
func (s *JoinSaga) State() SagaState {
	if s.lastErr != nil {
		return SagaFailed
	}
	return s.phase
}

// Err returns the error the saga stopped on, if any.
func (s *JoinSaga) Err() error {
	return s.lastErr
}

// Run drives the saga to completion or to the first error. Calling Run again
// after an error resumes from the failed step.
func (s *JoinSaga) Run(ctx context.Context) error {
	s.lastErr = nil

	for {
		switch s.phase {
		case SagaIdle:
			needsApproval, err := s.needsApproval(ctx)
			if err != nil {
				return s.fail(err)
			}
			if needsApproval {
				s.phase = SagaApproving
			} else {
				s.phase = SagaJoining
			}

		case SagaApproving:
			txHash, err := s.ledger.Approve(ctx, s.registry.SpenderAddress(), s.EntryFee)
			if err != nil {
				return s.fail(err)
			}
			s.ApproveTx = txHash
			s.log.Info("entry fee approved",
				zap.Uint64("tournament", s.TournamentID), zap.String("amount", s.EntryFee), zap.String("tx", txHash))
			s.phase = SagaJoining

		case SagaJoining:
			txHash, err := s.registry.JoinTournament(ctx, s.TournamentID)
			if err != nil {
				return s.fail(err)
			}
			s.JoinTx = txHash
			s.phase = SagaJoined

		case SagaJoined:
			return nil

		default:
			return s.fail(fmt.Errorf("join saga in unknown phase %q", s.phase))
		}
	}
}

// needsApproval compares the standing allowance against the entry fee.
// A confirmed approval guarantees allowance >= fee, so an earlier approval
// covering this fee lets the saga skip straight to the join.
func (s *JoinSaga) needsApproval(ctx context.Context) (bool, error) {
	allowance, err := s.ledger.Allowance(ctx, s.Owner, s.registry.SpenderAddress())
	if err != nil {
		return false, fmt.Errorf("failed to read allowance: %w", err)
	}
	decimals, err := s.ledger.Decimals(ctx)
	if err != nil {
		return false, err
	}
	cmp, err := common.CompareAmounts(allowance, s.EntryFee, decimals)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

func (s *JoinSaga) fail(err error) error {
	if errors.Is(err, model.ErrAlreadyJoined) {
		// Not a failure: the ledger confirmed membership already exists.
		s.phase = SagaJoined
		return err
	}
	s.lastErr = err
	return err
}
