package tournament

import (
	"context"
	"errors"
	"testing"

	"github.com/brainink/arena/internal/model"

	"github.com/stretchr/testify/require"
)

func newSagaFixture(t *testing.T, entryFee string) (*Orchestrator, *fakeLedger, *fakeRegistry, uint64) {
	t.Helper()
	o, _, ledger, registry := newTestOrchestrator(t)
	resp, err := o.CreateTournament(context.Background(), &model.CreateTournamentRequest{
		Name: "t", EntryFee: entryFee, MaxParticipants: 4, DurationHours: 1,
	})
	require.NoError(t, err)
	return o, ledger, registry, resp.TournamentID
}

func TestSagaApproveThenJoin(t *testing.T) {
	o, ledger, _, id := newSagaFixture(t, "10")
	ledger.setAllowance(testAddr, "5")

	saga := o.NewJoinSaga(id, "10", testAddr)
	require.Equal(t, SagaIdle, saga.State())

	require.NoError(t, saga.Run(context.Background()))
	require.Equal(t, SagaJoined, saga.State())
	require.NotEmpty(t, saga.ApproveTx)
	require.NotEmpty(t, saga.JoinTx)
	require.Equal(t, 1, ledger.approvals)
}

func TestSagaSkipsApprovalWhenAllowanceCovers(t *testing.T) {
	o, ledger, _, id := newSagaFixture(t, "10")
	ledger.setAllowance(testAddr, "10")

	saga := o.NewJoinSaga(id, "10", testAddr)
	require.NoError(t, saga.Run(context.Background()))
	require.Equal(t, SagaJoined, saga.State())
	require.Empty(t, saga.ApproveTx)
	require.Zero(t, ledger.approvals)
}

func TestSagaResumesWithoutReapproving(t *testing.T) {
	o, ledger, registry, id := newSagaFixture(t, "10")
	ledger.setAllowance(testAddr, "0")

	// First run: approval confirms, then the join fails transiently.
	registry.joinErr = errors.New("rpc connection reset")

	saga := o.NewJoinSaga(id, "10", testAddr)
	err := saga.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, SagaFailed, saga.State())
	require.NotEmpty(t, saga.ApproveTx)
	require.Equal(t, 1, ledger.approvals)

	// Second run resumes at the join; the confirmed approval is not repeated.
	registry.joinErr = nil
	require.NoError(t, saga.Run(context.Background()))
	require.Equal(t, SagaJoined, saga.State())
	require.Equal(t, 1, ledger.approvals)
	require.NotEmpty(t, saga.JoinTx)
}

func TestSagaAlreadyJoinedEndsJoined(t *testing.T) {
	o, ledger, _, id := newSagaFixture(t, "1")
	ledger.setAllowance(testAddr, "100")

	first := o.NewJoinSaga(id, "1", testAddr)
	require.NoError(t, first.Run(context.Background()))

	second := o.NewJoinSaga(id, "1", testAddr)
	err := second.Run(context.Background())
	require.ErrorIs(t, err, model.ErrAlreadyJoined)
	// Membership exists, so the saga is done, not failed.
	require.Equal(t, SagaJoined, second.State())
}

func TestSagaAllowanceReadFailure(t *testing.T) {
	o, ledger, _, id := newSagaFixture(t, "10")
	ledger.allowanceErr = errors.New("rpc down")

	saga := o.NewJoinSaga(id, "10", testAddr)
	err := saga.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, SagaFailed, saga.State())
	require.ErrorIs(t, saga.Err(), err)
}
