package model

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestClassifyLedgerError(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"execution reverted: Already joined", ErrAlreadyJoined},
		{"execution reverted: caller is already a participant", ErrAlreadyJoined},
		{"execution reverted: Tournament is full", ErrTournamentFull},
		{"execution reverted: Score already submitted", ErrDuplicateSubmission},
		{"execution reverted: ERC20: transfer amount exceeds allowance", ErrInsufficientAllowance},
		{"execution reverted: ERC20: transfer amount exceeds balance", ErrInsufficientBalance},
		{"execution reverted: something else entirely", ErrTransactionReverted},
		{"rpc timeout", ErrTransactionReverted},
	}

	for _, c := range cases {
		got := ClassifyLedgerError(errors.New(c.msg))
		if !errors.Is(got, c.want) {
			t.Errorf("ClassifyLedgerError(%q) = %v, want %v", c.msg, got, c.want)
		}
		// The raw ledger message must survive for diagnostics.
		if got.Error() == c.want.Error() {
			t.Errorf("ClassifyLedgerError(%q) dropped the underlying message", c.msg)
		}
	}
}

func TestClassifyLedgerErrorPassthrough(t *testing.T) {
	if got := ClassifyLedgerError(nil); got != nil {
		t.Errorf("ClassifyLedgerError(nil) = %v", got)
	}

	// Already classified errors are not double-wrapped into the fallback.
	wrapped := fmt.Errorf("%w: join rejected", ErrAlreadyJoined)
	got := ClassifyLedgerError(wrapped)
	if !errors.Is(got, ErrAlreadyJoined) {
		t.Errorf("classified error lost its class: %v", got)
	}
	if errors.Is(got, ErrTransactionReverted) {
		t.Errorf("classified error degraded to generic fallback: %v", got)
	}

	timeout := fmt.Errorf("%w after 3m", ErrConfirmationTimeout)
	if got := ClassifyLedgerError(timeout); !errors.Is(got, ErrConfirmationTimeout) {
		t.Errorf("timeout lost its class: %v", got)
	}
}

func TestNextStep(t *testing.T) {
	for _, err := range []error{
		ErrInsufficientBalance, ErrAlreadyJoined, ErrTournamentFull,
		ErrDuplicateSubmission, ErrNoSigner, ErrNetworkMismatch, ErrConfirmationTimeout,
	} {
		if NextStep(fmt.Errorf("%w: detail", err)) == "" {
			t.Errorf("NextStep(%v) is empty", err)
		}
	}
	if NextStep(errors.New("unrelated")) != "" {
		t.Error("NextStep for unknown error should be empty")
	}
}

func TestHistoryRequestValidate(t *testing.T) {
	join := TransactionTypeJoin
	bad := TransactionType("SWAP")
	now := time.Now()
	earlier := now.Add(-time.Hour)

	if err := (&HistoryRequest{Type: &join}).Validate(); err != nil {
		t.Errorf("valid type rejected: %v", err)
	}
	if err := (&HistoryRequest{Type: &bad}).Validate(); err == nil {
		t.Error("invalid type accepted")
	}
	if err := (&HistoryRequest{From: &now, To: &earlier}).Validate(); err == nil {
		t.Error("inverted date range accepted")
	}
}

func TestHistoryRequestMatches(t *testing.T) {
	now := time.Now()
	tx := &Transaction{Type: TransactionTypeJoin, Status: TransactionConfirmed, Timestamp: now}

	join := TransactionTypeJoin
	pending := TransactionPending
	if !(&HistoryRequest{Type: &join}).Matches(tx) {
		t.Error("type filter rejected matching tx")
	}
	if (&HistoryRequest{Status: &pending}).Matches(tx) {
		t.Error("status filter accepted mismatched tx")
	}
	later := now.Add(time.Minute)
	if (&HistoryRequest{From: &later}).Matches(tx) {
		t.Error("from filter accepted earlier tx")
	}
}

func TestTournamentDeriveState(t *testing.T) {
	cases := []struct {
		active, completed bool
		want              TournamentState
	}{
		{false, false, StateRegistration},
		{true, false, StateActive},
		{false, true, StateCompleted},
		{true, true, StateCompleted}, // isCompleted wins; never both
	}
	for _, c := range cases {
		tr := &Tournament{IsActive: c.active, IsCompleted: c.completed}
		if got := tr.DeriveState(); got != c.want {
			t.Errorf("DeriveState(active=%v completed=%v) = %s, want %s", c.active, c.completed, got, c.want)
		}
	}
}

func TestTournamentHasParticipant(t *testing.T) {
	tr := &Tournament{Participants: []string{"0x31c3d3de371e155b7daced91cf1c2c675964af30"}}
	if !tr.HasParticipant("0x31C3D3de371e155b7dacEd91Cf1C2C675964Af30") {
		t.Error("membership check must normalize case")
	}
	if tr.HasParticipant("0x3400d455ac4d50df70e581b96f980516af63fa1c") {
		t.Error("non-member reported as participant")
	}
}

func TestParticipantIsZero(t *testing.T) {
	if !(&Participant{}).IsZero() {
		t.Error("empty participant not zero")
	}
	if !(&Participant{Player: "0x0000000000000000000000000000000000000000"}).IsZero() {
		t.Error("zero-address participant not zero")
	}
	if (&Participant{Player: "0x31c3d3de371e155b7daced91cf1c2c675964af30"}).IsZero() {
		t.Error("real participant reported zero")
	}
}
