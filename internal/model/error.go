package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	NextStep string `json:"nextStep,omitempty"`
}

// Sentinel errors for every failure class the ledger can produce. Callers match
// with errors.Is; the original ledger message is preserved by wrapping so it
// stays available for diagnostics.
var (
	// ErrNoSigner means no signing capability is available (wallet not
	// connected or keystore missing).
	ErrNoSigner = errors.New("no signing capability available")

	// ErrNetworkMismatch means the active chain is not the one the
	// contracts are deployed on.
	ErrNetworkMismatch = errors.New("wrong network active")

	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrAlreadyJoined is recoverable: the address is already a participant.
	// The orchestrator resyncs state and reports membership instead of failing.
	ErrAlreadyJoined = errors.New("already joined")

	ErrTournamentFull      = errors.New("tournament full")
	ErrDuplicateSubmission = errors.New("score already submitted")

	// ErrCreationEventMissing means the creation transaction confirmed but
	// the receipt carried no TournamentCreated event. The protocol contract
	// was violated; treated as fatal.
	ErrCreationEventMissing = errors.New("tournament creation event not found in receipt")

	// ErrTransactionReverted is the generic fallback for unclassified
	// ledger rejections.
	ErrTransactionReverted = errors.New("transaction reverted")

	ErrConfirmationTimeout = errors.New("transaction confirmation timed out")
)

// revert reason fragments emitted by the TournamentManager and INK token
// contracts, matched case-insensitively.
var revertClasses = []struct {
	fragment string
	sentinel error
}{
	{"already joined", ErrAlreadyJoined},
	{"already a participant", ErrAlreadyJoined},
	{"tournament is full", ErrTournamentFull},
	{"tournament full", ErrTournamentFull},
	{"already submitted", ErrDuplicateSubmission},
	{"score submitted", ErrDuplicateSubmission},
	{"insufficient allowance", ErrInsufficientAllowance},
	{"transfer amount exceeds allowance", ErrInsufficientAllowance},
	{"insufficient balance", ErrInsufficientBalance},
	{"transfer amount exceeds balance", ErrInsufficientBalance},
}

// ClassifyLedgerError maps an opaque ledger rejection onto the error taxonomy.
// Unrecognized rejections degrade to ErrTransactionReverted rather than
// escaping unclassified. The underlying message is always preserved.
func ClassifyLedgerError(err error) error {
	if err == nil {
		return nil
	}
	// Already classified errors pass through untouched.
	for _, c := range revertClasses {
		if errors.Is(err, c.sentinel) {
			return err
		}
	}
	if errors.Is(err, ErrConfirmationTimeout) || errors.Is(err, ErrNoSigner) ||
		errors.Is(err, ErrNetworkMismatch) || errors.Is(err, ErrTransactionReverted) {
		return err
	}

	msg := strings.ToLower(err.Error())
	for _, c := range revertClasses {
		if strings.Contains(msg, c.fragment) {
			return fmt.Errorf("%w: %s", c.sentinel, err)
		}
	}
	return fmt.Errorf("%w: %s", ErrTransactionReverted, err)
}

// NextStep returns the actionable follow-up for a blocking error, or the
// informational hint for a recoverable one. Empty when there is nothing
// useful to suggest.
func NextStep(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient INK balance - top up and retry"
	case errors.Is(err, ErrInsufficientAllowance):
		return "token allowance too low - approve the entry fee and retry"
	case errors.Is(err, ErrAlreadyJoined):
		return "you already joined - submit your score when the tournament is active"
	case errors.Is(err, ErrTournamentFull):
		return "tournament is full - pick another tournament"
	case errors.Is(err, ErrDuplicateSubmission):
		return "score already recorded - wait for the tournament to resolve"
	case errors.Is(err, ErrNoSigner):
		return "connect a wallet first"
	case errors.Is(err, ErrNetworkMismatch):
		return "switch your wallet to the configured network and reconnect"
	case errors.Is(err, ErrConfirmationTimeout):
		return "the transaction may still confirm - check history before retrying"
	}
	return ""
}
