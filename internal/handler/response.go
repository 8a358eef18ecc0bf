package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brainink/arena/internal/model"
)

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes the standard error body: message, stable code and the
// actionable next step when the taxonomy has one.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{
		Error:    err.Error(),
		Code:     errorCode(err),
		NextStep: model.NextStep(err),
	})
}

// writeLedgerError maps a classified ledger error onto an HTTP status.
func writeLedgerError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNoSigner):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrInsufficientBalance),
		errors.Is(err, model.ErrInsufficientAllowance):
		return http.StatusPaymentRequired
	case errors.Is(err, model.ErrNetworkMismatch),
		errors.Is(err, model.ErrAlreadyJoined),
		errors.Is(err, model.ErrTournamentFull),
		errors.Is(err, model.ErrDuplicateSubmission):
		return http.StatusConflict
	case errors.Is(err, model.ErrConfirmationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, model.ErrTransactionReverted),
		errors.Is(err, model.ErrCreationEventMissing):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrNoSigner):
		return "NO_SIGNER"
	case errors.Is(err, model.ErrNetworkMismatch):
		return "NETWORK_MISMATCH"
	case errors.Is(err, model.ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, model.ErrInsufficientAllowance):
		return "INSUFFICIENT_ALLOWANCE"
	case errors.Is(err, model.ErrAlreadyJoined):
		return "ALREADY_JOINED"
	case errors.Is(err, model.ErrTournamentFull):
		return "TOURNAMENT_FULL"
	case errors.Is(err, model.ErrDuplicateSubmission):
		return "DUPLICATE_SUBMISSION"
	case errors.Is(err, model.ErrConfirmationTimeout):
		return "CONFIRMATION_TIMEOUT"
	case errors.Is(err, model.ErrCreationEventMissing):
		return "CREATION_EVENT_MISSING"
	case errors.Is(err, model.ErrTransactionReverted):
		return "TRANSACTION_REVERTED"
	}
	return ""
}
