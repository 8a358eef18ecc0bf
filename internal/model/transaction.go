package model

import (
	"fmt"
	"time"
)

// TransactionType classifies a locally issued ledger write.
type TransactionType string

const (
	TransactionTypeCreate  TransactionType = "CREATE"
	TransactionTypeApprove TransactionType = "APPROVE"
	TransactionTypeJoin    TransactionType = "JOIN"
	TransactionTypeSubmit  TransactionType = "SUBMIT"
)

// TransactionStatus is the local view of a submitted transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionConfirmed TransactionStatus = "CONFIRMED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Transaction is user-facing bookkeeping for a ledger write issued by this
// session. It is never authoritative: only confirmed ledger reads are proof
// of chain state.
type Transaction struct {
	ID           string            `json:"id"`
	Type         TransactionType   `json:"type"`
	TournamentID uint64            `json:"tournamentId,omitempty"`
	Amount       string            `json:"amount,omitempty"`
	Status       TransactionStatus `json:"status"`
	TxHash       string            `json:"txHash,omitempty"`
	Error        string            `json:"error,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// HistoryResponse represents response for GET /wallet/transactions
type HistoryResponse struct {
	Address      string        `json:"address"`
	Transactions []Transaction `json:"transactions"`
}

// HistoryRequest represents filter parameters for GET /wallet/transactions
type HistoryRequest struct {
	Type   *TransactionType   `form:"type"`
	Status *TransactionStatus `form:"status"`
	From   *time.Time         `form:"from"`
	To     *time.Time         `form:"to"`
}

// Validate validates HistoryRequest filter parameters.
func (r *HistoryRequest) Validate() error {
	if r.Type != nil {
		switch *r.Type {
		case TransactionTypeCreate, TransactionTypeApprove, TransactionTypeJoin, TransactionTypeSubmit:
		default:
			return fmt.Errorf("type must be CREATE, APPROVE, JOIN or SUBMIT")
		}
	}
	if r.Status != nil {
		switch *r.Status {
		case TransactionPending, TransactionConfirmed, TransactionFailed:
		default:
			return fmt.Errorf("status must be PENDING, CONFIRMED or FAILED")
		}
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	return nil
}

// Matches reports whether tx passes every set filter.
func (r *HistoryRequest) Matches(tx *Transaction) bool {
	if r.Type != nil && *r.Type != tx.Type {
		return false
	}
	if r.Status != nil && *r.Status != tx.Status {
		return false
	}
	if r.From != nil && tx.Timestamp.Before(*r.From) {
		return false
	}
	if r.To != nil && tx.Timestamp.After(*r.To) {
		return false
	}
	return true
}
