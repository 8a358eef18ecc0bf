package model

import "fmt"

// CreateTournamentRequest represents request for POST /tournaments
type CreateTournamentRequest struct {
	Name            string `json:"name" binding:"required"`
	EntryFee        string `json:"entryFee" binding:"required"`
	MaxParticipants uint32 `json:"maxParticipants" binding:"required"`
	DurationHours   uint32 `json:"durationHours" binding:"required"`
}

// Validate validates tournament creation parameters.
func (r *CreateTournamentRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.EntryFee == "" {
		return fmt.Errorf("entryFee is required")
	}
	if r.MaxParticipants < 2 {
		return fmt.Errorf("maxParticipants must be at least 2")
	}
	if r.DurationHours == 0 {
		return fmt.Errorf("durationHours must be positive")
	}
	return nil
}

// CreateTournamentResponse represents response for POST /tournaments
type CreateTournamentResponse struct {
	TournamentID uint64 `json:"tournamentId"`
	TxID         string `json:"txId"`
}

// JoinStatus describes the outcome of a join request.
type JoinStatus string

const (
	JoinStatusJoined        JoinStatus = "JOINED"
	JoinStatusAlreadyJoined JoinStatus = "ALREADY_JOINED"
)

// JoinResponse represents response for POST /tournaments/{id}/join.
// AlreadyJoined outcomes are informational, not errors: Tournament carries the
// resynchronized state.
type JoinResponse struct {
	Status     JoinStatus  `json:"status"`
	TxID       string      `json:"txId,omitempty"`
	ApproveTx  string      `json:"approveTxId,omitempty"`
	NextStep   string      `json:"nextStep,omitempty"`
	Tournament *Tournament `json:"tournament,omitempty"`
}

// SubmitScoreRequest represents request for POST /tournaments/{id}/score
type SubmitScoreRequest struct {
	Score            uint64 `json:"score"`
	CompletionTimeMs uint64 `json:"completionTimeMs"`
}

// SubmitScoreResponse represents response for POST /tournaments/{id}/score
type SubmitScoreResponse struct {
	TxID string `json:"txId"`
}

// ConnectResponse represents response for POST /wallet/connect
type ConnectResponse struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Balance string `json:"balance"`
}
