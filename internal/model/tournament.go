package model

import (
	"time"

	"github.com/brainink/arena/internal/common"
)

// TournamentState is the derived lifecycle phase of a tournament. Transitions
// are strictly forward: Registration -> Active -> Completed.
type TournamentState string

const (
	StateRegistration TournamentState = "REGISTRATION"
	StateActive       TournamentState = "ACTIVE"
	StateCompleted    TournamentState = "COMPLETED"
)

// Tournament mirrors the on-ledger tournament record. Amounts are decimal INK
// strings; addresses are normalized lowercase hex.
type Tournament struct {
	ID                  uint64          `json:"id"`
	Name                string          `json:"name"`
	Creator             string          `json:"creator"`
	EntryFee            string          `json:"entryFee"`
	MaxParticipants     uint32          `json:"maxParticipants"`
	CurrentParticipants uint32          `json:"currentParticipants"`
	PrizePool           string          `json:"prizePool"`
	StartTime           time.Time       `json:"startTime"`
	EndTime             time.Time       `json:"endTime"`
	IsActive            bool            `json:"isActive"`
	IsCompleted         bool            `json:"isCompleted"`
	Participants        []string        `json:"participants"`
	Winner              string          `json:"winner,omitempty"`
	State               TournamentState `json:"state"`
}

// DeriveState computes the lifecycle phase from the ledger flags.
// isCompleted wins over isActive: a completed tournament is never active.
func (t *Tournament) DeriveState() TournamentState {
	switch {
	case t.IsCompleted:
		return StateCompleted
	case t.IsActive:
		return StateActive
	default:
		return StateRegistration
	}
}

// HasParticipant reports membership of addr, normalizing case before the check.
func (t *Tournament) HasParticipant(addr string) bool {
	for _, p := range t.Participants {
		if common.SameAddress(p, addr) {
			return true
		}
	}
	return false
}

// IsFull reports whether the participant cap is reached.
func (t *Tournament) IsFull() bool {
	return t.CurrentParticipants >= t.MaxParticipants
}

// Participant mirrors the on-ledger participant record for one
// (tournament, player) pair. HasSubmitted is write-once on the ledger.
type Participant struct {
	Player         string `json:"player"`
	Score          uint64 `json:"score"`
	CompletionTime uint64 `json:"completionTime"` // milliseconds
	HasSubmitted   bool   `json:"hasSubmitted"`
}

// IsZero reports whether this is the default record the ledger returns for an
// address that never joined.
func (p *Participant) IsZero() bool {
	return p.Player == "" || common.IsZeroAddress(p.Player)
}

// LedgerEventType identifies a tournament contract event.
type LedgerEventType string

const (
	EventTournamentCreated LedgerEventType = "TournamentCreated"
	EventPlayerJoined      LedgerEventType = "PlayerJoined"
	EventScoreSubmitted    LedgerEventType = "ScoreSubmitted"
	EventTournamentEnded   LedgerEventType = "TournamentEnded"
)

// LedgerEvent is a decoded tournament contract event. Only the fields relevant
// to the event type are populated.
type LedgerEvent struct {
	Type         LedgerEventType `json:"type"`
	TournamentID uint64          `json:"tournamentId"`
	Name         string          `json:"name,omitempty"`
	Creator      string          `json:"creator,omitempty"`
	EntryFee     string          `json:"entryFee,omitempty"`
	Player       string          `json:"player,omitempty"`
	Score        uint64          `json:"score,omitempty"`
	Completion   uint64          `json:"completionTime,omitempty"`
	Winner       string          `json:"winner,omitempty"`
	Prize        string          `json:"prize,omitempty"`
	TxHash       string          `json:"txHash,omitempty"`
}
