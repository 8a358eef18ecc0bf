// Package history keeps user-facing bookkeeping for ledger writes issued by
// this session. Entries are never proof of chain state: only confirmed ledger
// reads are authoritative.
package history

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/brainink/arena/internal/model"
)

// Store records locally issued transactions and their lifecycle.
type Store interface {
	Record(ctx context.Context, tx *model.Transaction) error
	UpdateStatus(ctx context.Context, id string, status model.TransactionStatus, txHash, errMsg string) error
	List(ctx context.Context, req *model.HistoryRequest) ([]model.Transaction, error)
	Close() error
}

// NewID returns a random transaction bookkeeping id.
func NewID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to time
		return hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return hex.EncodeToString(b[:])
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.Transaction
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(_ context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *tx)
	return nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status model.TransactionStatus, txHash, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		s.entries[i].Status = status
		if txHash != "" {
			s.entries[i].TxHash = txHash
		}
		s.entries[i].Error = errMsg
		return nil
	}
	return nil // unknown ids are ignored, bookkeeping must never block the caller
}

func (s *MemoryStore) List(_ context.Context, req *model.HistoryRequest) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, 0, len(s.entries))
	for i := range s.entries {
		if req == nil || req.Matches(&s.entries[i]) {
			out = append(out, s.entries[i])
		}
	}
	// Newest first
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
