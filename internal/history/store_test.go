package history

import (
	"context"
	"testing"
	"time"

	"github.com/brainink/arena/internal/model"
)

func TestMemoryStoreRecordAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Now()
	entries := []model.Transaction{
		{ID: "a", Type: model.TransactionTypeApprove, Status: model.TransactionConfirmed, Timestamp: base.Add(-2 * time.Minute)},
		{ID: "b", Type: model.TransactionTypeJoin, Status: model.TransactionPending, Timestamp: base.Add(-time.Minute)},
		{ID: "c", Type: model.TransactionTypeJoin, Status: model.TransactionFailed, Timestamp: base},
	}
	for i := range entries {
		if err := s.Record(ctx, &entries[i]); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := s.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(all))
	}
	// Newest first
	if all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("List order wrong: %v", []string{all[0].ID, all[1].ID, all[2].ID})
	}

	join := model.TransactionTypeJoin
	joins, err := s.List(ctx, &model.HistoryRequest{Type: &join})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(joins) != 2 {
		t.Errorf("join filter returned %d entries, want 2", len(joins))
	}
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tx := model.Transaction{ID: "x", Type: model.TransactionTypeJoin, Status: model.TransactionPending, Timestamp: time.Now()}
	if err := s.Record(ctx, &tx); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if err := s.UpdateStatus(ctx, "x", model.TransactionConfirmed, "0xabc", ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	all, _ := s.List(ctx, nil)
	if all[0].Status != model.TransactionConfirmed || all[0].TxHash != "0xabc" {
		t.Errorf("update not applied: %+v", all[0])
	}

	// Unknown ids are ignored, not an error.
	if err := s.UpdateStatus(ctx, "nope", model.TransactionFailed, "", "boom"); err != nil {
		t.Errorf("UpdateStatus unknown id: %v", err)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}
