package wallet

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brainink/arena/internal/model"
)

type fakeNetwork struct {
	name string
}

func (n *fakeNetwork) ChainID() *big.Int   { return big.NewInt(84532) }
func (n *fakeNetwork) NetworkName() string { return n.name }

type fakeLedger struct {
	balances map[string]string
	err      error
}

func (l *fakeLedger) BalanceOf(_ context.Context, owner string) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	if b, ok := l.balances[owner]; ok {
		return b, nil
	}
	return "0", nil
}

// newKeystore writes a fresh keystore into a temp dir and returns its path and
// address. Key derivation is deliberately slow, so tests share one keystore.
func newKeystore(t *testing.T, network string, password []byte) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ink")
	address, err := GenerateWallet(path, network, password)
	if err != nil {
		t.Fatalf("GenerateWallet failed: %v", err)
	}
	return path, address
}

func TestSessionLifecycle(t *testing.T) {
	password := []byte("test-password")
	path, address := newKeystore(t, "base-sepolia", password)

	ledger := &fakeLedger{balances: map[string]string{address: "42.5"}}
	s := NewSession(path, &fakeNetwork{name: "base-sepolia"}, ledger)

	if s.Connected() {
		t.Fatal("fresh session reports connected")
	}
	if _, err := s.Address(); !errors.Is(err, model.ErrNoSigner) {
		t.Fatalf("Address on disconnected session: got %v, want ErrNoSigner", err)
	}

	if err := s.Connect(context.Background(), password); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	got, err := s.Address()
	if err != nil {
		t.Fatalf("Address failed: %v", err)
	}
	if got != address {
		t.Errorf("Address = %q, want %q", got, address)
	}

	balance, err := s.Balance()
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != "42.5" {
		t.Errorf("Balance = %q, want %q", balance, "42.5")
	}

	opts, err := s.TransactOpts(context.Background())
	if err != nil {
		t.Fatalf("TransactOpts failed: %v", err)
	}
	if !strings.EqualFold(opts.From.Hex(), address) {
		t.Errorf("TransactOpts.From = %s, want %s", opts.From.Hex(), address)
	}

	// Disconnect clears everything and is idempotent.
	s.Disconnect()
	s.Disconnect()
	if s.Connected() {
		t.Error("session still connected after Disconnect")
	}
	if _, err := s.Balance(); !errors.Is(err, model.ErrNoSigner) {
		t.Errorf("Balance after disconnect: got %v, want ErrNoSigner", err)
	}
	if _, err := s.TransactOpts(context.Background()); !errors.Is(err, model.ErrNoSigner) {
		t.Errorf("TransactOpts after disconnect: got %v, want ErrNoSigner", err)
	}

	// Reconnect restores the same identity.
	if err := s.Reconnect(context.Background(), password); err != nil {
		t.Fatalf("Reconnect failed: %v", err)
	}
	if got, _ := s.Address(); got != address {
		t.Errorf("address after reconnect = %q, want %q", got, address)
	}
}

func TestConnectWrongPassword(t *testing.T) {
	password := []byte("correct")
	path, _ := newKeystore(t, "base-sepolia", password)

	s := NewSession(path, &fakeNetwork{name: "base-sepolia"}, &fakeLedger{})
	err := s.Connect(context.Background(), []byte("wrong"))
	if !errors.Is(err, model.ErrNoSigner) {
		t.Fatalf("Connect with wrong password: got %v, want ErrNoSigner", err)
	}
	if s.Connected() {
		t.Error("session connected despite failed Connect")
	}
}

func TestConnectMissingKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.ink")
	s := NewSession(path, &fakeNetwork{name: "base-sepolia"}, &fakeLedger{})
	err := s.Connect(context.Background(), []byte("pw"))
	if !errors.Is(err, model.ErrNoSigner) {
		t.Fatalf("Connect without keystore: got %v, want ErrNoSigner", err)
	}
}

func TestConnectNetworkMismatch(t *testing.T) {
	password := []byte("pw")
	path, _ := newKeystore(t, "base-sepolia", password)

	s := NewSession(path, &fakeNetwork{name: "base-mainnet"}, &fakeLedger{})
	err := s.Connect(context.Background(), password)
	if !errors.Is(err, model.ErrNetworkMismatch) {
		t.Fatalf("Connect across networks: got %v, want ErrNetworkMismatch", err)
	}
	if s.Connected() {
		t.Error("session connected despite network mismatch")
	}
}

func TestConnectBalanceReadFailure(t *testing.T) {
	password := []byte("pw")
	path, _ := newKeystore(t, "base-sepolia", password)

	s := NewSession(path, &fakeNetwork{name: "base-sepolia"}, &fakeLedger{err: errors.New("rpc down")})
	if err := s.Connect(context.Background(), password); err == nil {
		t.Fatal("Connect succeeded despite balance read failure")
	}
	if s.Connected() {
		t.Error("session connected without a populated balance")
	}
}

func TestGenerateWalletRefusesOverwrite(t *testing.T) {
	password := []byte("pw")
	path, _ := newKeystore(t, "base-sepolia", password)

	_, err := GenerateWallet(path, "base-sepolia", password)
	if !IsFileExistsError(err) {
		t.Fatalf("second GenerateWallet: got %v, want FileExistsError", err)
	}
}

func TestGenerateWalletRequiresInkExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.txt")
	if _, err := GenerateWallet(path, "base-sepolia", []byte("pw")); err == nil {
		t.Fatal("GenerateWallet accepted a non-.ink path")
	}
}
