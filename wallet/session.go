package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/crypto"
	"github.com/brainink/arena/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Ledger is the token balance read the session needs to populate its cache.
type Ledger interface {
	BalanceOf(ctx context.Context, owner string) (string, error)
}

// Network identifies the chain the session is bound to.
type Network interface {
	ChainID() *big.Int
	NetworkName() string
}

// Session owns the local signing identity: one address, one network, the
// signing key held only while connected, and a cached token balance. It is
// never shared process-wide; callers construct one and pass it explicitly.
//
// Signing is single-threaded per address: callers must not have more than one
// signed transaction in flight at a time. The orchestrator serializes writes;
// the session itself only guards its own state.
type Session struct {
	keystorePath string
	network      Network
	ledger       Ledger

	mu        sync.Mutex
	key       *ecdsa.PrivateKey
	address   string
	balance   string
	connected bool
}

// NewSession creates a disconnected session for the keystore at keystorePath.
func NewSession(keystorePath string, network Network, ledger Ledger) *Session {
	return &Session{
		keystorePath: keystorePath,
		network:      network,
		ledger:       ledger,
	}
}

// Connect decrypts the keystore, derives the address, verifies the network
// binding and populates the cached balance by a ledger read. Any previously
// connected state is replaced wholesale, never patched: account and network
// changes are not guaranteed consistent mid-change.
// password must be []byte for security (caller should zero it after use)
func (s *Session) Connect(ctx context.Context, password []byte) error {
	ksFile, walletData, err := crypto.DecryptKeystore(s.keystorePath, password)
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrNoSigner, err)
	}
	defer clear(walletData.PrivateKey)

	key, err := ethcrypto.ToECDSA(walletData.PrivateKey)
	if err != nil {
		return fmt.Errorf("%w: invalid private key: %s", model.ErrNoSigner, err)
	}

	address := strings.ToLower(ethcrypto.PubkeyToAddress(key.PublicKey).Hex())
	if !common.SameAddress(address, ksFile.Address) {
		zeroKey(key)
		return fmt.Errorf("%w: private key does not match keystore address", model.ErrNoSigner)
	}

	if ksFile.Network != s.network.NetworkName() {
		zeroKey(key)
		return fmt.Errorf("%w: keystore is for %q, session network is %q",
			model.ErrNetworkMismatch, ksFile.Network, s.network.NetworkName())
	}

	balance, err := s.ledger.BalanceOf(ctx, address)
	if err != nil {
		zeroKey(key)
		return fmt.Errorf("failed to read balance on connect: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		zeroKey(s.key)
	}
	s.key = key
	s.address = address
	s.balance = balance
	s.connected = true
	return nil
}

// Reconnect re-runs the full connect sequence. Use this on account or network
// change notifications instead of patching state incrementally.
func (s *Session) Reconnect(ctx context.Context, password []byte) error {
	s.Disconnect()
	return s.Connect(ctx, password)
}

// Disconnect clears the address, the signing key and all cached state.
// Idempotent.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		zeroKey(s.key)
	}
	s.key = nil
	s.address = ""
	s.balance = ""
	s.connected = false
}

// Connected reports whether a signing capability is present.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Address returns the active address, or ErrNoSigner when disconnected.
func (s *Session) Address() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return "", model.ErrNoSigner
	}
	return s.address, nil
}

// NetworkName returns the session's network label.
func (s *Session) NetworkName() string {
	return s.network.NetworkName()
}

// Balance returns the cached token balance. It is an advisory snapshot: it may
// lag true ledger state until the next refresh.
func (s *Session) Balance() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return "", model.ErrNoSigner
	}
	return s.balance, nil
}

// RefreshBalance re-reads the token balance from the ledger and updates the
// cache.
func (s *Session) RefreshBalance(ctx context.Context) (string, error) {
	addr, err := s.Address()
	if err != nil {
		return "", err
	}
	balance, err := s.ledger.BalanceOf(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("failed to refresh balance: %w", err)
	}
	s.mu.Lock()
	// Drop the result if the session was torn down while the read was in flight.
	if s.connected && s.address == addr {
		s.balance = balance
	}
	s.mu.Unlock()
	return balance, nil
}

// TransactOpts returns signing options bound to the active key and chain id,
// or ErrNoSigner when disconnected.
func (s *Session) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil, model.ErrNoSigner
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.network.ChainID())
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// zeroKey wipes the scalar of a private key before releasing it.
func zeroKey(key *ecdsa.PrivateKey) {
	if key != nil && key.D != nil {
		key.D.SetInt64(0)
	}
}
