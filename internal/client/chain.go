package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Chain wraps the JSON-RPC connections to the ledger. The http endpoint serves
// reads and transaction submission; the optional websocket endpoint serves log
// subscriptions.
type Chain struct {
	rpc            *ethclient.Client
	ws             *ethclient.Client // nil unless a websocket URL was configured
	chainID        *big.Int
	network        string
	confirmTimeout time.Duration
}

// DialChain connects to the ledger and verifies the chain id before anything
// else touches it. A mismatch is a NetworkMismatch, not a degraded mode.
func DialChain(ctx context.Context, rpcURL, wsURL, network string, wantChainID uint64, confirmTimeout time.Duration) (*Chain, error) {
	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}

	chainID, err := rpc.ChainID(ctx)
	if err != nil {
		rpc.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	if chainID.Uint64() != wantChainID {
		rpc.Close()
		return nil, fmt.Errorf("%w: chain id %d, expected %d (%s)", model.ErrNetworkMismatch, chainID.Uint64(), wantChainID, network)
	}

	var ws *ethclient.Client
	if wsURL != "" {
		ws, err = ethclient.DialContext(ctx, wsURL)
		if err != nil {
			rpc.Close()
			return nil, fmt.Errorf("failed to dial chain websocket: %w", err)
		}
	}

	return &Chain{
		rpc:            rpc,
		ws:             ws,
		chainID:        chainID,
		network:        network,
		confirmTimeout: confirmTimeout,
	}, nil
}

// ChainID returns the verified chain id.
func (c *Chain) ChainID() *big.Int {
	return c.chainID
}

// NetworkName returns the configured network label.
func (c *Chain) NetworkName() string {
	return c.network
}

// Backend exposes the http client for contract binding.
func (c *Chain) Backend() *ethclient.Client {
	return c.rpc
}

// wsBackend returns the subscription client or an error when no websocket
// endpoint was configured.
func (c *Chain) wsBackend() (*ethclient.Client, error) {
	if c.ws == nil {
		return nil, errors.New("no websocket endpoint configured (CHAIN_WS_URL)")
	}
	return c.ws, nil
}

// WaitMined blocks until tx is durably accepted or the confirmation window
// closes. A mined-but-failed receipt degrades to the generic revert error:
// the reason is not recoverable from the receipt alone.
func (c *Chain) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.rpc, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s not confirmed after %v", model.ErrConfirmationTimeout, tx.Hash().Hex(), c.confirmTimeout)
		}
		return nil, fmt.Errorf("failed to await confirmation of %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("%w: %s", model.ErrTransactionReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

// NativeBalance reads the gas-currency balance as a decimal string.
func (c *Chain) NativeBalance(ctx context.Context, addr string) (string, error) {
	normalized, err := common.NormalizeAddress(addr)
	if err != nil {
		return "", err
	}
	balance, err := c.rpc.BalanceAt(ctx, ethcommon.HexToAddress(normalized), nil)
	if err != nil {
		return "", fmt.Errorf("failed to get native balance: %w", err)
	}
	return common.FormatUnits(balance, common.EtherDecimals), nil
}

// Close releases both connections. Safe to call once.
func (c *Chain) Close() {
	c.rpc.Close()
	if c.ws != nil {
		c.ws.Close()
	}
}
