package client

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// SignerFunc supplies transact options bound to the active wallet. It fails
// with model.ErrNoSigner when no session is connected.
type SignerFunc func(ctx context.Context) (*bind.TransactOpts, error)

// TokenClient is the fungible-token ledger client for the INK ERC-20 contract.
// All amounts cross this boundary as decimal strings; base-unit scaling by the
// contract's decimals happens here and nowhere else.
type TokenClient struct {
	chain    *Chain
	contract *bind.BoundContract
	addr     ethcommon.Address
	signer   SignerFunc

	mu       sync.Mutex
	decimals uint8
	loaded   bool
}

// NewTokenClient binds the INK token contract at contractAddr.
func NewTokenClient(chain *Chain, contractAddr string, signer SignerFunc) (*TokenClient, error) {
	normalized, err := common.NormalizeAddress(contractAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid token contract address: %w", err)
	}
	addr := ethcommon.HexToAddress(normalized)
	backend := chain.Backend()
	return &TokenClient{
		chain:    chain,
		contract: bind.NewBoundContract(addr, parsedERC20ABI, backend, backend, backend),
		addr:     addr,
		signer:   signer,
	}, nil
}

// Decimals reads the token's base-unit scale, cached after the first call.
// The value is a contract constant.
func (t *TokenClient) Decimals(ctx context.Context) (uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loaded {
		return t.decimals, nil
	}

	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "decimals"); err != nil {
		return 0, fmt.Errorf("failed to read token decimals: %w", err)
	}
	t.decimals = out[0].(uint8)
	t.loaded = true
	return t.decimals, nil
}

// BalanceOf reads owner's token balance as a decimal string.
func (t *TokenClient) BalanceOf(ctx context.Context, owner string) (string, error) {
	normalized, err := common.NormalizeAddress(owner)
	if err != nil {
		return "", err
	}
	decimals, err := t.Decimals(ctx)
	if err != nil {
		return "", err
	}

	var out []interface{}
	err = t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", ethcommon.HexToAddress(normalized))
	if err != nil {
		return "", fmt.Errorf("failed to read balance of %s: %w", normalized, err)
	}
	return common.FormatUnits(out[0].(*big.Int), decimals), nil
}

// Allowance reads what owner permits spender to move, as a decimal string.
func (t *TokenClient) Allowance(ctx context.Context, owner, spender string) (string, error) {
	ownerNorm, err := common.NormalizeAddress(owner)
	if err != nil {
		return "", err
	}
	spenderNorm, err := common.NormalizeAddress(spender)
	if err != nil {
		return "", err
	}
	decimals, err := t.Decimals(ctx)
	if err != nil {
		return "", err
	}

	var out []interface{}
	err = t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "allowance",
		ethcommon.HexToAddress(ownerNorm), ethcommon.HexToAddress(spenderNorm))
	if err != nil {
		return "", fmt.Errorf("failed to read allowance: %w", err)
	}
	return common.FormatUnits(out[0].(*big.Int), decimals), nil
}

// Approve permits spender to move amount tokens and waits for confirmation.
// Returns the transaction hash. No retry on failure: the caller decides.
func (t *TokenClient) Approve(ctx context.Context, spender, amount string) (string, error) {
	spenderNorm, err := common.NormalizeAddress(spender)
	if err != nil {
		return "", err
	}
	decimals, err := t.Decimals(ctx)
	if err != nil {
		return "", err
	}
	value, err := common.ParseUnits(amount, decimals)
	if err != nil {
		return "", fmt.Errorf("invalid approve amount: %w", err)
	}
	if value.Sign() <= 0 {
		return "", fmt.Errorf("approve amount must be positive, got %q", amount)
	}

	opts, err := t.signer(ctx)
	if err != nil {
		return "", err
	}

	tx, err := t.contract.Transact(opts, "approve", ethcommon.HexToAddress(spenderNorm), value)
	if err != nil {
		return "", model.ClassifyLedgerError(err)
	}
	if _, err := t.chain.WaitMined(ctx, tx); err != nil {
		return tx.Hash().Hex(), model.ClassifyLedgerError(err)
	}
	return tx.Hash().Hex(), nil
}
