package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/brainink/arena/internal/config"
	"github.com/brainink/arena/internal/history"
	"github.com/brainink/arena/internal/model"
	"github.com/brainink/arena/wallet"

	"go.uber.org/zap"
)

// WalletSession is the slice of the wallet session the HTTP layer needs.
type WalletSession interface {
	Connect(ctx context.Context, password []byte) error
	Disconnect()
	Connected() bool
	Address() (string, error)
	Balance() (string, error)
	RefreshBalance(ctx context.Context) (string, error)
	NetworkName() string
}

// GasLedger reads the native currency balance used to pay for transactions.
type GasLedger interface {
	NativeBalance(ctx context.Context, addr string) (string, error)
}

// RateSource quotes ETH in USD for display.
type RateSource interface {
	GetETHtoUSDrate() (string, error)
}

// WalletHandler serves the wallet lifecycle and balance endpoints.
type WalletHandler struct {
	session WalletSession
	gas     GasLedger
	rates   RateSource
	store   history.Store
	log     *zap.Logger

	filePath string
	network  string
}

// NewWalletHandler wires a handler from config and the shared session.
func NewWalletHandler(session WalletSession, gas GasLedger, rates RateSource, store history.Store, log *zap.Logger) *WalletHandler {
	c := config.Get()
	return &WalletHandler{
		session:  session,
		gas:      gas,
		rates:    rates,
		store:    store,
		log:      log,
		filePath: c.WalletFilePath,
		network:  c.NetworkName,
	}
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new keypair and saves it to an encrypted .ink keystore file
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	address, err := wallet.GenerateWallet(h.filePath, h.network, passwordBytes)
	if err != nil {
		if wallet.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.log.Info("wallet generated", zap.String("address", address))
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
	})
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Decrypts the keystore, binds the signing identity and reads the INK balance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes)

	if err := h.session.Connect(r.Context(), passwordBytes); err != nil {
		writeLedgerError(w, err)
		return
	}

	address, _ := h.session.Address()
	balance, _ := h.session.Balance()
	h.log.Info("wallet connected", zap.String("address", address))
	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Address: address,
		Network: h.session.NetworkName(),
		Balance: balance,
	})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Clears the signing identity and all cached wallet state. Idempotent.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.session.Disconnect()
	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// GetBalance handles GET /wallet/balance
// @Summary      Get wallet balance
// @Description  Gets INK and ETH balances with the ETH/USD rate for display
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      401  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	address, err := h.session.Address()
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	ink, err := h.session.RefreshBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	eth, err := h.gas.NativeBalance(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := model.BalanceResponse{
		Address: address,
		Network: h.session.NetworkName(),
		INK:     ink,
		ETH:     eth,
	}

	// Rate is display only: a quote failure never fails the balance read.
	if rate, err := h.rates.GetETHtoUSDrate(); err == nil {
		resp.Rate = rate
		if usd, ok := usdValue(eth, rate); ok {
			resp.USD = usd
		}
	} else {
		h.log.Warn("rate lookup failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, resp)
}

// usdValue prices an ETH amount in USD. Floats are fine here: the result is
// cosmetic and never flows back into ledger math.
func usdValue(eth, rate string) (string, bool) {
	e, err1 := strconv.ParseFloat(eth, 64)
	r, err2 := strconv.ParseFloat(rate, 64)
	if err1 != nil || err2 != nil {
		return "", false
	}
	return strconv.FormatFloat(e*r, 'f', 2, 64), true
}

// TransactionHistory handles GET /wallet/transactions
// @Summary      Get wallet transactions
// @Description  Lists locally issued transactions with filtering capability
// @Tags         wallet
// @Produce      json
// @Param        type    query  string  false  "Transaction type: CREATE, APPROVE, JOIN or SUBMIT"
// @Param        status  query  string  false  "Status: PENDING, CONFIRMED or FAILED"
// @Param        from    query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query  string  false  "End date (YYYY-MM-DD)"
// @Success      200  {object}  model.HistoryResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	address, err := h.session.Address()
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	var req model.HistoryRequest

	const dateLayout = "2006-01-02"
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, errInvalidDate("from"))
			return
		}
		req.From = &t
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, errInvalidDate("to"))
			return
		}
		// End of day so the filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := model.TransactionStatus(statusStr)
		req.Status = &status
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	txs, err := h.store.List(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.HistoryResponse{
		Address:      address,
		Transactions: txs,
	})
}

type invalidDateError struct{ field string }

func (e invalidDateError) Error() string {
	return "invalid " + e.field + " date: use YYYY-MM-DD (e.g. 2006-01-02)"
}

func errInvalidDate(field string) error { return invalidDateError{field: field} }
