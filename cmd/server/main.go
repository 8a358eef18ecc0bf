// @title           Arena Wallet API
// @version         1.0
// @description     Token-gated tournament platform: local wallet, INK escrow and on-chain tournament registry.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brainink/arena/internal/api"
	"github.com/brainink/arena/internal/client"
	"github.com/brainink/arena/internal/config"
	"github.com/brainink/arena/internal/handler"
	"github.com/brainink/arena/internal/history"
	"github.com/brainink/arena/internal/notify"
	"github.com/brainink/arena/tournament"
	"github.com/brainink/arena/wallet"

	_ "github.com/brainink/arena/docs"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	// The keystore password is entered once, interactively, before anything
	// listens. It never appears in env vars or flags.
	if err := config.PromptForPassword(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chain, err := client.DialChain(ctx, cfg.ChainRPCURL, cfg.ChainWSURL, cfg.NetworkName, cfg.ChainID, cfg.ConfirmTimeout)
	if err != nil {
		return err
	}
	defer chain.Close()

	// The session signs for the token client, the token client reads balances
	// for the session. Declare first, bind after.
	var session *wallet.Session
	signer := func(ctx context.Context) (*bind.TransactOpts, error) {
		return session.TransactOpts(ctx)
	}

	token, err := client.NewTokenClient(chain, cfg.InkTokenAddr, signer)
	if err != nil {
		return err
	}
	registry, err := client.NewRegistryClient(chain, cfg.TournamentAddr, signer, token.Decimals)
	if err != nil {
		return err
	}
	session = wallet.NewSession(cfg.WalletFilePath, chain, token)

	store, err := openHistory(ctx, cfg.HistoryDSN, log)
	if err != nil {
		return err
	}
	defer store.Close()

	orch := tournament.New(session, token, registry, store, log)
	defer orch.Close()

	hub := notify.NewHub(log)
	defer hub.Close()
	orch.OnAnyEvent(hub.Broadcast)

	if cfg.ChainWSURL != "" {
		if err := orch.Start(ctx); err != nil {
			log.Warn("event subscription unavailable", zap.Error(err))
		}
	} else {
		log.Info("no websocket endpoint configured, event feed disabled")
	}

	// Connect eagerly when a keystore is already present; the API stays
	// usable for generate/connect if it is not.
	if _, err := os.Stat(cfg.WalletFilePath); err == nil {
		if err := connectSession(ctx, session); err != nil {
			log.Warn("wallet auto-connect failed", zap.Error(err))
		} else {
			addr, _ := session.Address()
			log.Info("wallet connected", zap.String("address", addr), zap.String("network", cfg.NetworkName))
		}
	}

	wh := handler.NewWalletHandler(session, chain, client.NewCoinGeckoClient(), store, log)
	th := handler.NewTournamentHandler(orch, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.SetupRouter(wh, th, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func connectSession(ctx context.Context, session *wallet.Session) error {
	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		return err
	}
	defer clear(passwordBytes)
	return session.Connect(ctx, passwordBytes)
}

func openHistory(ctx context.Context, dsn string, log *zap.Logger) (history.Store, error) {
	if dsn == "" {
		log.Info("no history DSN configured, using in-memory store")
		return history.NewMemoryStore(), nil
	}
	return history.NewPostgresStore(ctx, dsn)
}
