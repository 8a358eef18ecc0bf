package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the keystore password is prompted at runtime and stored in memory -
// use GetWalletPasswordBytes()
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	WalletFilePath string        `envconfig:"WALLET_FILE_PATH" required:"true"`
	ChainRPCURL    string        `envconfig:"CHAIN_RPC_URL" default:"https://sepolia.base.org"`
	ChainWSURL     string        `envconfig:"CHAIN_WS_URL" default:""`
	ChainID        uint64        `envconfig:"CHAIN_ID" default:"84532"`
	NetworkName    string        `envconfig:"NETWORK_NAME" default:"base-sepolia"`
	TournamentAddr string        `envconfig:"TOURNAMENT_CONTRACT" default:"0x31C3D3de371e155b7dacEd91Cf1C2C675964Af30"`
	InkTokenAddr   string        `envconfig:"INK_TOKEN_CONTRACT" default:"0x3400d455aC4d50dF70E581b96f980516Af63Fa1c"`
	ConfirmTimeout time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"3m"`
	HistoryDSN     string        `envconfig:"HISTORY_DSN" default:""`
	RateURL        string        `envconfig:"RATE_URL" default:"https://api.coingecko.com/api/v3/simple/price"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
