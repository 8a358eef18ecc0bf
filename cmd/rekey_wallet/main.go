// rekey_wallet changes the password of an .ink keystore file: decrypt with the
// old password, re-encrypt with the new one under a fresh salt and nonce.
// Usage: go run ./cmd/rekey_wallet <keystore.ink>
package main

import (
	"fmt"
	"os"

	"github.com/brainink/arena/internal/crypto"

	"golang.org/x/term"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rekey_wallet <keystore.ink>")
		os.Exit(1)
	}
	path := os.Args[1]

	oldPassword, err := prompt("Current password: ")
	if err != nil {
		fatal(err)
	}
	defer clear(oldPassword)

	ksFile, walletData, err := crypto.DecryptKeystore(path, oldPassword)
	if err != nil {
		fatal(fmt.Errorf("decrypt failed: %w", err))
	}
	defer clear(walletData.PrivateKey)

	newPassword, err := prompt("New password: ")
	if err != nil {
		fatal(err)
	}
	defer clear(newPassword)
	confirm, err := prompt("Repeat new password: ")
	if err != nil {
		fatal(err)
	}
	defer clear(confirm)
	if string(newPassword) != string(confirm) {
		fatal(fmt.Errorf("passwords do not match"))
	}
	if len(newPassword) == 0 {
		fatal(fmt.Errorf("password cannot be empty"))
	}

	// Write to a sibling file first, then swap: a failure mid-rekey must not
	// destroy the only copy of the key.
	tmpPath := path + ".rekey.ink"
	if err := crypto.EncryptKeystore(tmpPath, ksFile.Network, ksFile.Address, ksFile.QR, walletData, newPassword); err != nil {
		fatal(fmt.Errorf("re-encrypt failed: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		fatal(fmt.Errorf("failed to replace keystore: %w", err))
	}

	fmt.Printf("keystore %s re-encrypted for %s\n", path, ksFile.Address)
}

func prompt(label string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, label)
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
