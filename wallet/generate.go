package wallet

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brainink/arena/internal/crypto"
	"github.com/brainink/arena/internal/model"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	_, ok := err.(*FileExistsError)
	return ok
}

// GenerateWallet generates a new secp256k1 keypair and saves it to a .ink file.
// Returns the derived address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath, network string, password []byte) (address string, err error) {
	// Check file extension (.ink)
	if ext := filepath.Ext(filePath); ext != ".ink" {
		return "", fmt.Errorf("file must have .ink extension")
	}

	// Check file existence
	if fileInfo, statErr := os.Stat(filePath); statErr == nil {
		if fileInfo.Size() > 0 {
			return "", &FileExistsError{Message: "file is not empty"}
		}
	}

	// Generate new keypair
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	raw := ethcrypto.FromECDSA(key)
	defer clear(raw)

	// Derive address from the public key, stored normalized
	address = strings.ToLower(ethcrypto.PubkeyToAddress(key.PublicKey).Hex())

	// Generate QR code
	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		PrivateKey: raw,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	// Encrypt and write to file
	if err := crypto.EncryptKeystore(filePath, network, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt keystore: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
