package model

// KeystoreFile represents the encrypted .ink wallet file structure
type KeystoreFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data
type WalletData struct {
	PrivateKey []byte `json:"privateKey"` // 32-byte secp256k1 key (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
