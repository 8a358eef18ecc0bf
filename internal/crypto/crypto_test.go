package crypto

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/brainink/arena/internal/model"
)

func TestKeystoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.ink")
	password := []byte("correct horse battery staple")

	key := bytes.Repeat([]byte{0x42}, 32)
	data := &model.WalletData{PrivateKey: append([]byte(nil), key...), CreatedAt: "2026-01-01T00:00:00Z"}

	err := EncryptKeystore(path, "base-sepolia", "0x1111111111111111111111111111111111111111", "qr", data, password)
	if err != nil {
		t.Fatalf("EncryptKeystore: %v", err)
	}

	ksFile, decrypted, err := DecryptKeystore(path, password)
	if err != nil {
		t.Fatalf("DecryptKeystore: %v", err)
	}
	if !bytes.Equal(decrypted.PrivateKey, key) {
		t.Error("private key does not survive the round trip")
	}
	if ksFile.Network != "base-sepolia" {
		t.Errorf("network = %q, want base-sepolia", ksFile.Network)
	}
	if ksFile.Address != "0x1111111111111111111111111111111111111111" {
		t.Errorf("address = %q", ksFile.Address)
	}

	addr, err := ReadKeystoreAddress(path)
	if err != nil {
		t.Fatalf("ReadKeystoreAddress: %v", err)
	}
	if addr != ksFile.Address {
		t.Errorf("ReadKeystoreAddress = %q, want %q", addr, ksFile.Address)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.ink")
	data := &model.WalletData{PrivateKey: bytes.Repeat([]byte{0x01}, 32)}

	if err := EncryptKeystore(path, "base-sepolia", "0x2222222222222222222222222222222222222222", "", data, []byte("right")); err != nil {
		t.Fatalf("EncryptKeystore: %v", err)
	}
	if _, _, err := DecryptKeystore(path, []byte("wrong")); err == nil {
		t.Fatal("DecryptKeystore succeeded with the wrong password")
	}
}

func TestEncryptRefusesNonInkExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	data := &model.WalletData{PrivateKey: bytes.Repeat([]byte{0x01}, 32)}
	if err := EncryptKeystore(path, "base-sepolia", "0x0", "", data, []byte("pw")); err == nil {
		t.Fatal("EncryptKeystore accepted a non-.ink path")
	}
}

func TestEncryptRefusesNonEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.ink")
	data := &model.WalletData{PrivateKey: bytes.Repeat([]byte{0x01}, 32)}

	if err := EncryptKeystore(path, "base-sepolia", "0x3333333333333333333333333333333333333333", "", data, []byte("pw")); err != nil {
		t.Fatalf("EncryptKeystore: %v", err)
	}
	if err := EncryptKeystore(path, "base-sepolia", "0x3333333333333333333333333333333333333333", "", data, []byte("pw")); err == nil {
		t.Fatal("EncryptKeystore overwrote an existing keystore")
	}
}
