package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	vaultScryptN = 1 << 15
	vaultScryptR = 8
	vaultScryptP = 1
	vaultKeyLen  = 32
	vaultSaltLen = 32
)

var errWrongPassword = errors.New("engine: incorrect password")

// sealedVault is the persisted, password-encrypted keyring payload.
type sealedVault struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"data"`
}

// vaultContents is what the vault protects.
type vaultContents struct {
	Keyrings []vaultKeyring `json:"keyrings"`
}

type vaultKeyring struct {
	Type     string `json:"type"`
	Mnemonic string `json:"mnemonic"`
	Accounts int    `json:"numberOfAccounts"`
}

func encryptVault(password string, contents vaultContents) (string, error) {
	salt := make([]byte, vaultSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	gcm, err := vaultCipher(password, salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	plaintext, err := jsonAPI.Marshal(contents)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vault: %w", err)
	}
	defer clear(plaintext)

	sv := sealedVault{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(gcm.Seal(nil, nonce, plaintext, nil)),
	}
	out, err := jsonAPI.Marshal(sv)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decryptVault(password, sealed string) (vaultContents, error) {
	var sv sealedVault
	if err := jsonAPI.Unmarshal([]byte(sealed), &sv); err != nil {
		return vaultContents{}, fmt.Errorf("failed to unmarshal vault: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(sv.Salt)
	if err != nil {
		return vaultContents{}, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(sv.Nonce)
	if err != nil {
		return vaultContents{}, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(sv.CipherText)
	if err != nil {
		return vaultContents{}, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	gcm, err := vaultCipher(password, salt)
	if err != nil {
		return vaultContents{}, err
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return vaultContents{}, errWrongPassword
	}
	defer clear(plaintext)

	var vc vaultContents
	if err := jsonAPI.Unmarshal(plaintext, &vc); err != nil {
		return vaultContents{}, fmt.Errorf("failed to unmarshal vault contents: %w", err)
	}
	return vc, nil
}

func vaultCipher(password string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(password), salt, vaultScryptN, vaultScryptR, vaultScryptP, vaultKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
