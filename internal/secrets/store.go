package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decred/slog"
	"golang.org/x/crypto/scrypt"
)

// Per-user credential store (file, 0600). Entries are sealed with AES-GCM
// under a key derived from the device passcode, so nothing can be stored
// until a passcode exists.

const fileName = "credentials.json"

const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
)

// AccessPolicy selects what must be presented to read a credential back.
type AccessPolicy string

const (
	PolicyPasscodeOnly       AccessPolicy = "device_passcode"
	PolicyBiometryOrPasscode AccessPolicy = "biometry_current_set_or_device_passcode"
)

var (
	// ErrPasscodeNotSet means the device has no passcode to protect credentials with.
	ErrPasscodeNotSet = errors.New("secrets: passcode not set")
	// ErrNotFound is returned when no credential is stored for an account.
	ErrNotFound = errors.New("secrets: credential not found")
)

var log = slog.Disabled

// UseLogger sets the package logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

type entry struct {
	Policy AccessPolicy `json:"policy"`
	Sealed string       `json:"sealed"` // base64(nonce|ciphertext)
}

type secretFile struct {
	Salt    string           `json:"salt"`
	Entries map[string]entry `json:"entries"`
}

// Credential is a decrypted entry.
type Credential struct {
	Account string
	Secret  string
	Policy  AccessPolicy
}

// Store is the secure credential store.
type Store struct {
	dir      string
	passcode func() string
	biometry string

	mu sync.Mutex
}

// New returns a store rooted at dir. passcode is consulted on every
// operation; biometry names the sensor kind or is empty when there is none.
func New(dir string, passcode func() string, biometry string) *Store {
	return &Store{dir: dir, passcode: passcode, biometry: strings.TrimSpace(biometry)}
}

// SupportedBiometryType reports the biometric sensor kind, if any.
func (s *Store) SupportedBiometryType() (string, bool) {
	return s.biometry, s.biometry != ""
}

// StoreCredential replaces every stored credential with one for account.
func (s *Store) StoreCredential(account, secret string, policy AccessPolicy) error {
	if account = norm(account); account == "" {
		return fmt.Errorf("account required")
	}
	pass := s.passcode()
	if pass == "" {
		return ErrPasscodeNotSet
	}
	if policy == PolicyBiometryOrPasscode && s.biometry == "" {
		log.Debugf("no biometric sensor, %s falls back to passcode only", account)
		policy = PolicyPasscodeOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	key, err := deriveKey(pass, salt)
	if err != nil {
		return err
	}
	sealed, err := seal(key, []byte(secret))
	if err != nil {
		return err
	}
	sf := secretFile{
		Salt:    base64.StdEncoding.EncodeToString(salt),
		Entries: map[string]entry{account: {Policy: policy, Sealed: base64.StdEncoding.EncodeToString(sealed)}},
	}
	if err := s.save(sf); err != nil {
		return err
	}
	log.Infof("credential stored for %s (%s)", account, policy)
	return nil
}

// FetchCredential decrypts the credential stored for account.
func (s *Store) FetchCredential(account string) (Credential, error) {
	account = norm(account)
	pass := s.passcode()
	if pass == "" {
		return Credential{}, ErrPasscodeNotSet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return Credential{}, err
	}
	e, ok := sf.Entries[account]
	if !ok {
		return Credential{}, ErrNotFound
	}
	salt, err := base64.StdEncoding.DecodeString(sf.Salt)
	if err != nil {
		return Credential{}, fmt.Errorf("decode salt: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(e.Sealed)
	if err != nil {
		return Credential{}, fmt.Errorf("decode credential: %w", err)
	}
	key, err := deriveKey(pass, salt)
	if err != nil {
		return Credential{}, err
	}
	pt, err := open(key, raw)
	if err != nil {
		return Credential{}, errors.New("secrets: wrong passcode")
	}
	return Credential{Account: account, Secret: string(pt), Policy: e.Policy}, nil
}

// ClearCredential removes every stored credential.
func (s *Store) ClearCredential() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, fileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	log.Info("credentials cleared")
	return nil
}

func (s *Store) load() (secretFile, error) {
	var sf secretFile
	data, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return secretFile{}, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, err
	}
	return sf, nil
}

func (s *Store) save(sf secretFile) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil { // restrict directory
		return err
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, fileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func deriveKey(passcode string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(passcode), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

func seal(key, plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
