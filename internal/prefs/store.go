// Package prefs is the durable key-value store for device-level flags such
// as the existing-user marker and the biometric-unlock choice.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/asdine/storm"
	"github.com/decred/slog"
	bolt "go.etcd.io/bbolt"
)

// Flag keys.
const (
	ExistingUserKey   = "existingUser"
	BiometryChoiceKey = "biometryChoice"
)

const flagsBucket = "flags"

var (
	// ErrNotFound is returned by Flag for unknown keys.
	ErrNotFound = errors.New("prefs: flag not found")
	// ErrInUse is returned when another process holds the database lock.
	ErrInUse = errors.New("prefs: database in use")
)

var log = slog.Disabled

// UseLogger sets the package logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Store persists string flags in a bolt file.
type Store struct {
	db *storm.DB
}

// Open opens (creating if needed) the flag database at path.
func Open(path string) (*Store, error) {
	db, err := storm.Open(path, storm.BoltOptions(0o600, &bolt.Options{Timeout: time.Second}))
	if err != nil {
		if err == bolt.ErrTimeout {
			// timeout error occurs if storm fails to acquire a lock on the database file
			return nil, ErrInUse
		}
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetFlag stores value under key.
func (s *Store) SetFlag(key, value string) error {
	if err := s.db.Set(flagsBucket, key, value); err != nil {
		log.Errorf("error setting flag %s: %v", key, err)
		return err
	}
	log.Debugf("flag %s set", key)
	return nil
}

// RemoveFlag deletes key. Removing an absent key is not an error.
func (s *Store) RemoveFlag(key string) error {
	err := s.db.Delete(flagsBucket, key)
	if err != nil && err != storm.ErrNotFound {
		log.Errorf("error removing flag %s: %v", key, err)
		return err
	}
	return nil
}

// Flag reads key, returning ErrNotFound when it was never set.
func (s *Store) Flag(key string) (string, error) {
	var v string
	err := s.db.Get(flagsBucket, key, &v)
	if err == storm.ErrNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// IsExistingUser reports whether a wallet was created or restored on this device.
func (s *Store) IsExistingUser() bool {
	v, err := s.Flag(ExistingUserKey)
	return err == nil && v == "true"
}

// Exists reports whether path already holds a prefs database.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
