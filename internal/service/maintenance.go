package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/prefs"
)

// MaintenanceService houses destructive actions run from the command line.
type MaintenanceService struct {
	DB          *sql.DB
	Credentials CredentialClearer
	Flags       FlagStore
}

// Reset wipes the vault, engine state, stored credential and durable flags.
// The schema is kept so the app starts at the entry screen.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"transactions",
			"frequent_rpcs",
			"tokens",
			"settings",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")

	if s.Credentials != nil {
		if err := s.Credentials.ClearCredential(); err != nil {
			return fmt.Errorf("clear credential: %w", err)
		}
	}
	if s.Flags != nil {
		for _, key := range []string{prefs.ExistingUserKey, prefs.BiometryChoiceKey} {
			if err := s.Flags.RemoveFlag(key); err != nil {
				return fmt.Errorf("remove flag %s: %w", key, err)
			}
		}
	}
	log.Infof("Wallet data reset")
	return nil
}
