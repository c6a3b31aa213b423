package database

import (
	"context"
	"database/sql"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// SeedDefaults writes baseline engine settings that are not yet present.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, defaults map[string]string) error {
	settings := repository.NewSettingsRepo(db)
	for key, value := range defaults {
		if _, ok, err := settings.Get(ctx, key); err != nil {
			return err
		} else if ok {
			continue
		}
		if err := settings.Set(ctx, key, value); err != nil {
			return err
		}
		log.Debugf("Seeded default %s=%q", key, value)
	}
	return nil
}
