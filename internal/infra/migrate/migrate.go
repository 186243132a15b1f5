package migrate

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// DatabaseURL rewrites the pool DSN to the scheme the pgx/v5 migrate driver registers.
func DatabaseURL(cfg config.DBConfig) string {
	return "pgx5://" + strings.TrimPrefix(cfg.BuildDSN(), "postgres://")
}

func newMigrate(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, migrations.Dir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies action against databaseURL. "down" rolls back one step,
// "drop" rolls back every migration.
func Run(databaseURL, action string) error {
	mig, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil || dbErr != nil {
			slog.Warn("failed to close migrate instance", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations (%s): %w", action, err)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", verr)
	}
	slog.Info("database migrations completed", "action", action, "version", version, "dirty", dirty)

	return nil
}

func Up(cfg config.DBConfig) error {
	return Run(DatabaseURL(cfg), ActionUp)
}
