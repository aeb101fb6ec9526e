package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hugohenrick/emceep/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// newMigrate monta uma instância do migrate sobre o banco aberto e as
// migrações embutidas no binário.
func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir migrações embutidas: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar driver do migrate: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return m, nil
}

// RunMigrations aplica todas as migrações pendentes do arquivo de changelog.
// O migrate não é fechado aqui porque o driver fecharia o *sql.DB do chamador.
func RunMigrations(db *sql.DB, log logger.Logger) error {
	log = logger.OrNop(log)

	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao ler versão das migrações: %w", err)
	}
	log.Info("archive migrations applied", "version", version, "dirty", dirty)
	return nil
}

// RollbackMigrations desfaz steps migrações; steps <= 0 desfaz todas.
func RollbackMigrations(db *sql.DB, steps int, log logger.Logger) error {
	log = logger.OrNop(log)

	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if steps <= 0 {
		err = m.Down()
	} else {
		err = m.Steps(-steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao reverter migrações: %w", err)
	}
	log.Info("archive migrations rolled back", "steps", steps)
	return nil
}

// MigrationVersion retorna a versão atual do schema; zero quando nada foi aplicado.
func MigrationVersion(db *sql.DB) (uint, bool, error) {
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
