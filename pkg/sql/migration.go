package sql

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/klwxsrx/go-storefront/pkg/log"
)

const (
	migrationLockName = "perform_migration_lock"

	migrationTableDDL = `
		create table if not exists migration (
			id text primary key
		)
	`
)

type (
	Migration struct {
		ID  string
		SQL string
	}

	MigrationSource func() ([]Migration, error)
)

// FSMigrations reads *.sql files from the root of files, ordered by name.
// The file name without extension is the migration id.
func FSMigrations(files fs.ReadDirFS) MigrationSource {
	return func() ([]Migration, error) {
		entries, err := files.ReadDir(".")
		if err != nil {
			return nil, fmt.Errorf("read migrations dir: %w", err)
		}

		result := make([]Migration, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
				continue
			}

			content, err := fs.ReadFile(files, entry.Name())
			if err != nil {
				return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
			}

			result = append(result, Migration{
				ID:  strings.TrimSuffix(entry.Name(), ".sql"),
				SQL: string(content),
			})
		}

		slices.SortFunc(result, func(a, b Migration) int {
			return strings.Compare(a.ID, b.ID)
		})
		return result, nil
	}
}

type Migrator struct {
	db     TxClient
	logger log.Logger
}

func NewMigrator(db TxClient, logger log.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Execute applies not yet performed migrations in one transaction
// guarded by an advisory lock, so concurrent instances apply them once.
func (m *Migrator) Execute(ctx context.Context, sources ...MigrationSource) (err error) {
	var migrations []Migration
	for _, source := range sources {
		items, err := source()
		if err != nil {
			return err
		}
		migrations = append(migrations, items...)
	}
	if len(migrations) == 0 {
		return nil
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("start migration tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "select pg_advisory_xact_lock($1)", lockID(migrationLockName))
	if err != nil {
		return fmt.Errorf("get migration lock: %w", err)
	}

	_, err = tx.ExecContext(ctx, migrationTableDDL)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var performed []string
	err = tx.SelectContext(ctx, &performed, "select id from migration")
	if err != nil {
		return fmt.Errorf("get performed migrations: %w", err)
	}

	for _, migration := range migrations {
		if slices.Contains(performed, migration.ID) {
			continue
		}

		err = m.perform(ctx, tx, migration)
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.ID, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}

func (m *Migrator) perform(ctx context.Context, tx ClientTx, migration Migration) error {
	if strings.TrimSpace(migration.SQL) == "" {
		return errors.New("empty migration")
	}

	_, err := tx.ExecContext(ctx, migration.SQL)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "insert into migration (id) values ($1)", migration.ID)
	if err != nil {
		return err
	}

	m.logger.WithField("migrationID", migration.ID).Info(ctx, "migration executed successfully")
	return nil
}

func lockID(name string) int64 {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(name))
	return int64(hash.Sum64())
}
