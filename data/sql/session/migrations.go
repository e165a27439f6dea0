package session

import (
	"embed"

	"github.com/klwxsrx/go-storefront/pkg/sql"
)

var Migrations = sql.FSMigrations(migrationFiles)

//go:embed *.sql
var migrationFiles embed.FS
