package db

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/lingvodom/school-api/internal/db/migrations"
)

// Migrate накатывает встроенные миграции goose до последней версии.
func Migrate(database *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(database, ".")
}
