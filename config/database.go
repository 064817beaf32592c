package config

import (
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB connects to the database named by dsn. Postgres URLs and keyword
// DSNs get the postgres driver; anything else is treated as a sqlite file
// path, which keeps local development and tests free of external services.
func OpenDB(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	slog.Info("connected to database", "dialect", db.Dialector.Name())
	return db, nil
}
