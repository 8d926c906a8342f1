// Package data owns the database connection, schema migrations and seed data.
package data

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the postgres database behind the given URL and configures
// the connection pool.
func Open(postgresURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresURL,
		// The pgx statement cache trips over DDL run by migrations on the
		// same pool.
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("cannot access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)

	return db, nil
}

func gormLogger() gormlogger.Interface {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		return gormlogger.Default.LogMode(gormlogger.Info)
	}
	return gormlogger.Default.LogMode(gormlogger.Warn)
}
