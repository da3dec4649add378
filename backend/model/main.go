package model

import (
	"context"
	"fmt"
	"time"

	"sbml-builder/backend/common"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide connection pool.
var DB *gorm.DB

func gormLogger() logger.Interface {
	return logger.New(common.Logger, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// InitDB connects to PostgreSQL and creates the schema if it does not exist.
func InitDB(cfg *common.Config) error {
	common.SysLog(fmt.Sprintf("connecting to database %s@%s:%d/%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err := Open(postgres.Open(cfg.DSN())); err != nil {
		return err
	}
	if err := Migrate(); err != nil {
		return err
	}
	common.SysLog("database schema initialized")
	return nil
}

// Open installs a connection for the given dialector as DB without touching
// the schema.
func Open(dialector gorm.Dialector, opts ...gorm.Option) error {
	options := append([]gorm.Option{&gorm.Config{Logger: gormLogger()}}, opts...)
	db, err := gorm.Open(dialector, options...)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	DB = db
	return nil
}

// Migrate is idempotent; it only creates missing tables, columns and constraints.
func Migrate() error {
	if err := DB.AutoMigrate(&SBMLModel{}, &Component{}, &Simulation{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// Ping reports whether the store answers.
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	common.SysLog("closing database connection")
	return sqlDB.Close()
}
