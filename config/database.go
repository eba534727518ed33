package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig is shared by the server and the tests. Foreign keys are not
// created: Company and CompanySettings reference each other, and referential
// guards live in the services.
func GormConfig(debug bool) *gorm.Config {
	return &gorm.Config{
		Logger:                                   gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormLoggerConfig(debug)),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// gormLoggerConfig keeps expected lookups quiet: services look rows up with
// First and treat a miss as an answer.
func gormLoggerConfig(debug bool) gormlogger.Config {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	}
}

func ConnectDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBURL)
	default:
		dialector = postgres.Open(cfg.DBURL)
	}

	db, err := gorm.Open(dialector, GormConfig(cfg.DBDebug))
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Minute)
	}

	return db, nil
}
