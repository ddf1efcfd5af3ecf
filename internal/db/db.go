package db

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lojf/registry/internal/models"
)

const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Open opens (creating if needed) the sqlite database at path and migrates
// every table the registry uses. Query warnings and failures go to log,
// which may be nil.
func Open(path string, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := gorm.Open(sqlite.Open(path+dsnParams), &gorm.Config{
		Logger: GormLogger(log),
	})
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Reports join incidents to assignments on (fecha, grupo_id).
	for _, stmt := range []string{
		"CREATE INDEX IF NOT EXISTS idx_inc_grupos_fecha_grupo   ON inc_grupos(fecha, grupo_id)",
		"CREATE INDEX IF NOT EXISTS idx_incidencias_fecha_grupo  ON incidencias(fecha, grupo_id)",
		"CREATE INDEX IF NOT EXISTS idx_registros_fecha_doctor   ON registros(fecha, doctor)",
	} {
		if err := conn.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	}
	return conn, nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
