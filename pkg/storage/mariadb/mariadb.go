package mariadb

import (
	"database/sql"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/c14220110/poliklinik-analytics/config"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var (
	db      *sql.DB
	once    sync.Once
	openErr error
)

// DSN builds the go-sql-driver DSN:
// username:password@tcp(host:port)/dbname?parseTime=true&loc=<tz>
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, url.QueryEscape(cfg.DBTimezone))
}

// Connect opens the MariaDB pool once and pings it.
func Connect(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	once.Do(func() {
		db, openErr = sql.Open("mysql", DSN(cfg))
		if openErr != nil {
			openErr = fmt.Errorf("open mariadb: %w", openErr)
			return
		}
		db.SetConnMaxLifetime(3 * time.Minute)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)

		if openErr = db.Ping(); openErr != nil {
			openErr = fmt.Errorf("ping mariadb: %w", openErr)
			return
		}
		logger.Info("connected to MariaDB", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	})
	return db, openErr
}
