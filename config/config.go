package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// DBDriver is either "sqlite" or "mysql"
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"database.db"`

	// Limits for POST routes, per client IP
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	// TrustedProxies may set X-Forwarded-For; empty trusts nobody
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// Load reads the configuration from the environment. Call godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// InitDB opens the database named by the config. Driver errors are translated,
// so a unique violation surfaces as gorm.ErrDuplicatedKey.
func InitDB(c Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(c.DBDriver) {
	case "", "sqlite", "sqlite3":
		dialector = sqlite.Open(c.DBDSN)
	case "mysql":
		dialector = mysql.Open(c.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(os.Stdout),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.DBDriver, err)
	}
	return db, nil
}

// NewGormLogger logs warnings and slow queries. A missing row is an expected
// lookup outcome, so gorm.ErrRecordNotFound is not reported.
func NewGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
