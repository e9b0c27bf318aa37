package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	NotifyLog   = "log"
	NotifyRedis = "redis"
	NotifyKafka = "kafka"
)

type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver string `env:"DB_DRIVER" envDefault:"mysql"`

	MySQLHost string `env:"MYSQL_HOST" envDefault:"mysql"`
	MySQLPort string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLDB   string `env:"MYSQL_DB" envDefault:"credit"`
	MySQLUser string `env:"MYSQL_USER" envDefault:"credit"`
	MySQLPass string `env:"MYSQL_PASS" envDefault:"credit"`

	PostgresDSN string `env:"POSTGRES_DSN"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	IdempTTLSecs int `env:"IDEMPOTENCY_TTL_SECONDS" envDefault:"300"`

	ApplicationPrefix string `env:"APPLICATION_PREFIX" envDefault:"CRD"`

	// Empty SignatureURL selects the local stub.
	SignatureURL     string        `env:"SIGNATURE_URL"`
	SignatureTimeout time.Duration `env:"SIGNATURE_TIMEOUT" envDefault:"10s"`

	NotifyTransport string        `env:"NOTIFY_TRANSPORT" envDefault:"log"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"3s"`
	KafkaBrokers    []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic      string        `env:"KAFKA_TOPIC" envDefault:"credit-application-status"`

	// Zero disables the redis cache in front of the config tables.
	ConfigCacheTTL time.Duration `env:"CONFIG_CACHE_TTL" envDefault:"60s"`

	SeedDefaults bool `env:"SEED_DEFAULTS" envDefault:"false"`
}

// Load reads the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.NotifyTransport = strings.ToLower(strings.TrimSpace(c.NotifyTransport))
	c.ApplicationPrefix = strings.ToUpper(strings.TrimSpace(c.ApplicationPrefix))
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.NotifyTransport {
	case NotifyLog, NotifyRedis:
	case NotifyKafka:
		if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
			return errors.New("NOTIFY_TRANSPORT=kafka needs KAFKA_BROKERS and KAFKA_TOPIC")
		}
	default:
		return fmt.Errorf("unsupported NOTIFY_TRANSPORT %q", c.NotifyTransport)
	}
	if c.ApplicationPrefix == "" {
		return errors.New("missing APPLICATION_PREFIX")
	}
	if c.SignatureTimeout <= 0 || c.NotifyTimeout <= 0 {
		return errors.New("SIGNATURE_TIMEOUT and NOTIFY_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN is the connection string for the selected driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.PostgresDSN
	}
	return c.MySQLDSN()
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}
