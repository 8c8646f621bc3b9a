package config

import (
	"errors"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Prefix is used for environment variables, e.g. CAFE_DB_HOST.
const Prefix = "CAFE"

type Config struct {
	Args conf.Args `yaml:"-"`

	Addr            string        `yaml:"addr" conf:"help:listen address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password" conf:"noprint"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`
	DBDebug    bool   `yaml:"db_debug"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password" conf:"noprint"`
	RedisDB       int    `yaml:"redis_db"`

	JWTKeyPath   string        `yaml:"jwt_key_path"`
	AccessTTL    time.Duration `yaml:"access_ttl"`
	RefreshTTL   time.Duration `yaml:"refresh_ttl"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`

	Currency       string `yaml:"currency"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

// NewConfig reads config.yaml from the working directory, then lets
// environment variables and flags override it.
func NewConfig(args []string) (*Config, error) {
	return Load("config.yaml", args)
}

// Load reads the yaml file at path when it exists, overlays the environment
// (after .env) and command line, and fills defaults for unset values.
func Load(path string, args []string) (*Config, error) {
	var c Config

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	yamlFile, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(yamlFile, &c); err != nil {
			return nil, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if err := conf.Parse(args, Prefix, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	// Validate required fields
	if c.DBUsername == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	return &c, nil
}

// Usage returns the help text for the configuration flags.
func Usage() (string, error) {
	var c Config
	return conf.Usage(Prefix, &c)
}

// String renders the configuration with secrets left out.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return err.Error()
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.DBPort == "" {
		c.DBPort = "5432"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.JWTKeyPath == "" {
		c.JWTKeyPath = "private.pem"
	}
	if c.AccessTTL == 0 {
		c.AccessTTL = time.Hour
	}
	if c.RefreshTTL == 0 {
		c.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.Currency == "" {
		c.Currency = "₱"
	}
}
