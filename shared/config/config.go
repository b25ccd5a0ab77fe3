package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Http         Http      `yaml:"http"`
	Log          Log       `yaml:"log"`
	Store        Store     `yaml:"store"`
	Limits       Limits    `yaml:"limits"`
	RateLimit    RateLimit `yaml:"rate_limit"`
	DefaultUsers []string  `yaml:"default_users"`
	// number of rendered markdown fragments kept in memory
	MarkdownCacheSize int `yaml:"markdown_cache_size"`
}

type Http struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CorsOrigins     []string      `yaml:"cors_origins"`
	HSTS            bool          `yaml:"hsts"`     // served over https: send Strict-Transport-Security
	BaseURL         string        `yaml:"base_url"` // used in thread share links
	// rate limit by X-Real-IP / X-Forwarded-For; enable only behind a proxy that sets them
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Store struct {
	Backend  string `yaml:"backend"`   // "file" or "postgres"
	DataFile string `yaml:"data_file"` // local document, also the fallback for postgres
	Fallback bool   `yaml:"fallback"`  // redirect to DataFile when postgres is unreachable
}

type Limits struct {
	QuestionMaxLen    int `yaml:"question_max_len"`
	DescriptionMaxLen int `yaml:"description_max_len"`
	PredictionMaxLen  int `yaml:"prediction_max_len"`
	UserNameMaxLen    int `yaml:"user_name_max_len"`
}

type RateLimit struct {
	MutationsPerMinute float64       `yaml:"mutations_per_minute"`
	Burst              int           `yaml:"burst"`
	Expiration         time.Duration `yaml:"expiration"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Default returns the configuration used for anything public.yaml leaves out.
func Default() Public {
	return Public{
		Http: Http{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BaseURL:         "http://localhost:8080",
		},
		Log: Log{Level: "info"},
		Store: Store{
			Backend:  StoreBackendFile,
			DataFile: "adivinatobi_data.json",
			Fallback: true,
		},
		Limits: Limits{
			QuestionMaxLen:    200,
			DescriptionMaxLen: 2000,
			PredictionMaxLen:  500,
			UserNameMaxLen:    50,
		},
		RateLimit: RateLimit{
			MutationsPerMinute: 30,
			Burst:              10,
			Expiration:         time.Hour,
		},
		MarkdownCacheSize: 512,
	}
}

func (c *Config) Validate() error {
	p := c.Public
	if p.Http.Port < 1 || p.Http.Port > 65535 {
		return fmt.Errorf("invalid http.port (must be between 1-65535 inclusive): %d", p.Http.Port)
	}
	switch p.Store.Backend {
	case StoreBackendFile:
		if p.Store.DataFile == "" {
			return errors.New("store.data_file is required for the file backend")
		}
	case StoreBackendPostgres:
		if c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "" {
			return errors.New("pg.host and pg.dbname are required for the postgres backend")
		}
		if p.Store.Fallback && p.Store.DataFile == "" {
			return errors.New("store.data_file is required when store.fallback is enabled")
		}
	default:
		return fmt.Errorf("unknown store.backend %q", p.Store.Backend)
	}
	if p.Limits.QuestionMaxLen <= 0 || p.Limits.PredictionMaxLen <= 0 ||
		p.Limits.DescriptionMaxLen <= 0 || p.Limits.UserNameMaxLen <= 0 {
		return errors.New("limits must be positive")
	}
	if p.RateLimit.MutationsPerMinute <= 0 || p.RateLimit.Burst <= 0 {
		return errors.New("rate_limit.mutations_per_minute and rate_limit.burst must be positive")
	}
	return nil
}

func loadPath(configPath string, output interface{}, required bool) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads the config folder like Read and validates the result.
func Load(configFolder string) (*Config, error) {
	cfg, err := Read(configFolder)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads public.yaml (required) and private.yaml (optional) from configFolder
// without validating, for callers that adjust the result first.
// Secrets can also come from a .env file in the folder or the process environment:
// PG_HOST, PG_PORT, PG_USER, PG_PASSWORD, PG_DBNAME, PG_SSLMODE.
func Read(configFolder string) (*Config, error) {
	public := Default()
	if err := loadPath(path.Join(configFolder, "public.yaml"), &public, true); err != nil {
		return nil, err
	}

	var private Private
	if err := loadPath(path.Join(configFolder, "private.yaml"), &private, false); err != nil {
		return nil, err
	}

	// real env vars win over .env
	_ = godotenv.Load(path.Join(configFolder, ".env"))
	if err := applyEnv(&private.Pg); err != nil {
		return nil, err
	}
	if private.Pg.Port == 0 {
		private.Pg.Port = 5432
	}
	if private.Pg.SSLMode == "" {
		private.Pg.SSLMode = "disable"
	}

	return &Config{Public: public, Private: private}, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err)
	}
	return cfg
}

func applyEnv(pg *Pg) error {
	for key, dst := range map[string]*string{
		"PG_HOST":     &pg.Host,
		"PG_USER":     &pg.User,
		"PG_PASSWORD": &pg.Password,
		"PG_DBNAME":   &pg.Dbname,
		"PG_SSLMODE":  &pg.SSLMode,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("PG_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PG_PORT value: %w", err)
		}
		pg.Port = port
	}
	return nil
}
