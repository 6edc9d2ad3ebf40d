// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/link-shortener/internal/auth"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

type Config struct {
	Env        string `yaml:"env" validate:"oneof=dev stage prod"`
	HTTPServer `yaml:"http_server"`
	Postgres   `yaml:"postgres"`
	Redis      `yaml:"redis"`
	Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Postgres struct {
	User            string        `yaml:"user" validate:"required"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host" validate:"required"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	DB              string        `yaml:"db" validate:"required"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

// Redis configures the link cache. The cache is disabled when Addr is empty.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min=0"`
	LinkTTL  time.Duration `yaml:"link_ttl" validate:"required_with=Addr"`
}

var defaultRedis = Redis{
	LinkTTL: time.Hour,
}

func (r *Redis) Enabled() bool {
	return r.Addr != ""
}

type Auth struct {
	PublishableKey    string        `yaml:"publishable_key" validate:"required"`
	JWTKey            string        `yaml:"jwt_key" validate:"required_without=JWTKeyFile"`
	JWTKeyFile        string        `yaml:"jwt_key_file"`
	SessionCookie     string        `yaml:"session_cookie" validate:"required"`
	AuthorizedParties []string      `yaml:"authorized_parties" validate:"dive,url"`
	ClockSkew         time.Duration `yaml:"clock_skew" validate:"min=0"`
}

var defaultAuth = Auth{
	SessionCookie: auth.DefaultSessionCookie,
	ClockSkew:     auth.DefaultLeeway,
}

// PublicKey returns the PEM encoded key that verifies session tokens.
// An inline jwt_key takes precedence over jwt_key_file.
func (a *Auth) PublicKey() (string, error) {
	const op = "config.Auth.PublicKey"

	if a.JWTKey != "" {
		return a.JWTKey, nil
	}

	data, err := os.ReadFile(a.JWTKeyFile)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read key file: %w", op, err)
	}

	return string(data), nil
}

// Load reads the config file at path. ${VAR} references in values are
// expanded from the environment after parsing, so expanded text is never
// interpreted as YAML.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read config file: %w", op, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}
	expandEnv(&root)

	var cfg Config
	setDefaults(&cfg)

	if root.Kind != 0 {
		if err := root.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

// expandEnv expands environment references in scalar values. Mapping keys are
// left as written.
func expandEnv(n *yaml.Node) {
	switch n.Kind {
	case yaml.ScalarNode:
		expandScalar(n)
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			expandEnv(n.Content[i])
		}
	default:
		for _, c := range n.Content {
			expandEnv(c)
		}
	}
}

func expandScalar(n *yaml.Node) {
	expanded := os.ExpandEnv(n.Value)
	if expanded == n.Value {
		return
	}
	n.Value = expanded

	// Explicitly tagged and quoted values keep their tag.
	if n.Style&(yaml.TaggedStyle|yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return
	}

	// The parser tagged the unexpanded plain text as a string. Let the
	// expanded value resolve again so ports and durations still decode, but
	// keep null-looking secrets as strings.
	switch strings.ToLower(expanded) {
	case "~", "null":
		n.Tag = "!!str"
	default:
		n.Tag = ""
	}
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
	cfg.Redis = defaultRedis
	cfg.Auth = defaultAuth
}
