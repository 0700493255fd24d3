// Package config carrega as configurações do servidor.
//
// Ordem de precedência: valores padrão, depois o arquivo YAML apontado por
// CONFIG_FILE, depois as variáveis de ambiente (incluindo as do .env).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"todo-api/utilities"
)

const (
	ProviderJWT      = "jwt"
	ProviderFirebase = "firebase"

	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN monta a string de conexão; DATABASE_URL tem prioridade sobre DB_*.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type AuthConfig struct {
	Provider                string        `yaml:"provider"`
	Secret                  string        `yaml:"secret"`
	TokenTTL                time.Duration `yaml:"token_ttl"`
	FirebaseCredentialsPath string        `yaml:"firebase_credentials_path"`
	// EnableDevAuth liga os stubs de signup/signin, que não verificam senha.
	EnableDevAuth bool `yaml:"enable_dev_auth"`
}

type Config struct {
	ServerPort         string         `yaml:"server_port"`
	APIPrefix          string         `yaml:"api_prefix"`
	CORSAllowedOrigins []string       `yaml:"cors_allowed_origins"`
	StoreBackend       string         `yaml:"store_backend"`
	LogDebug           bool           `yaml:"log_debug"`
	Database           DatabaseConfig `yaml:"database"`
	Auth               AuthConfig     `yaml:"auth"`
}

func Default() Config {
	return Config{
		ServerPort:   "8080",
		APIPrefix:    "/api/v1",
		StoreBackend: BackendPostgres,
		Database:     DatabaseConfig{Port: "5432", SSLMode: "disable"},
		Auth:         AuthConfig{Provider: ProviderJWT, TokenTTL: 24 * time.Hour},
	}
}

// Load lê .env, o arquivo YAML opcional e as variáveis de ambiente.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		utilities.LogInfo("Arquivo .env não encontrado, usando variáveis do sistema")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	}

	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("falha ao ler arquivo de configuração: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("falha ao interpretar arquivo de configuração: %w", err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("SERVER_PORT", &cfg.ServerPort)
	str("API_PREFIX", &cfg.APIPrefix)
	str("STORE_BACKEND", &cfg.StoreBackend)
	str("DATABASE_URL", &cfg.Database.URL)
	str("DB_HOST", &cfg.Database.Host)
	str("DB_PORT", &cfg.Database.Port)
	str("DB_USER", &cfg.Database.User)
	str("DB_PASSWORD", &cfg.Database.Password)
	str("DB_NAME", &cfg.Database.Name)
	str("DB_SSLMODE", &cfg.Database.SSLMode)
	str("AUTH_PROVIDER", &cfg.Auth.Provider)
	str("AUTH_SECRET", &cfg.Auth.Secret)
	str("FIREBASE_CREDENTIALS_PATH", &cfg.Auth.FirebaseCredentialsPath)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := lookup("TOKEN_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL inválido %q: %w", v, err)
		}
		cfg.Auth.TokenTTL = ttl
	}
	for _, flag := range []struct {
		key string
		dst *bool
	}{
		{"ENABLE_DEV_AUTH", &cfg.Auth.EnableDevAuth},
		{"LOG_DEBUG", &cfg.LogDebug},
	} {
		key, dst := flag.key, flag.dst
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s inválido %q: %w", key, v, err)
			}
			*dst = b
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) Validate() error {
	var errs []error

	if c.ServerPort == "" {
		errs = append(errs, errors.New("server_port é obrigatório"))
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		errs = append(errs, fmt.Errorf("api_prefix deve começar com '/': %q", c.APIPrefix))
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			errs = append(errs, errors.New("DATABASE_URL ou DB_HOST é obrigatório para o backend postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("store_backend desconhecido: %q", c.StoreBackend))
	}

	switch c.Auth.Provider {
	case ProviderJWT:
		if c.Auth.Secret == "" {
			errs = append(errs, errors.New("AUTH_SECRET é obrigatório para o provedor jwt"))
		}
	case ProviderFirebase:
		if c.Auth.FirebaseCredentialsPath == "" {
			errs = append(errs, errors.New("FIREBASE_CREDENTIALS_PATH é obrigatório para o provedor firebase"))
		}
		if c.Auth.EnableDevAuth {
			errs = append(errs, errors.New("ENABLE_DEV_AUTH só é suportado com o provedor jwt"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth provider desconhecido: %q", c.Auth.Provider))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl deve ser positivo"))
	}

	return errors.Join(errs...)
}
