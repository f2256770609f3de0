package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do serviço da loja de vinhos.
type Config struct {
	// Geral
	Port            string
	Environment     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Banco de Dados (PostgreSQL). Vazio usa o armazenamento em memória.
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis). Vazio desliga o cache de projeções e usa o rate limiter local.
	RedisAddr string
	CacheTTL  time.Duration

	// Segurança (JWT)
	AuthEnabled  bool
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	CORSAllowedOrigins []string
}

// UsesPostgres indica se DATABASE_URL foi informado.
func (c *Config) UsesPostgres() bool { return c.DatabaseURL != "" }

// UsesRedis indica se REDIS_ADDR foi informado.
func (c *Config) UsesRedis() bool { return c.RedisAddr != "" }

// Load lê as variáveis de ambiente (via viper), aplica os padrões e valida o resultado.
// Precedência: ambiente > arquivo config.yaml opcional > padrões.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("falha ao ler arquivo de configuração: %w", err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		Environment:     v.GetString("ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SEC")) * time.Second,

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBTimeout:   time.Duration(v.GetInt("DB_TIMEOUT_SEC")) * time.Second,

		RedisAddr: v.GetString("REDIS_ADDR"),
		CacheTTL:  time.Duration(v.GetInt("CACHE_TTL_SEC")) * time.Second,

		AuthEnabled:  v.GetBool("AUTH_ENABLED"),
		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute,

		RateLimitMaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitPeriod:      time.Duration(v.GetInt("RATE_LIMIT_PERIOD_MIN")) * time.Minute,

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad carrega a configuração e entra em pânico em caso de erro.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("falha ao carregar configuração: %v", err))
	}
	return cfg
}

// Validate rejeita combinações que impediriam o serviço de subir corretamente.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT não pode ser vazio"))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT inválido: %q (use json ou console)", c.LogFormat))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT_SEC deve ser maior que zero"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL_SEC deve ser maior que zero"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SEC deve ser maior que zero"))
	}
	if c.RateLimitMaxRequests <= 0 || c.RateLimitPeriod <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS e RATE_LIMIT_PERIOD_MIN devem ser maiores que zero"))
	}
	if c.AuthEnabled {
		if c.JWTSecretKey == "" {
			errs = append(errs, errors.New("JWT_SECRET_KEY é obrigatório quando AUTH_ENABLED=true"))
		}
		if c.TokenExpiry <= 0 {
			errs = append(errs, errors.New("JWT_EXPIRY_MIN deve ser maior que zero"))
		}
	}
	if len(c.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS não pode ser vazio"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuração inválida: %w", errors.Join(errs...))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT_SEC", 15)

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_TIMEOUT_SEC", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL_SEC", 60)

	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_EXPIRY_MIN", 60)

	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD_MIN", 1)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// splitList aceita "a,b, c" e descarta itens vazios.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
