package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"winestore/config"
	"winestore/internal/api/router"
	"winestore/internal/app"
	"winestore/internal/pkg/cache"
	"winestore/internal/pkg/database"
	"winestore/internal/pkg/logger"
	"winestore/internal/pkg/middleware"
	"winestore/internal/pkg/token"
	"winestore/internal/repository/memory"
)

const version = "1.0.0"

func main() {
	// O .env é opcional: em contêineres as variáveis vêm do ambiente.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdlog.Printf("Aviso: falha ao ler .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro de configuração: %v", err)
	}

	log := logger.NewLoggerWithFormat(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()
	log.Info("Configurações carregadas.", map[string]interface{}{
		"env":      cfg.Environment,
		"postgres": cfg.UsesPostgres(),
		"redis":    cfg.UsesRedis(),
		"auth":     cfg.AuthEnabled,
	})

	// 1. Infraestrutura
	var redisClient *cache.RedisClient
	if cfg.UsesRedis() {
		redisClient, err = cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		log.Info("Conexão com Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	}

	var db *sql.DB
	var repos app.Repositories
	if cfg.UsesPostgres() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
		db, err = database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPool)
		cancel()
		if err != nil {
			log.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		log.Info("Pool de conexões PostgreSQL pronto.", nil)

		// Interface nil (e não *RedisClient nil) desliga o cache de projeções.
		var cacheClient cache.Client
		if redisClient != nil {
			cacheClient = redisClient
		}
		repos = app.PostgresRepositories(db, cacheClient, cfg.CacheTTL, cfg.DBTimeout, log)
	} else {
		log.Warn("DATABASE_URL vazio: usando armazenamento em memória.", nil)
		repos = app.MemoryRepositories(memory.NewStore())
	}

	// 2. Injeção de dependências: Repository -> Service -> Handler
	handlers := app.NewHandlers(repos, log)

	opts := router.Options{
		Logger:             log,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Version:            version,
		Health:             healthCheck(db, redisClient),
	}

	if redisClient != nil {
		opts.RateLimit = middleware.RateLimiter(redisClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)
	} else {
		opts.RateLimit = middleware.LocalRateLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)
	}

	if cfg.AuthEnabled {
		tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
		auth := middleware.Auth(tokenSvc)
		admin := middleware.RequireRole("admin")
		opts.WriteGuard = func(next http.Handler) http.Handler { return auth(admin(next)) }
		log.Info("Escritas protegidas por JWT (role admin).", nil)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(handlers, opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 3. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor ouvindo na porta.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}
	log.Info("Servidor encerrado com sucesso.", nil)
}

func healthCheck(db *sql.DB, redisClient *cache.RedisClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
}
