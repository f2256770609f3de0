package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"winestore/config"
	"winestore/internal/pkg/database"
	"winestore/internal/pkg/logger"
)

// gooseLogger adapta o logger da aplicação à interface goose.Logger.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info("goose", map[string]interface{}{"msg": fmt.Sprintf(format, v...)})
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal("goose", fmt.Errorf(format, v...))
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdlog.Printf("Aviso: falha ao ler .env: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com as migrações")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro de configuração: %v", err)
	}
	log := logger.NewLoggerWithFormat(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if !cfg.UsesPostgres() {
		log.Fatal("DATABASE_URL é obrigatório para migrar.", errors.New("DATABASE_URL vazio"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPool)
	cancel()
	if err != nil {
		log.Fatal("goose: falha ao conectar ao DB.", err)
	}
	defer db.Close()

	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose: dialeto inválido.", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	if err := goose.RunContext(context.Background(), command, db, migrationsDir, args...); err != nil {
		log.Fatal("goose: comando falhou.", err)
	}
	log.Info("goose: comando concluído.", map[string]interface{}{"command": command})
}
