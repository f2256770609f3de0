// Command token emite um JWT assinado com JWT_SECRET_KEY para chamar as rotas de escrita.
//
//	go run ./cmd/token -sub ops -role admin
package main

import (
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"winestore/internal/pkg/token"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdlog.Printf("Aviso: falha ao ler .env: %v", err)
	}

	subject := flag.String("sub", "admin", "subject do token")
	role := flag.String("role", "admin", "role do token")
	expiry := flag.Duration("exp", 0, "validade (padrão: JWT_EXPIRY_MIN)")
	flag.Parse()

	v := viper.New()
	v.SetDefault("JWT_EXPIRY_MIN", 60)
	v.AutomaticEnv()

	secret := v.GetString("JWT_SECRET_KEY")
	if secret == "" {
		stdlog.Fatal("JWT_SECRET_KEY deve ser definido.")
	}
	if *expiry <= 0 {
		*expiry = time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute
	}

	signed, err := token.NewService(secret, *expiry).GenerateToken(*subject, *role)
	if err != nil {
		stdlog.Fatalf("Falha ao gerar token: %v", err)
	}
	fmt.Println(signed)
}
