// Command admin_token prints a signed admin bearer token for the storefront API.
//
//	go run ./cmd/admin_token -sub ops@example.com -ttl 2h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/platform/config"
)

const issuer = "storefront-backend"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	subject := flag.String("sub", "", "actor id recorded as the token subject (required)")
	role := flag.String("role", middleware.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := middleware.IssueAccessToken(cfg.JWTSecret, *subject, *role, issuer, *ttl)
	if err != nil {
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		flag.Usage()
		os.Exit(2)
	}
	fmt.Println(token)
}
