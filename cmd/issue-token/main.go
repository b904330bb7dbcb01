package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jmcpheron/ccc-schedule/internal/config"
	"github.com/jmcpheron/ccc-schedule/internal/logger"
	"github.com/jmcpheron/ccc-schedule/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	authService := service.NewAuthService(cfg)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Issue Ingest Token ===")

	fmt.Print("Enter Subject (e.g. rio-hondo-scraper): ")
	subject, _ := reader.ReadString('\n')
	subject = strings.TrimSpace(subject)
	if subject == "" {
		fmt.Println("Error: Subject is required")
		return
	}

	token, err := authService.GenerateIngestToken(subject)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate token")
	}

	fmt.Printf("\nToken for '%s' (valid %s):\n\n%s\n", subject, cfg.JWTExpiry, token)
}
