package main

import (
	"os"

	"github.com/cfascholars/backend/internal/pkg/logger"
	"github.com/cfascholars/backend/internal/server"
)

// @title CFA Scholars API
// @version 1.0
// @description API for the CFA scholarship management platform

// @contact.name API Support
// @contact.email support@cfascholars.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name sid
// @description Session cookie issued at login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
