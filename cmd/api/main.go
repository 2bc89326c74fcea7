package main

import (
	"github.com/skuldata/skuldata/internal/pkg/logger"
	"github.com/skuldata/skuldata/internal/server"
)

// @title           Skuldata API
// @version         1.0
// @description     School administration backend: accounts, people records, documents and reports.

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server terminated with error")
	}
}
