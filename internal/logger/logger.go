// Package logger builds the application logger.
package logger

import (
	"go.uber.org/zap"

	"github.com/abhisek/questlog/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "prod" || cfg.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
