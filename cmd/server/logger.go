package main

import (
	"github.com/rcamargo/meter-reading-api/internal/config"
	"github.com/rcamargo/meter-reading-api/internal/logging"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName)
}
