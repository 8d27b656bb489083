//go:build wireinject
// +build wireinject

package internal

//go:generate go run -mod=mod github.com/google/wire/cmd/wire

import (
	"github.com/google/wire"
	"github.com/supesu/raydium-sniper/internal/container"
	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// ApplicationSet provides the complete application dependency set
var ApplicationSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	container.NewContainer,
)

// ProvideLogger creates a logger instance
func ProvideLogger(cfg *config.Config) logger.Logger {
	return logger.New(cfg.LogLevel, cfg.Environment)
}

// ProvideConfig loads the configuration from configPath, the working directory and the environment
func ProvideConfig(configPath string) (*config.Config, error) {
	return config.Load(configPath)
}

// InitializeContainer creates the application container
func InitializeContainer(configPath string) (*container.Container, error) {
	wire.Build(ApplicationSet)
	return nil, nil
}
