package ports

import "go.trai.ch/compat/internal/core/domain"

// ConfigLoader defines the interface for loading the engine configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers compat.yaml from the given working directory upwards.
	// Defaults are returned when no file is found.
	Load(cwd string) (*domain.Config, error)
}
