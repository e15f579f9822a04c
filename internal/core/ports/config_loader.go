package ports

import "go.trai.ch/carton/internal/core/domain"

// ConfigLoader defines the interface for loading the carton configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers carton.yaml starting at cwd and returns the resolved configuration.
	// An explicit path overrides discovery. Defaults are returned when nothing is found.
	Load(cwd, path string) (*domain.Config, error)
}
