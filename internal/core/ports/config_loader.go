package ports

import "go.trai.ch/m2/internal/core/domain"

// ConfigLoader defines the interface for loading the operation configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path searches the working
	// directory and its parents; if no file is found the empty configuration is returned.
	Load(path string) (*domain.OperationConfiguration, error)
}
