package ports

import "go.trai.ch/taskrun/internal/core/domain"

// ConfigLoader defines the interface for loading project configuration and task metadata.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration file from cwd upwards, or reads path when it is not empty.
	// A missing configuration is not an error; an empty Config is returned.
	Load(cwd, path string) (*domain.Config, error)

	// LoadMetadata reads the metadata file that accompanies the task executable.
	// It returns nil metadata without error when the task ships none.
	LoadMetadata(executable string) (*domain.TaskMetadata, error)
}
