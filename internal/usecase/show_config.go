// Package usecase contains the application use cases.
package usecase

import (
	"context"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	IgnoreGlobal bool // Skip the global config file
	IgnoreRepo   bool // Skip the repository config file
	Template     bool // Render the default configuration instead of the effective one
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Content      string                // Rendered TOML
	Warnings     []string              // Unknown keys found while loading
	GlobalConfig domain.ConfigFileInfo // Global config file info
	RepoConfig   domain.ConfigFileInfo // Repository config file info
}

// ShowConfig renders configuration and reports where it was loaded from.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute renders the effective (or default) configuration.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	cfg := domain.NewDefaultConfig()
	if !in.Template {
		var err error
		cfg, err = uc.configLoader.LoadWithOptions(domain.LoadConfigOptions{
			IgnoreGlobal: in.IgnoreGlobal,
			IgnoreRepo:   in.IgnoreRepo,
		})
		if err != nil {
			return nil, err
		}
	}

	content, err := uc.configManager.Render(cfg)
	if err != nil {
		return nil, err
	}

	info := uc.configManager.GetConfigInfo()
	return &ShowConfigOutput{
		Content:      content,
		Warnings:     cfg.Warnings,
		GlobalConfig: info.GlobalConfig,
		RepoConfig:   info.RepoConfig,
	}, nil
}
