package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/duckbook/internal/book"
	"github.com/mesh-intelligence/duckbook/internal/paths"
	"github.com/mesh-intelligence/duckbook/internal/store"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir  string `yaml:"data_dir,omitempty"`
	PageSize int    `yaml:"page_size"`
	LogLevel string `yaml:"log_level"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize duckbook storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, and create empty books.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	// Only a --data-dir flag is recorded; env and platform defaults stay implicit.
	recorded := ""
	if a.flags.dataDir != "" {
		recorded = a.dataDir
	}
	path := paths.ConfigFile(a.configDir)
	created, err := writeConfigIfMissing(path, recorded)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if created {
		a.log.Info("wrote default config", zap.String("path", path))
	}

	if err := a.update(func(*store.Store) error { return nil }); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "duckbook initialized\nconfig: %s\ndata: %s\n", a.configDir, a.dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, it is left alone.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		DataDir:  dataDir,
		PageSize: book.DefaultPageSize,
		LogLevel: defaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
