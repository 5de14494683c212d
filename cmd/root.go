package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daily-spark/quote-store/pkg/config"
	"github.com/daily-spark/quote-store/pkg/storage"
	"github.com/daily-spark/quote-store/pkg/storage/provider"
)

const flagStore = "store"

var storeConfigPath string

var appConfig = &config.Config{
	LogLevel:       "info",
	StoreConfig:    "store.yaml",
	RotateSchedule: "@daily",
}

var rootCmd = &cobra.Command{
	Use: "quote-store",
	Long: `Quote Store keeps a personal motivation library in a namespaced
key/value store and exposes the same storage facade the web app and
browser extension builds consume.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initLogger)
	rootCmd.PersistentFlags().StringVar(&storeConfigPath, flagStore, "",
		"Store spec config file. Defaults to "+config.StoreConfigEnv+".")
}

func initLogger() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Warn("Failed to load config, using defaults")
		return
	}
	appConfig = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil { // Silently fall back to info level
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.JSONLog {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// newService builds the storage service from the configured store spec file.
func newService(ctx context.Context) (*storage.Service, error) {
	path := storeConfigPath
	if path == "" {
		path = appConfig.StoreConfig
	}

	spec, err := loadStoreSpec(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load store spec: %w", err)
	}

	service, err := provider.NewService(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}
	return service, nil
}

func loadStoreSpec(path string) (*provider.Spec, error) {
	// Load file
	yamlBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Unmarshal (convert YAML to JSON)
	storeConfig := struct {
		Storage provider.Spec `json:"storage"`
	}{}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &storeConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &storeConfig.Storage, nil
}
