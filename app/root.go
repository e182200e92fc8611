package app

import (
	"os"
	"strings"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gigflow",
	Short:         "GigFlow freelance marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory holding config.yaml")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig also configures the global logger from the loaded settings.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}

	setupLogging(cfg)

	return cfg, nil
}

func setupLogging(cfg config.Config) {
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
