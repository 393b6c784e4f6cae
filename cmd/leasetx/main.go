package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/cli"
	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/config"
)

var (
	cfgFile   string
	version   = "dev"
	appConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:   "leasetx",
		Short: "🏢 전월세 실거래가 조회",
		Long: `leasetx looks up Korean lease transactions (전세/월세) by district and
contract-expiry month, drills into individual buildings and shows the owners
of record for a lot.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/leasetx/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, text, json)")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(buildingCmd())
	rootCmd.AddCommand(ownersCmd())
	rootCmd.AddCommand(unitCmd())
	rootCmd.AddCommand(findCmd())
	rootCmd.AddCommand(locationsCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received termination signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		slog.Debug("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, cli.FormatError(errorText(err)))
		os.Exit(1)
	}
}

// errorText picks the message shown for a failed command. Errors that carry
// a user-facing message are shown as such; anything else is printed whole.
func errorText(err error) string {
	var userErr *common.UserError
	var apiErr *api.Error
	if errors.As(err, &userErr) || errors.As(err, &apiErr) ||
		errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrBusy) {
		return api.UserMessage(err)
	}
	return err.Error()
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("Configuration loaded", "config_file", viper.ConfigFileUsed(), "api", cfg.API.BaseURL)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "leasetx %s\n", version)
		},
	}
}
