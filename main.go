package main

import (
	"fmt"
	"os"

	"github.com/Govind-619/storefront/config"
	"github.com/Govind-619/storefront/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   utils.AppName,
	Short: "Storefront cart and checkout service",
	Long: `Storefront serves the shopper cart, coupon and checkout API and
hands finished orders to the configured messaging channel.

Configuration comes from .env, an optional --config file and the
environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger, err = utils.InitLogger(cfg.LogLevel, cfg.LogDir)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, json or toml)")

	rootCmd.AddCommand(serveCmd, migrateCmd, couponCmd, tokenCmd, logStatsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
