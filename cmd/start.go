package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forkoooor/skipper/cmd/bot"
	"github.com/forkoooor/skipper/config"
	"github.com/forkoooor/skipper/utils"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the arbitrage bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := utils.GetLogger()

		if err := config.LoadEnv(); err != nil {
			log.Debug("No .env file loaded", zap.Error(err))
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg.ApplyEnvOverrides()

		b, err := bot.New(cfg, prometheus.DefaultRegisterer, log)
		if err != nil {
			return err
		}

		return b.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
