package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/forkoooor/skipper/utils"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "skipper",
	Short: "A cyclic arbitrage bot for cosmwasm AMMs",
	Long: `Skipper watches the mempool for pending swaps against tracked pools
and sizes counter-cycles that capture the price displacement they create.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skipper.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initConfig() {
	utils.InitLogger(debug)
}
