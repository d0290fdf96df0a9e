package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configs "github.com/chainharvest/chainharvest/configs"
	customLogger "github.com/chainharvest/chainharvest/internal/log"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "chainharvest",
		Short: "Export on-chain contract creations and new DEX pools to CSV",
		Long:  "chainharvest queries an Ethereum JSON-RPC gateway, a block-explorer API and a pool-data API and writes flattened records to CSV files.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "JSON-RPC gateway URL, key included")
	rootCmd.PersistentFlags().String("explorer-url", "", "Block-explorer API URL")
	rootCmd.PersistentFlags().String("explorer-api-key", "", "Block-explorer API key")
	rootCmd.PersistentFlags().Int("explorer-concurrency", 4, "How many verification lookups to run in parallel")
	rootCmd.PersistentFlags().Uint64("contracts-start-block", 0, "First block of the range to scan")
	rootCmd.PersistentFlags().Uint64("contracts-block-width", 100, "How many blocks past the start block to scan")
	rootCmd.PersistentFlags().String("contracts-output", "contract_creations.csv", "Output CSV file for contract creations")
	rootCmd.PersistentFlags().String("pools-url", "", "Pool-data API URL")
	rootCmd.PersistentFlags().String("pools-network", "eth", "Network identifier for the pool-data API")
	rootCmd.PersistentFlags().Int("pools-page", 1, "Which page of new pools to fetch")
	rootCmd.PersistentFlags().Int("pools-page-size", 20, "How many pools to fetch per page")
	rootCmd.PersistentFlags().String("pools-sort", "created_at", "Sort order for the pool listing")
	rootCmd.PersistentFlags().Int("pools-request-delay", 1000, "Milliseconds to wait between per-pool detail requests")
	rootCmd.PersistentFlags().String("pools-output", "", "Output CSV file for pools (default is <network>_pools_<timestamp>.csv)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Whether to prettify the log output")
	viper.BindPFlag("rpc.url", rootCmd.PersistentFlags().Lookup("rpc-url"))
	viper.BindPFlag("explorer.url", rootCmd.PersistentFlags().Lookup("explorer-url"))
	viper.BindPFlag("explorer.apiKey", rootCmd.PersistentFlags().Lookup("explorer-api-key"))
	viper.BindPFlag("explorer.concurrency", rootCmd.PersistentFlags().Lookup("explorer-concurrency"))
	viper.BindPFlag("contracts.startBlock", rootCmd.PersistentFlags().Lookup("contracts-start-block"))
	viper.BindPFlag("contracts.blockWidth", rootCmd.PersistentFlags().Lookup("contracts-block-width"))
	viper.BindPFlag("contracts.outputFile", rootCmd.PersistentFlags().Lookup("contracts-output"))
	viper.BindPFlag("pools.url", rootCmd.PersistentFlags().Lookup("pools-url"))
	viper.BindPFlag("pools.network", rootCmd.PersistentFlags().Lookup("pools-network"))
	viper.BindPFlag("pools.page", rootCmd.PersistentFlags().Lookup("pools-page"))
	viper.BindPFlag("pools.pageSize", rootCmd.PersistentFlags().Lookup("pools-page-size"))
	viper.BindPFlag("pools.sort", rootCmd.PersistentFlags().Lookup("pools-sort"))
	viper.BindPFlag("pools.requestDelay", rootCmd.PersistentFlags().Lookup("pools-request-delay"))
	viper.BindPFlag("pools.outputFile", rootCmd.PersistentFlags().Lookup("pools-output"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
	rootCmd.AddCommand(contractsCmd)
	rootCmd.AddCommand(poolsCmd)
}

func initConfig() {
	if err := configs.LoadConfig(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	customLogger.InitLogger()
}
