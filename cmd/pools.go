package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/chainharvest/chainharvest/configs"
	"github.com/chainharvest/chainharvest/internal/csvout"
	"github.com/chainharvest/chainharvest/internal/pools"
)

var (
	poolsCmd = &cobra.Command{
		Use:   "pools",
		Short: "Fetch the newest DEX pools and write them to CSV",
		Run: func(cmd *cobra.Command, args []string) {
			RunPools(cmd, args)
		},
	}
)

func RunPools(cmd *cobra.Command, args []string) {
	if err := config.ValidatePools(&config.Cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid pools configuration")
	}

	requestDelay := config.Cfg.Pools.RequestDelay
	if requestDelay <= 0 {
		requestDelay = 1000
	}

	client := pools.NewClient(config.Cfg.Pools.URL, config.Cfg.Pools.Network)
	collector := pools.NewCollector(
		client,
		config.Cfg.Pools.Page,
		config.Cfg.Pools.PageSize,
		config.Cfg.Pools.Sort,
		time.Duration(requestDelay)*time.Millisecond,
	)

	summaries, err := collector.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to collect pools")
	}

	outputFile := config.Cfg.Pools.OutputFile
	if outputFile == "" {
		network := config.Cfg.Pools.Network
		if network == "" {
			network = pools.DefaultNetwork
		}
		outputFile = fmt.Sprintf("%s_pools_%s.csv", network, time.Now().Format("20060102_150405"))
	}
	writer := csvout.NewWriter()
	if err := writer.WriteFile(outputFile, pools.Records(summaries)); err != nil {
		log.Error().Err(err).Msgf("Error saving pools to %s", outputFile)
	}
}
