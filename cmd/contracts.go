package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/chainharvest/chainharvest/configs"
	"github.com/chainharvest/chainharvest/internal/common"
	"github.com/chainharvest/chainharvest/internal/contracts"
	"github.com/chainharvest/chainharvest/internal/csvout"
	"github.com/chainharvest/chainharvest/internal/explorer"
	"github.com/chainharvest/chainharvest/internal/rpc"
	"github.com/chainharvest/chainharvest/internal/worker"
)

var (
	contractsCmd = &cobra.Command{
		Use:   "contracts",
		Short: "Scan a block range for contract creations and write them to CSV",
		Run: func(cmd *cobra.Command, args []string) {
			RunContracts(cmd, args)
		},
	}
)

func RunContracts(cmd *cobra.Command, args []string) {
	if err := config.ValidateContracts(&config.Cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid contracts configuration")
	}

	rpcClient, err := rpc.Initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize RPC")
	}
	defer rpcClient.Close()

	ctx := context.Background()
	startBlock := config.Cfg.Contracts.StartBlock
	endBlock := startBlock + config.Cfg.Contracts.BlockWidth
	log.Info().Msgf("Scanning blocks %d to %d for contract creations", startBlock, endBlock)

	blockResults := rpcClient.GetFullBlocks(ctx, common.BlockRange(startBlock, endBlock))

	explorerClient := explorer.NewClient(config.Cfg.Explorer.URL, config.Cfg.Explorer.APIKey)
	verifier := worker.NewVerifier(explorerClient, config.Cfg.Explorer.Concurrency)
	filter := contracts.NewFilter(verifier)
	summaries := filter.CollectCreations(ctx, blockResults)

	outputFile := config.Cfg.Contracts.OutputFile
	if outputFile == "" {
		outputFile = "contract_creations.csv"
	}
	writer := csvout.NewWriter()
	if err := writer.WriteFile(outputFile, contracts.Records(summaries)); err != nil {
		log.Error().Err(err).Msgf("Error saving contract creations to %s", outputFile)
	}
}
