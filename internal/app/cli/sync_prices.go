package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mandacaru_broker/internal/app/config"
	"mandacaru_broker/internal/app/di"
	stockusecase "mandacaru_broker/internal/feature/stocks/usecase"
)

func newSyncPricesCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-prices",
		Short: "Refresh every stored price from Twelve Data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Store == config.StoreMemory {
				return fmt.Errorf("sync-prices needs a persistent store, STORE is %q", cfg.Store)
			}
			if cfg.Market.APIKey == "" {
				return fmt.Errorf("TWELVE_DATA_API_KEY is required")
			}

			ctx := cmd.Context()
			infra, err := di.OpenInfra(ctx, cfg)
			if err != nil {
				return err
			}
			defer infra.Close()

			sync := stockusecase.NewPriceSyncUsecase(
				di.NewStockRepository(cfg.Store, infra.DB, infra.Redis, cfg.CacheTTL),
				di.NewMarket(cfg.Market),
				di.NewMarketLimiter(cfg.MarketRateLimit),
			)
			report, err := sync.SyncAll(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "updated=%d unchanged=%d failed=%d\n", report.Updated, report.Unchanged, len(report.Failed))
			if len(report.Failed) > 0 {
				fmt.Fprintf(out, "failed symbols: %s\n", strings.Join(report.Failed, ", "))
			}
			return nil
		},
	}
}
