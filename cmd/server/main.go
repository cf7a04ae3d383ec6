package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/subosito/gotenv"

	"gamestash/pkg/config"
	"gamestash/pkg/inventory"
	"gamestash/pkg/pricecharting"
	"gamestash/pkg/pricing"
	"gamestash/pkg/rates"
	"gamestash/pkg/server"
	"gamestash/pkg/service"
	"gamestash/pkg/storage"
)

func main() {
	gotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "gamestash",
	})

	var (
		cfgFile = flag.String("config", "", "Config file (default is config.yaml)")
		addr    = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Build(*cfgFile, nil)
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if cfg.APIToken == "" {
		logger.Warn("no PriceCharting API token configured, catalog fetches will fail")
	}

	kv := storage.OpenFile(cfg.DataFile, logger)
	store := inventory.NewStore(kv, logger)
	resolver := rates.NewResolver(kv, logger,
		rates.NewBankOfCanada(cfg.FetchTimeout),
		rates.NewExchangeRateAPI(cfg.FetchTimeout),
	)
	catalog := pricecharting.NewClient(cfg.BaseURL, cfg.APIToken, cfg.FetchTimeout)
	updater := service.NewUpdater(store, resolver, pricing.New(catalog, logger), logger)

	srv := server.New(cfg, logger, store, updater, catalog)
	logger.Info("starting server", "addr", cfg.ListenAddr)
	if err := srv.Start(cfg.ListenAddr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
