package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	loaderx "github.com/narinth/insurepath/insurance/loader"
	providerx "github.com/narinth/insurepath/insurance/provider"
	registryx "github.com/narinth/insurepath/insurance/registry"
	toolx "github.com/narinth/insurepath/insurance/tool"
	configx "github.com/narinth/insurepath/pkg/config"
	logx "github.com/narinth/insurepath/pkg/logger"
	serverx "github.com/narinth/insurepath/server"
)

type AppConfig struct {
	ProductDir string `envconfig:"PRODUCT_DIR" split_words:"true" default:"configs/products"`
	ProviderID string `envconfig:"PROVIDER_ID" split_words:"true" default:"mock-insurance"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("INSUREPATH_LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("INSUREPATH")

	products := registryx.NewProductRegistry()
	providers := registryx.NewProviderRegistry()
	providers.Register(providerx.NewReference(appCfg.ProviderID))

	loaded, err := loaderx.LoadDirectory(appCfg.ProductDir, products)
	if err != nil {
		log.Fatal().Err(err).Str("dir", appCfg.ProductDir).Msg("product load failed")
	}
	log.Info().
		Int("products", loaded).
		Str("provider_id", appCfg.ProviderID).
		Msg("registries ready")

	ops, err := toolx.NewOperations(products, providers)
	if err != nil {
		log.Fatal().Err(err).Msg("tool operations init failed")
	}

	srv, err := serverx.New(ops)
	if err != nil {
		log.Fatal().Err(err).Msg("mcp server init failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("mcp server stopped")
	}
}
