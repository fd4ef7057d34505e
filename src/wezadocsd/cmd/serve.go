package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OmaR-WezA/weza-docs/src/pkg/catalog"
	"github.com/OmaR-WezA/weza-docs/src/pkg/config"
	"github.com/OmaR-WezA/weza-docs/src/pkg/documents"
	"github.com/OmaR-WezA/weza-docs/src/pkg/documents/storage"
	"github.com/OmaR-WezA/weza-docs/src/pkg/server"
	"github.com/OmaR-WezA/weza-docs/src/pkg/watermark"
	"github.com/OmaR-WezA/weza-docs/src/wezadocsd/cmd/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the document distribution HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, configPathErr := cmd.Flags().GetString("config")
		if configPathErr != nil {
			return fmt.Errorf("failed to get config: %w", configPathErr)
		}

		cfg, cfgErr := config.Load(configPath)
		if cfgErr != nil {
			return cfgErr
		}
		slog.Debug("Read config", "port", cfg.Port, "dataDir", cfg.DataDir)

		store, storeErr := storage.NewLocalBackend(cfg.BlobDir())
		if storeErr != nil {
			return fmt.Errorf("failed to create blob store: %w", storeErr)
		}

		svc := documents.NewService(catalog.New(cfg.CatalogPath()), store, watermark.NewEngine())
		handler := documents.NewHandler(svc)

		spec, specErr := utils.OpenAPISpecJSON()
		if specErr != nil {
			slog.Warn("failed to prepare OpenAPI spec, docs disabled", "error", specErr)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx, handler, server.Options{
			Port:        cfg.Port,
			AdminSecret: cfg.AdminSecret,
			OpenAPISpec: spec,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "Path to the service config file")
	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		panic(fmt.Errorf("failed to mark flag `config` as required: %w", err))
	}
}
