package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/poolpro/poolpro-backend/config"
	"github.com/poolpro/poolpro-backend/internal/bootstrap"
	"github.com/poolpro/poolpro-backend/internal/logger"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/repository"
	"github.com/poolpro/poolpro-backend/internal/storage/postgres"
)

// seedFile is the YAML layout accepted by `worker seed`
type seedFile struct {
	PoolPresets []domain.PoolPreset      `yaml:"poolPresets"`
	Equipment   []domain.EquipmentPreset `yaml:"equipment"`
}

func loadSeedFile(path string) (*seedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, e := range f.Equipment {
		if e.Name == "" || e.Type == "" {
			return nil, fmt.Errorf("equipment #%d: name and type are required", i+1)
		}
	}
	for i, p := range f.PoolPresets {
		if p.Name == "" {
			return nil, fmt.Errorf("pool preset #%d: name is required", i+1)
		}
	}
	return &f, nil
}

func seedCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed [catalog.yaml]",
		Short: "Upsert equipment and pool presets from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), args[0], migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply the schema before importing")
	return cmd
}

func runSeed(ctx context.Context, path string, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := loadSeedFile(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.Log, cfg.App.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	importer := repository.NewCatalogImporter(db)
	if migrate {
		if err := importer.Migrate(ctx); err != nil {
			return err
		}
	}

	presets, err := importer.ImportPoolPresets(ctx, f.PoolPresets)
	if err != nil {
		return err
	}
	equipment, err := importer.ImportEquipment(ctx, f.Equipment)
	if err != nil {
		return err
	}
	lg.Info("catalog seeded", zap.Int("pool_presets", presets), zap.Int("equipment", equipment))

	// stale snapshots would hide the new rows until the TTL expires
	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		lg.Warn("redis unavailable, cache not invalidated", zap.Error(err))
		return nil
	}
	if rdb == nil {
		return nil
	}
	defer func() { _ = rdb.Close() }()

	cache := repository.NewCatalogCache(rdb, nil, cfg.Redis.CatalogCacheTTL, lg)
	if err := cache.Invalidate(ctx); err != nil {
		lg.Warn("cache invalidation failed", zap.Error(err))
	}
	return nil
}
