package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Domenick1991/cardoctor/config"
	"github.com/Domenick1991/cardoctor/internal/cache"
	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/logger"
	"github.com/Domenick1991/cardoctor/internal/repository"
	"github.com/Domenick1991/cardoctor/internal/service/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "Load catalog entries into the services table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the config file",
				Value:   "config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "JSON array of catalog entries",
				Value: "seed/services.json",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall deadline for the import",
				Value: time.Minute,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lg := logger.New(cfg.Log)

	services, err := readServices(c.String("file"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return err
	}

	var invalidator catalog.Invalidator
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		invalidator = redisCache
	}

	inserted, err := catalog.Seed(ctx, repository.NewServiceRepository(pool), invalidator, services)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	lg.Info("catalog seeded", slog.Int("inserted", inserted), slog.Int("total", len(services)))
	return nil
}

func readServices(path string) ([]domain.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return services, nil
}
