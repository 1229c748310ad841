package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/output"
	"github.com/chrisdamba/foodstore/internal/receipt"
	"github.com/chrisdamba/foodstore/internal/repositories/postgres"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

func newClient(cfg *models.Config) *catalog.Client {
	return catalog.NewClient(cfg.APIBase(),
		catalog.WithTokenStore(catalog.NewFileTokenStore(cfg.TokenFile)),
		catalog.WithLogger(logger),
	)
}

func openOrderRepository(ctx context.Context, cfg *models.Config) (*postgres.OrderRepository, *pgxpool.Pool, error) {
	if !cfg.Database.Enabled() {
		return nil, nil, errors.New("no order history database configured (set database.host and database.dbname)")
	}
	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	repo := postgres.NewOrderRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool, nil
}

// buildRecorders wires every configured sink for placed orders. The returned
// func releases their connections.
func buildRecorders(ctx context.Context, cfg *models.Config) ([]session.OrderRecorder, func()) {
	var (
		recorders []session.OrderRecorder
		closers   []func()
	)

	if cfg.ReceiptFolder != "" {
		recorders = append(recorders, receipt.NewFileRecorder(cfg.ReceiptFolder, logger))
	}

	if cfg.KafkaEnabled {
		kafka, err := output.NewKafkaRecorder(cfg, logger)
		if err != nil {
			logger.Warn("order events disabled", "error", err)
		} else {
			recorders = append(recorders, kafka)
			closers = append(closers, func() {
				if err := kafka.Close(); err != nil {
					logger.Error("failed to close kafka producer", "error", err)
				}
			})
		}
	}

	if cfg.Database.Enabled() {
		repo, pool, err := openOrderRepository(ctx, cfg)
		if err != nil {
			logger.Warn("local order history disabled", "error", err)
		} else {
			recorders = append(recorders, repo)
			closers = append(closers, pool.Close)
		}
	}

	return recorders, func() {
		for _, c := range closers {
			c()
		}
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}
