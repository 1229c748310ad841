package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/output"
	"github.com/chrisdamba/foodstore/internal/repositories"
	"github.com/spf13/cobra"
)

var ordersLocal bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect and export placed orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders from the backend or the local history",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := loadOrderRows(cmd.Context())
		if err != nil {
			return err
		}
		printOrderRows(cmd.OutOrStdout(), rows)
		return nil
	},
}

var ordersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export orders to a parquet file (local or s3)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rows, err := loadOrderRows(ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No orders to export")
			return nil
		}
		exporter, err := output.NewParquetExporter(ctx, cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		location, err := exporter.Export(ctx, rows)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		logger.Info("orders exported", "count", len(rows), "location", location)
		fmt.Fprintf(cmd.OutOrStdout(), "\nExported %d order(s) to %s\n", len(rows), location)
		return nil
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Update the status of an order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidOrderStatus(args[1]) {
			return fmt.Errorf("invalid status %q, expected one of %v", args[1], models.OrderStatuses)
		}
		if err := newClient(cfg).UpdateOrderStatus(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", args[0], args[1])
		return nil
	},
}

var ordersSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the backend order list into the local history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		orders, err := newClient(cfg).ListOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		repo, pool, err := openOrderRepository(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		total, err := syncOrders(ctx, repo, orders)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d order(s), %d in local history\n", len(orders), total)
		return nil
	},
}

var ordersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the local order history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, pool, err := openOrderRepository(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := repo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear order history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Local order history cleared")
		return nil
	},
}

func init() {
	ordersCmd.PersistentFlags().BoolVar(&ordersLocal, "local", false, "use the local order history database instead of the backend")
	ordersCmd.AddCommand(ordersListCmd, ordersExportCmd, ordersStatusCmd, ordersSyncCmd, ordersClearCmd)
	rootCmd.AddCommand(ordersCmd)
}

func loadOrderRows(ctx context.Context) ([]output.OrderRow, error) {
	if ordersLocal {
		repo, pool, err := openOrderRepository(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return historyRows(ctx, repo)
	}

	orders, err := newClient(cfg).ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	rows := make([]output.OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, output.RowFromOrder(o))
	}
	return rows, nil
}

func historyRows(ctx context.Context, repo repositories.OrderRepository) ([]output.OrderRow, error) {
	placed, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}
	rows := make([]output.OrderRow, 0, len(placed))
	for _, p := range placed {
		rows = append(rows, output.RowFromPlaced(*p))
	}
	return rows, nil
}

// syncOrders stores backend orders in the history and returns the history size.
// Orders already present are left untouched.
func syncOrders(ctx context.Context, repo repositories.OrderRepository, orders []models.Order) (int, error) {
	placed := make([]*models.PlacedOrder, 0, len(orders))
	for _, o := range orders {
		p := models.PlacedFromOrder(o)
		placed = append(placed, &p)
	}
	if err := repo.BulkCreate(ctx, placed); err != nil {
		return 0, fmt.Errorf("failed to store orders: %w", err)
	}
	return repo.Count(ctx)
}

func printOrderRows(w io.Writer, rows []output.OrderRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No orders yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tRESTAURANT\tSTATUS\tITEMS\tTOTAL\tPAYMENT")
	for _, r := range rows {
		restaurant := r.RestaurantName
		if restaurant == "" {
			restaurant = r.RestaurantID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", r.OrderID, restaurant, r.Status, r.ItemCount, formatMoney(r.Total), r.PaymentMethod)
	}
	tw.Flush()
}
