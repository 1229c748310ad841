package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/foodstore/internal/mockapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveMockCmd = &cobra.Command{
	Use:   "serve-mock",
	Short: "Run the in-memory development backend",
	Long: `serve-mock starts a backend that serves the storefront /api contract from
memory. It is seeded with the built-in catalog, optional generated restaurants
and a demo account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := mockapi.NewServer(cfg.Mock, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Demo account: %s / %s\n", mockapi.DemoEmail, mockapi.DemoPassword)
		return srv.ListenAndServe(ctx, cfg.Mock.Addr)
	},
}

func init() {
	serveMockCmd.Flags().String("addr", "", "listen address (default :8001)")
	serveMockCmd.Flags().Int("extra-restaurants", 0, "number of generated restaurants added to the seed catalog")
	serveMockCmd.Flags().Int("seed", 0, "random seed for generated data")
	cobra.CheckErr(viper.BindPFlag("mock.addr", serveMockCmd.Flags().Lookup("addr")))
	cobra.CheckErr(viper.BindPFlag("mock.extra_restaurants", serveMockCmd.Flags().Lookup("extra-restaurants")))
	cobra.CheckErr(viper.BindPFlag("mock.seed", serveMockCmd.Flags().Lookup("seed")))
	rootCmd.AddCommand(serveMockCmd)
}
