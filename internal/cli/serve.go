package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dig-network/digd/internal/daemon"
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the digd daemon",
	Long:  `Start the control loop and HTTP API at localhost:7788.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if serveAddr != "" {
		d.Config.Daemon.Addr = serveAddr
	}

	return d.Serve(context.Background())
}
