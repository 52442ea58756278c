package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dig-network/digd/internal/domain"
)

func init() {
	rootCmd.AddCommand(telemetryCmd)
}

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Show the latest telemetry snapshot",
	RunE:  runTelemetry,
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	var snap domain.TelemetrySnapshot
	if err := getJSON("/api/v1/telemetry", &snap); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Sampled:\t%s\n", snap.Timestamp.Format("15:04:05"))
	fmt.Fprintf(w, "Mode:\t%s\n", snap.Mode)
	fmt.Fprintf(w, "CPU load:\t%.2f%%\n", snap.CPULoadPercent)
	fmt.Fprintf(w, "CPU temp:\t%.2f C\n", snap.CPUTempC)
	fmt.Fprintf(w, "GPU load:\t%.2f%%\n", snap.GPULoadPercent)
	fmt.Fprintf(w, "GPU temp:\t%.2f C\n", snap.GPUTempC)
	fmt.Fprintf(w, "Latency:\t%.2f ms\n", snap.NetLatencyMS)
	fmt.Fprintf(w, "Earnings:\t%.4f DIG/s\n", snap.EarningsPerSec)
	fmt.Fprintf(w, "Impact:\t%.2f\n", snap.ImpactScore)
	return w.Flush()
}
