package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dig-network/digd/internal/domain"
)

func init() {
	rootCmd.AddCommand(modeCmd)
}

var modeCmd = &cobra.Command{
	Use:   "mode [gaming|balanced|sleep|autopilot]",
	Short: "Switch the performance mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runMode,
}

func runMode(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(args[0])
	if _, err := domain.ParseMode(name); err != nil {
		return err
	}

	var rt runtimeView
	if err := postJSON("/api/v1/mode", map[string]string{"mode": name}, &rt); err != nil {
		return err
	}

	fmt.Printf("Mode set to %s (ui cpu %d%%, worker cpu %d%%, ui gpu %d%%, worker gpu %d%%)\n",
		rt.Mode,
		rt.Allocation.UICPUPercent,
		rt.Allocation.WorkerCPUPercent,
		rt.Allocation.UIGPUPercent,
		rt.Allocation.WorkerGPUPercent,
	)
	return nil
}
