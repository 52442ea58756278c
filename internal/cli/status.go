package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dig-network/digd/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show runtime state: mode, allocation, mission, score",
	RunE:  runStatus,
}

type runtimeView struct {
	Mode          domain.PerformanceMode `json:"mode"`
	Allocation    domain.Allocation      `json:"allocation"`
	ActiveMission *string                `json:"active_mission"`
	SessionXP     uint64                 `json:"session_xp"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	var rt runtimeView
	if err := getJSON("/api/v1/runtime", &rt); err != nil {
		return err
	}

	mission := "-"
	if rt.ActiveMission != nil {
		mission = *rt.ActiveMission
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Mode:\t%s\n", rt.Mode)
	fmt.Fprintf(w, "Mission:\t%s\n", mission)
	fmt.Fprintf(w, "Session XP:\t%d\n", rt.SessionXP)
	fmt.Fprintf(w, "UI CPU:\t%d%%\n", rt.Allocation.UICPUPercent)
	fmt.Fprintf(w, "Worker CPU:\t%d%%\n", rt.Allocation.WorkerCPUPercent)
	fmt.Fprintf(w, "UI GPU:\t%d%%\n", rt.Allocation.UIGPUPercent)
	fmt.Fprintf(w, "Worker GPU:\t%d%%\n", rt.Allocation.WorkerGPUPercent)
	return w.Flush()
}
