package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dig-network/digd/internal/domain"
)

func init() {
	rootCmd.AddCommand(missionsCmd)
}

var missionsCmd = &cobra.Command{
	Use:     "missions",
	Aliases: []string{"ls"},
	Short:   "List available compute missions",
	RunE:    runMissions,
}

func runMissions(cmd *cobra.Command, args []string) error {
	var missions []domain.Mission
	if err := getJSON("/api/v1/missions", &missions); err != nil {
		return err
	}

	if len(missions) == 0 {
		fmt.Println("No missions available.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tBOUNTY\tDATA\tETA\tPRIORITY\tDOMAIN")
	for _, m := range missions {
		fmt.Fprintf(w, "%s\t%s\t%.0f DIG\t%.1f GB\t%d min\t%d\t%s\n",
			m.ID, m.Title, m.BountyDIG, m.DatasetGB, m.ETAMinutes, m.Priority, m.Domain)
	}
	return w.Flush()
}
