package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/layout"
	"github.com/kingrea/stackhero/internal/phase"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print each module's resolved transform for a phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("phase")
		p, err := phase.Parse(name)
		if err != nil {
			return err
		}
		table, err := catalog.FromConfig(cfg.Modules)
		if err != nil {
			return err
		}
		writeLayout(cmd.OutOrStdout(), layout.FromConfig(cfg), table, p)
		return nil
	},
}

func init() {
	layoutCmd.Flags().String("phase", "stack", "Phase to resolve: chaos, routes or stack")
	rootCmd.AddCommand(layoutCmd)
}

func writeLayout(w io.Writer, g layout.Geometry, table *catalog.Table, p phase.Phase) {
	fmt.Fprintf(w, "%s layout\n", p)
	fmt.Fprintf(w, "%-3s %-8s %-22s %7s %7s %7s %7s %6s %6s\n", "#", "ID", "LABEL", "X", "Y", "W", "H", "ROT", "DELAY")
	for _, m := range table.Modules() {
		t := g.Resolve(m, p)
		fmt.Fprintf(w, "%-3d %-8s %-22s %7.1f %7.1f %7.1f %7.1f %6.1f %6s\n",
			m.Index, m.ID, m.Label, t.X, t.Y, t.Width, t.Height, t.Rotation, t.Delay)
	}
	for _, r := range g.Routes(table.Modules(), p) {
		fmt.Fprintf(w, "route %s → %s: (%.0f,%.0f) via (%.0f,%.0f) to (%.0f,%.0f)\n",
			r.FromID, r.ToID, r.Start.X, r.Start.Y, r.Control.X, r.Control.Y, r.End.X, r.End.Y)
	}
}
