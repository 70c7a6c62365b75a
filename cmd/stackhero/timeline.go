package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kingrea/stackhero/internal/phase"
	"github.com/kingrea/stackhero/internal/sequencer"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print when each phase starts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cycles, _ := cmd.Flags().GetInt("cycles")
		schedule := sequencer.Schedule{
			Chaos:  cfg.Timing.Chaos,
			Routes: cfg.Timing.Routes,
			Stack:  cfg.Timing.Stack,
		}
		return writeTimeline(cmd.OutOrStdout(), schedule, cycles)
	},
}

func init() {
	timelineCmd.Flags().Int("cycles", 2, "Number of cycles to print")
	rootCmd.AddCommand(timelineCmd)
}

// writeTimeline walks the schedule on a virtual clock and prints every
// transition the sequencer makes.
func writeTimeline(w io.Writer, schedule sequencer.Schedule, cycles int) error {
	if cycles < 1 {
		return fmt.Errorf("cycles must be at least 1")
	}
	start := time.Unix(0, 0)
	clock := sequencer.NewManualClock(start)
	var changes []sequencer.Change
	seq, err := sequencer.New(schedule,
		sequencer.WithClock(clock),
		sequencer.WithListener(func(c sequencer.Change) { changes = append(changes, c) }),
	)
	if err != nil {
		return err
	}
	seq.Start()
	clock.Advance(time.Duration(cycles)*schedule.Period() - time.Nanosecond)
	seq.Stop()

	fmt.Fprintf(w, "%-6s %-10s %-8s %s\n", "CYCLE", "AT", "PHASE", "HOLD")
	for _, c := range changes {
		at := c.At.Sub(start)
		fmt.Fprintf(w, "%-6d %-10s %-8s %s\n", c.Cycle, at, c.To, schedule.Hold(c.To))
	}
	fmt.Fprintf(w, "period %s; phases %s\n", schedule.Period(), phaseList())
	return nil
}

func phaseList() string {
	out := ""
	for i, p := range phase.All {
		if i > 0 {
			out += " → "
		}
		out += p.String()
	}
	return out
}
