package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/questlog/internal/scanner"
	"github.com/abhisek/questlog/internal/tracker"
	"github.com/abhisek/questlog/internal/ui/theme"
)

var trackCmd = &cobra.Command{
	Use:   "track <node-id>",
	Short: "Simulate reading through a node and record exploration",
	Long: "Replays a scroll from top to bottom over the given section heights,\n" +
		"feeding coalesced percent updates into the progress store — useful for\n" +
		"seeding data and sanity-checking tracker behavior.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sectionsArg, _ := cmd.Flags().GetString("sections")
		step, _ := cmd.Flags().GetFloat64("step")
		if step <= 0 {
			return fmt.Errorf("--step must be positive")
		}

		sections, total, err := parseSections(sectionsArg)
		if err != nil {
			return err
		}

		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		frame := eng.cfg.Tracker.FrameInterval
		if frame <= 0 {
			frame = tracker.DefaultFrameInterval
		}
		tr := tracker.New(args[0], scanner.NewStatic(sections...), eng.store,
			tracker.WithScheduler(tracker.NewFrameScheduler(frame)),
			tracker.WithSettleDelay(eng.cfg.Tracker.SettleDelay))
		defer tr.Close()

		tr.Mount()
		for bottom := step; bottom < total+step; bottom += step {
			tr.OnScroll(bottom)
			// Let the coalesced recompute land before the next event.
			time.Sleep(2 * frame)
			np := eng.store.NodeProgress(args[0])
			fmt.Printf("\r%s", theme.ProgressBar(np.ExploredPercent, 30))
		}
		fmt.Println()
		return nil
	},
}

// parseSections turns "800,600,400" into stacked sections and their total
// height.
func parseSections(arg string) ([]scanner.Section, float64, error) {
	var (
		sections []scanner.Section
		top      float64
	)
	for i, part := range strings.Split(arg, ",") {
		h, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || h <= 0 {
			return nil, 0, fmt.Errorf("invalid section height %q", part)
		}
		sections = append(sections, scanner.Section{
			ID:     fmt.Sprintf("section-%d", i+1),
			Top:    top,
			Height: h,
		})
		top += h
	}
	return sections, top, nil
}

func init() {
	trackCmd.Flags().String("sections", "800,600,400", "Comma-separated section heights in px")
	trackCmd.Flags().Float64("step", 240, "Scroll step in px per simulated event")
}
