package cli

import (
	"fmt"

	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Shift event timing",
	Long: `Shift the start and end of events by a fixed offset.

Times never go below zero: an event pushed past the start of the video is
clamped to 0:00:00.00.

By default every event moves. Use --events to pick events by their
position (1-based) or --at to move only the events shown at a given time.

Examples:
  fansub shift episode.ass --by 1.5s
  fansub shift episode.ass --by -250ms --events 3,4,5
  fansub shift episode.ass --by 2000 --at 0:12:30.00 -o fixed.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().
		String("by", "", "Offset as milliseconds or a duration like -1.5s (required)")
	shiftCmd.Flags().
		IntSlice("events", nil, "Only shift these events (1-based positions)")
	shiftCmd.Flags().
		String("at", "", "Only shift events active at this time")

	_ = shiftCmd.MarkFlagRequired("by")
	shiftCmd.MarkFlagsMutuallyExclusive("events", "at")
}

func runShift(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	by, _ := cmd.Flags().GetString("by")
	numbers, _ := cmd.Flags().GetIntSlice("events")
	at, _ := cmd.Flags().GetString("at")
	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputOrInPlace(outputFlag, inputPath)

	offset, err := parseOffset(by)
	if err != nil {
		return err
	}

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}

	var ids []string
	switch {
	case len(numbers) > 0:
		ids, err = eventIDs(doc, numbers)
		if err != nil {
			return err
		}
	case at != "":
		ms, err := parseTimestamp(at)
		if err != nil {
			return err
		}
		for _, e := range doc.ActiveAt(ms) {
			ids = append(ids, e.ID)
		}
		if len(ids) == 0 {
			return fmt.Errorf("no events active at %s", subtitle.FormatASSTime(ms))
		}
	}

	if ids == nil {
		doc = doc.ShiftTiming(offset)
	} else {
		doc = doc.ShiftEvents(ids, offset)
	}

	moved := len(ids)
	if ids == nil {
		moved = len(doc.Events)
	}

	logger.Infow("Shifted timing",
		"offset_ms", offset,
		"events", moved,
	)

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	fmt.Printf("Shifted %d events by %dms: %s\n", moved, offset, outputPath)
	return nil
}
