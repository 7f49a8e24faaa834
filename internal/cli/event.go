package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/mgpai22/fansub/internal/session"
	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "List, add, update and delete dialogue events",
	Long: `Edit the dialogue events of an ASS script.

Events are addressed by their position in the script (1-based), as shown
by "fansub event list".`,
}

var eventListCmd = &cobra.Command{
	Use:   "list [subtitle_file]",
	Short: "List events with their positions",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventList,
}

var eventAddCmd = &cobra.Command{
	Use:   "add [subtitle_file]",
	Short: "Append an event",
	Long: `Append an event to the end of the script.

Without --end the event lasts the configured default duration (3s).

Examples:
  fansub event add episode.ass --start 0:01:02.50 --text "Hello"
  fansub event add episode.ass --start 62500 --end 65000 --style Sign --text "{\an8}Bakery"`,
	Args: cobra.ExactArgs(1),
	RunE: runEventAdd,
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update [subtitle_file] [position]",
	Short: "Change fields of an event",
	Long: `Change fields of an existing event. Only the given flags are changed.

Examples:
  fansub event update episode.ass 4 --text "Fixed typo"
  fansub event update episode.ass 4 --start 0:00:10.00 --end 0:00:12.00`,
	Args: cobra.ExactArgs(2),
	RunE: runEventUpdate,
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete [subtitle_file] [position...]",
	Short: "Delete events",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runEventDelete,
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventListCmd, eventAddCmd, eventUpdateCmd, eventDeleteCmd)

	for _, c := range []*cobra.Command{eventAddCmd, eventUpdateCmd} {
		addEventFlags(c.Flags())
	}
	_ = eventAddCmd.MarkFlagRequired("start")
}

func addEventFlags(flags *pflag.FlagSet) {
	flags.String("start", "", "Start time (H:MM:SS.CC, duration or milliseconds)")
	flags.String("end", "", "End time (H:MM:SS.CC, duration or milliseconds)")
	flags.String("text", "", "Dialogue text, may contain override tags and \\N")
	flags.String("style", subtitle.DefaultStyleName, "Style name")
	flags.String("name", "", "Actor name")
	flags.String("effect", "", "Effect field")
	flags.Int("layer", 0, "Layer (higher is drawn on top)")
	flags.Int("margin-l", 0, "Left margin override")
	flags.Int("margin-r", 0, "Right margin override")
	flags.Int("margin-v", 0, "Vertical margin override")
}

// copies changed flags onto ev
func applyEventFlags(flags *pflag.FlagSet, ev subtitle.Event) (subtitle.Event, error) {
	if flags.Changed("start") {
		v, _ := flags.GetString("start")
		ms, err := parseTimestamp(v)
		if err != nil {
			return ev, err
		}
		ev.Start = ms
	}
	if flags.Changed("end") {
		v, _ := flags.GetString("end")
		ms, err := parseTimestamp(v)
		if err != nil {
			return ev, err
		}
		ev.End = ms
	}
	if flags.Changed("text") {
		ev.Text, _ = flags.GetString("text")
	}
	if flags.Changed("style") {
		ev.Style, _ = flags.GetString("style")
	}
	if flags.Changed("name") {
		ev.Name, _ = flags.GetString("name")
	}
	if flags.Changed("effect") {
		ev.Effect, _ = flags.GetString("effect")
	}
	if flags.Changed("layer") {
		ev.Layer, _ = flags.GetInt("layer")
	}
	if flags.Changed("margin-l") {
		ev.MarginL, _ = flags.GetInt("margin-l")
	}
	if flags.Changed("margin-r") {
		ev.MarginR, _ = flags.GetInt("margin-r")
	}
	if flags.Changed("margin-v") {
		ev.MarginV, _ = flags.GetInt("margin-v")
	}
	return ev, nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	doc, err := loadScript(args[0])
	if err != nil {
		return err
	}

	for i, e := range doc.Events {
		fmt.Printf("%4d  %s --> %s  %-10s %s\n",
			i+1,
			subtitle.FormatASSTime(e.Start),
			subtitle.FormatASSTime(e.End),
			e.Style,
			e.Text,
		)
	}
	return nil
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputOrInPlace(outputFlag, inputPath)

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}

	ed := session.NewEditor(doc,
		session.WithLogger(logger),
		session.WithEventDuration(cfg.EventDurationMs),
	)

	start, _ := cmd.Flags().GetString("start")
	ms, err := parseTimestamp(start)
	if err != nil {
		return err
	}
	ed.SetPlayhead(ms)

	style, _ := cmd.Flags().GetString("style")
	text, _ := cmd.Flags().GetString("text")
	ev := ed.AddEventAtPlayhead(text, style)

	ev, err = applyEventFlags(cmd.Flags(), ev)
	if err != nil {
		return err
	}
	ed.UpdateEvent(ev)

	doc = ed.Document()
	if _, ok := doc.StyleByName(ev.Style); !ok {
		logger.Warnw("Event references a style that does not exist", "style", ev.Style)
	}

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	fmt.Printf("Added event %d: %s --> %s\n",
		len(doc.Events),
		subtitle.FormatASSTime(ev.Start),
		subtitle.FormatASSTime(ev.End),
	)
	return nil
}

func runEventUpdate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputOrInPlace(outputFlag, inputPath)

	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid event position %q", args[1])
	}

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}
	ids, err := eventIDs(doc, []int{n})
	if err != nil {
		return err
	}

	current, _ := doc.EventByID(ids[0])
	updated, err := applyEventFlags(cmd.Flags(), current)
	if err != nil {
		return err
	}
	doc = doc.UpdateEvent(ids[0], updated)

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	fmt.Printf("Updated event %d\n", n)
	return nil
}

// sorted, deduplicated 1-based positions
func parsePositions(args []string) ([]int, error) {
	numbers := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid event position %q", a)
		}
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return slices.Compact(numbers), nil
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputOrInPlace(outputFlag, inputPath)

	numbers, err := parsePositions(args[1:])
	if err != nil {
		return err
	}

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}
	ids, err := eventIDs(doc, numbers)
	if err != nil {
		return err
	}

	for _, id := range ids {
		doc = doc.DeleteEvent(id)
	}

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	fmt.Printf("Deleted %d events, %d left\n", len(ids), len(doc.Events))
	return nil
}
