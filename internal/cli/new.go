package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/fansub/internal/ffmpeg"
	"github.com/mgpai22/fansub/internal/media"
	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [video_file]",
	Short: "Create an empty ASS script",
	Long: `Create a new ASS script with a single Default style and no events.

When a video file is given, the script is placed next to it and its
resolution is used for PlayResX/PlayResY (requires ffprobe). Defaults for
the title and the Default style come from the config file.

Examples:
  fansub new episode01.mkv
  fansub new episode01.mkv --title "Episode 1"
  fansub new -o blank.ass`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("title", "", "Script title (defaults to the video name)")
	newCmd.Flags().Bool("force", false, "Overwrite an existing output file")
}

func runNew(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	force, _ := cmd.Flags().GetBool("force")
	outputPath, _ := cmd.Flags().GetString("output")

	var videoPath string
	if len(args) == 1 {
		videoPath = args[0]
		if _, err := os.Stat(videoPath); os.IsNotExist(err) {
			return fmt.Errorf("video file not found: %s", videoPath)
		}
		if !media.IsVideoFile(videoPath) {
			return fmt.Errorf("unsupported file type: %s (expected a video file)", filepath.Ext(videoPath))
		}
	}

	if outputPath == "" {
		if videoPath == "" {
			return fmt.Errorf("output path is required without a video file: use -o")
		}
		outputPath = withExtension(videoPath, subtitle.FormatASS)
	}
	if subtitle.GetFormatFromExtension(outputPath) != subtitle.FormatASS {
		return fmt.Errorf("output %q must have an .ass or .ssa extension", outputPath)
	}
	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("%s already exists: use --force to overwrite", outputPath)
	}

	if title == "" && videoPath != "" {
		base := filepath.Base(videoPath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	doc := cfg.NewDocument(title)

	if videoPath != "" {
		if err := applyVideoResolution(cmd.Context(), &doc, videoPath); err != nil {
			logger.Warnw("Could not read video resolution, keeping defaults",
				"video", videoPath,
				"error", err,
			)
		}
	}

	logger.Infow("Creating script",
		"output", outputPath,
		"title", doc.Script.Title,
		"play_res_x", doc.Script.PlayResX,
		"play_res_y", doc.Script.PlayResY,
	)

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Script created: %s\n", absOutput)
	return nil
}

func applyVideoResolution(ctx context.Context, doc *subtitle.Document, videoPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	bin, err := ffmpeg.Locate(cfg.FFmpegPath, cfg.FFprobePath)
	if err != nil {
		return err
	}

	info, err := media.NewProcessor(bin).GetInfo(ctx, videoPath)
	if err != nil {
		return err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("no video stream in %s", videoPath)
	}

	doc.Script.PlayResX = info.Width
	doc.Script.PlayResY = info.Height
	return nil
}
