package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/fansub/internal/ffmpeg"
	"github.com/mgpai22/fansub/internal/media"
	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle track from a video file",
	Long: `Extract a subtitle track from a video container (mkv, mp4, ...) and save
it as an ASS script.

The track is converted to ASS by ffmpeg and then normalized by the script
parser. Use --raw to keep ffmpeg's output untouched.

Examples:
  fansub extract episode.mkv
  fansub extract episode.mkv --stream 1 -o episode.jp.ass
  fansub extract episode.mkv --list`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream to extract (0 = first subtitle track)")
	extractCmd.Flags().
		Bool("raw", false, "Write ffmpeg's output without normalizing it")
	extractCmd.Flags().
		Bool("list", false, "List subtitle streams and exit")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	stream, _ := cmd.Flags().GetInt("stream")
	raw, _ := cmd.Flags().GetBool("raw")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	if outputPath == "" {
		outputPath = withExtension(videoPath, subtitle.FormatASS)
	}
	if subtitle.GetFormatFromExtension(outputPath) != subtitle.FormatASS {
		return fmt.Errorf("output %q must have an .ass or .ssa extension", outputPath)
	}

	bin, err := ffmpeg.Locate(cfg.FFmpegPath, cfg.FFprobePath)
	if err != nil {
		return err
	}
	processor := media.NewProcessor(bin)
	ctx := context.Background()

	if list {
		info, err := processor.GetInfo(ctx, videoPath)
		if err != nil {
			return err
		}
		if len(info.SubtitleStreams) == 0 {
			fmt.Println("No subtitle streams")
			return nil
		}
		for _, s := range info.SubtitleStreams {
			fmt.Printf("  %d: %s lang=%s title=%q\n", s.Index, s.Codec, s.Language, s.Title)
		}
		return nil
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
		"stream", stream,
		"raw", raw,
	)

	target := outputPath
	if !raw {
		tempDir, err := os.MkdirTemp("", "fansub-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempDir)
		target = filepath.Join(tempDir, "track.ass")
	}

	opts := media.ExtractSubtitleOptions{Stream: stream}
	if err := processor.ExtractSubtitles(ctx, videoPath, target, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if !raw {
		doc, err := loadScript(target)
		if err != nil {
			return err
		}
		if err := saveScript(doc, outputPath); err != nil {
			return err
		}
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles extracted successfully: %s\n", absOutput)

	return nil
}
