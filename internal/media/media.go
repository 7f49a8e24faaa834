package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/fansub/internal/ffmpeg"
	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

var ErrNoSubtitleStream = errors.New("no subtitle stream")

// video file information
type Info struct {
	Path            string
	Duration        time.Duration
	Width           int
	Height          int
	Codec           string
	SubtitleStreams []SubtitleStream
}

// subtitle track inside a container
type SubtitleStream struct {
	Index    int // position among subtitle streams, as used by -map 0:s:N
	Codec    string
	Language string
	Title    string
}

// defines interface for video operations the editor needs
type Processor interface {
	// retrieves video file information
	GetInfo(ctx context.Context, videoPath string) (*Info, error)

	// extracts an embedded subtitle track as ASS
	ExtractSubtitles(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractSubtitleOptions,
	) error
}

// holds options for subtitle extraction
type ExtractSubtitleOptions struct {
	Stream int // index among subtitle streams
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	bin ffmpeg.BinaryPaths
}

func NewProcessor(bin ffmpeg.BinaryPaths) *DefaultProcessor {
	return &DefaultProcessor{
		bin: bin,
	}
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Tags      struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// retrieves video file information
func (p *DefaultProcessor) GetInfo(
	ctx context.Context,
	videoPath string,
) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	cmd := exec.CommandContext(ctx, p.bin.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbe(videoPath, out.Bytes())
}

func parseProbe(videoPath string, data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{Path: videoPath}

	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if info.Codec == "" {
				info.Codec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
			}
		case "subtitle":
			info.SubtitleStreams = append(info.SubtitleStreams, SubtitleStream{
				Index:    len(info.SubtitleStreams),
				Codec:    s.CodecName,
				Language: s.Tags.Language,
				Title:    s.Tags.Title,
			})
		}
	}

	return info, nil
}

// extracts an embedded subtitle track into an .ass file
func (p *DefaultProcessor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) error {
	info, err := p.GetInfo(ctx, videoPath)
	if err != nil {
		return err
	}
	if opts.Stream < 0 || opts.Stream >= len(info.SubtitleStreams) {
		return fmt.Errorf(
			"%w: stream %d requested, %d available",
			ErrNoSubtitleStream,
			opts.Stream,
			len(info.SubtitleStreams),
		)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeggo.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Stream),
		"c:s": "ass",
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	err = ffmpeggo.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(p.bin.FFmpeg).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
	}

	return nil
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".3gp":  true,
	}
	return videoExts[ext]
}
