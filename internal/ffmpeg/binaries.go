package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var ErrNotFound = errors.New("ffmpeg binaries not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

// resolves ffmpeg and ffprobe. explicit paths win, then $PATH.
func Locate(ffmpegPath, ffprobePath string) (BinaryPaths, error) {
	if ffmpegPath == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			ffmpegPath = found
		}
	}
	if ffprobePath == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobePath = found
		}
	}

	if ffmpegPath == "" || ffprobePath == "" {
		return BinaryPaths{}, fmt.Errorf(
			"%w: install ffmpeg or set FANSUB_FFMPEG_PATH and FANSUB_FFPROBE_PATH",
			ErrNotFound,
		)
	}

	if !binariesExist(ffmpegPath, ffprobePath) {
		return BinaryPaths{}, fmt.Errorf(
			"%w: %s, %s",
			ErrNotFound,
			ffmpegPath,
			ffprobePath,
		)
	}

	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func binariesExist(paths ...string) bool {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}
