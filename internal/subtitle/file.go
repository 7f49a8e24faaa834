package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// reads and parses an .ass/.ssa file. only I/O problems are errors.
func LoadFile(path string) (Document, ParseReport, error) {
	if GetFormatFromExtension(path) != FormatASS {
		return Document{}, ParseReport{}, fmt.Errorf(
			"%w: %s",
			ErrUnsupportedFormat,
			filepath.Ext(path),
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, ParseReport{}, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	doc, report := ParseWithReport(string(data))
	return doc, report, nil
}

// writes ASS or SRT depending on the extension of path
func SaveFile(d Document, path string) error {
	var content string
	switch GetFormatFromExtension(path) {
	case FormatASS:
		content = Serialize(d)
	case FormatSRT:
		content = ExportSRT(d)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension, empty when unknown
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return ""
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	default:
		return ".ass"
	}
}
