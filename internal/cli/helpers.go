package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/fansub/internal/subtitle"
)

var zeroTimestamp = regexp.MustCompile(`^0+:0+:0+\.0+$`)

// loads an ASS file and logs anything the parser dropped
func loadScript(path string) (subtitle.Document, error) {
	doc, report, err := subtitle.LoadFile(path)
	if err != nil {
		return subtitle.Document{}, err
	}

	for _, d := range report.Dropped {
		logger.Warnw("Dropped malformed line",
			"line", d.Line,
			"kind", d.Kind,
			"fields", d.Fields,
		)
	}

	logger.Debugw("Parsed subtitle file",
		"path", path,
		"styles", len(doc.Styles),
		"events", len(doc.Events),
	)
	return doc, nil
}

func saveScript(doc subtitle.Document, path string) error {
	if err := subtitle.SaveFile(doc, path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	absOutput, _ := filepath.Abs(path)
	logger.Infow("Wrote subtitle file", "path", absOutput)
	return nil
}

// the -o flag, or inputPath itself when unset
func outputOrInPlace(outputPath, inputPath string) string {
	if outputPath != "" {
		return outputPath
	}
	return inputPath
}

// swaps the extension of path
func withExtension(path string, format subtitle.Format) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + subtitle.GetExtensionForFormat(format)
}

// reads an offset as a Go duration ("1.5s", "-200ms") or signed milliseconds
func parseOffset(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty offset")
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: use milliseconds or a duration like 1.5s", s)
	}
	return d.Milliseconds(), nil
}

// reads a point in time as an ASS timestamp, a duration or milliseconds
func parseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 2 {
		if ms := subtitle.ParseASSTime(s); ms > 0 || zeroTimestamp.MatchString(s) {
			return ms, nil
		}
		return 0, fmt.Errorf("invalid timestamp %q: expected H:MM:SS.CC", s)
	}
	ms, err := parseOffset(s)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("timestamp %q must not be negative", s)
	}
	return ms, nil
}

// converts 1-based event numbers to ids
func eventIDs(doc subtitle.Document, numbers []int) ([]string, error) {
	ids := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > len(doc.Events) {
			return nil, fmt.Errorf(
				"event %d out of range (1-%d)",
				n,
				len(doc.Events),
			)
		}
		ids = append(ids, doc.Events[n-1].ID)
	}
	return ids, nil
}
