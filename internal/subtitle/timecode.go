package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// converts an ASS timestamp (H:MM:SS.CC) to milliseconds.
// anything malformed yields 0. a three digit fraction is read as
// milliseconds, which is what FormatASSTime emits for off-grid values.
func ParseASSTime(ts string) int64 {
	ts = strings.TrimSpace(ts)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0
	}

	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0
	}

	// split seconds and fraction
	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 {
		return 0
	}

	seconds, err := strconv.ParseInt(secParts[0], 10, 64)
	if err != nil {
		return 0
	}

	frac, err := strconv.ParseInt(secParts[1], 10, 64)
	if err != nil {
		return 0
	}

	total := (hours*3600 + minutes*60 + seconds) * 1000
	if len(secParts[1]) == 3 {
		return total + frac
	}
	return total + frac*10
}

// formats milliseconds as H:MM:SS.CC. negative values format as zero.
func FormatASSTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	if millis%10 != 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, millis/10)
}

// formats milliseconds as HH:MM:SS,mmm
func FormatSRTTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
