package utils

import "fmt"

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// FormatFileSize converts a byte length into a human-readable size string with
// one decimal place above the byte range.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes < kilobyte {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	if sizeBytes < megabyte {
		return fmt.Sprintf("%.1f KB", float64(sizeBytes)/kilobyte)
	}
	return fmt.Sprintf("%.1f MB", float64(sizeBytes)/megabyte)
}
