package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Size unit multipliers for suffixed size strings.
const (
	Kilobyte int64 = 1024
	Megabyte       = 1024 * Kilobyte
	Gigabyte       = 1024 * Megabyte
)

// ParseSize converts a suffixed size string such as "100M", "2G" or "512K"
// into a byte count. A bare number is interpreted as bytes. The suffix is
// case-insensitive.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("size must not be empty")
	}

	multiplier := int64(1)
	switch strings.ToUpper(s[len(s)-1:]) {
	case "K":
		multiplier = Kilobyte
		s = s[:len(s)-1]
	case "M":
		multiplier = Megabyte
		s = s[:len(s)-1]
	case "G":
		multiplier = Gigabyte
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("size must not be negative (got %d)", n)
	}

	return n * multiplier, nil
}

// FormatSize renders a byte count using the largest suffix that divides it
// cleanly enough for display (one decimal place).
func FormatSize(bytes int64) string {
	switch {
	case bytes >= Gigabyte:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(Gigabyte))
	case bytes >= Megabyte:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(Megabyte))
	case bytes >= Kilobyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(Kilobyte))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
