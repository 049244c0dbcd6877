package utils

import (
	"fmt"
	"strings"
)

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb"}

// FormatFileSize renders a byte count for the report summary, e.g. "512b", "1.5kb", "12mb".
func FormatFileSize(byteCount int64) string {
	if byteCount < 1024 {
		if byteCount < 0 {
			byteCount = 0
		}
		return fmt.Sprintf("%d%s", byteCount, sizeUnits[0])
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= 1024 && unitIndex < len(sizeUnits)-1 {
		scaled /= 1024
		unitIndex++
	}
	if scaled >= 10 {
		return fmt.Sprintf("%.0f%s", scaled, sizeUnits[unitIndex])
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", scaled), ".0") + sizeUnits[unitIndex]
}
