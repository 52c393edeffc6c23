package chat

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

const sizeBase = 1024

// FormatFileSize renders a byte count with binary units, e.g. 1536 -> "1.5 KB".
// decimals sets the precision; an all-zero fraction is dropped ("1 KB"), any
// other fraction is kept as is ("1.50 KB"). Zero and negative sizes render
// as "0 B". Units stop at TB.
func FormatFileSize(bytes int64, decimals int) string {
	if bytes <= 0 {
		return "0 B"
	}
	if decimals < 0 {
		decimals = 0
	}

	unit := 0
	for v := bytes; v >= sizeBase && unit < len(sizeUnits)-1; v /= sizeBase {
		unit++
	}

	value := float64(bytes) / math.Pow(sizeBase, float64(unit))
	formatted := strconv.FormatFloat(value, 'f', decimals, 64)

	if intPart, frac, ok := strings.Cut(formatted, "."); ok && strings.Trim(frac, "0") == "" {
		formatted = intPart
	}
	return formatted + " " + sizeUnits[unit]
}
