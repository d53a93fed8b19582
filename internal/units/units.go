// SPDX-License-Identifier: AGPL-3.0-or-later

// Package units converts human-readable storage sizes to megabytes and back.
// Megabytes are the canonical unit everywhere in gsub; display formatting
// uses gigabytes only for clean multiples of 1000.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSize reports a size string that could not be parsed.
var ErrMalformedSize = errors.New("units: malformed size")

// ParseMB converts a size string such as "48GB", "14400MB" or "14400" to a
// megabyte count. Empty or all-whitespace input returns def unchanged.
func ParseMB(value string, def int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def, nil
	}
	upper := strings.ToUpper(trimmed)
	suffixes := []struct {
		unit       string
		multiplier int
	}{
		{"MB", 1},
		{"GB", 1000},
	}
	for _, s := range suffixes {
		if !strings.HasSuffix(upper, s.unit) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(upper, s.unit))
		if err != nil {
			return 0, fmt.Errorf("%w: invalid numeric value for %s: %q", ErrMalformedSize, s.unit, value)
		}
		return n * s.multiplier, nil
	}
	n, err := strconv.Atoi(upper)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSize, value)
	}
	return n, nil
}

// FormatMB renders a megabyte count the way the preset file and the PBS
// directives expect it: whole gigabytes when possible, megabytes otherwise.
func FormatMB(value int) string {
	if value%1000 == 0 {
		return strconv.Itoa(value/1000) + "GB"
	}
	return strconv.Itoa(value) + "MB"
}
