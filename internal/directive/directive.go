// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directive edits keyword-prefixed lines in submission scripts and
// Gaussian input files.
//
// Both file kinds are treated as a flat list of lines. A directive is
// recognised by a case-insensitive prefix match on the trimmed line; the
// first match is replaced in place, and an absent directive is inserted at a
// keyword-specific position. Callers apply upserts one keyword at a time and
// in a fixed order, so a later fallback index accounts for the insertions
// made by earlier calls.
package directive

import (
	"fmt"
	"os"
	"strings"
)

// Append marks a directive that is appended at the end when absent instead
// of being inserted at a fixed index.
const Append = -1

// Upsert replaces the first line whose trimmed text starts with keyword
// (case-insensitive) by replacement. When no line matches, replacement is
// inserted at fallback, or appended when fallback is Append or is past the
// end of the list. The input slice is never modified.
func Upsert(lines []string, keyword, replacement string, fallback int) []string {
	lowered := strings.ToLower(keyword)
	out := make([]string, len(lines))
	copy(out, lines)
	for i, line := range out {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), lowered) {
			out[i] = replacement
			return out
		}
	}
	if fallback == Append || fallback > len(out) {
		return append(out, replacement)
	}
	out = append(out, "")
	copy(out[fallback+1:], out[fallback:])
	out[fallback] = replacement
	return out
}

// Remove drops every line whose trimmed text starts with keyword,
// case-insensitive.
func Remove(lines []string, keyword string) []string {
	lowered := strings.ToLower(keyword)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), lowered) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ReadLines loads path and splits it into lines without trailing newlines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// WriteLines rewrites path from lines, newline-terminated, keeping perm.
func WriteLines(path string, lines []string, perm os.FileMode) error {
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
