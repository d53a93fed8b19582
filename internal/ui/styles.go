// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the terminal styles shared by the usage text and the
// submission previews, matching the colour roles of the historical tool.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Heading marks section headers and separator rules (historically red).
	Heading = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	// Banner marks submission status messages (historically bold yellow).
	Banner = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	// Option marks option names in the usage text (historically bold blue).
	Option = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// Rule renders the 80-column separator used around the input preview.
func Rule() string {
	return Heading.Render(strings.Repeat("-", 80))
}
