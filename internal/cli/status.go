package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agiantii/bcoj/internal/judge"
)

var (
	acceptedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	rejectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	internalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
)

// StatusBadge renders a judging verdict with its conventional color.
func StatusBadge(status judge.Status) string {
	switch {
	case status == judge.StatusAccepted:
		return acceptedStyle.Render(string(status))
	case status.InProgress():
		return inProgressStyle.Render(string(status))
	case status == judge.StatusInternalError:
		return internalStyle.Render(string(status))
	default:
		return rejectedStyle.Render(string(status))
	}
}
