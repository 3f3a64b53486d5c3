// Package styles provides the lipgloss styles used for status lines.
package styles

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary = lipgloss.Color("62")
	Success = lipgloss.Color("82")
	Warning = lipgloss.Color("214")
	Error   = lipgloss.Color("196")
	Muted   = lipgloss.Color("240")
)

var (
	// BranchStyle highlights branch names in status lines
	BranchStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Status symbols
const (
	SymbolSuccess = "✓"
	SymbolStep    = "→"
	SymbolSkip    = "•"
	SymbolError   = "✗"
)

// Branch renders a branch name.
func Branch(name string) string {
	return BranchStyle.Render(name)
}

// SuccessMark renders the success symbol.
func SuccessMark() string {
	return SuccessStyle.Render(SymbolSuccess)
}

// StepMark renders the progress symbol.
func StepMark() string {
	return MutedStyle.Render(SymbolStep)
}

// SkipMark renders the symbol for a step that was not needed.
func SkipMark() string {
	return WarningStyle.Render(SymbolSkip)
}

// ErrorMark renders the failure symbol.
func ErrorMark() string {
	return ErrorStyle.Render(SymbolError)
}
