package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMarks(t *testing.T) {
	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"SuccessMark", SuccessMark, SymbolSuccess},
		{"StepMark", StepMark, SymbolStep},
		{"SkipMark", SkipMark, SymbolSkip},
		{"ErrorMark", ErrorMark, SymbolError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi.Strip(tt.fn()); got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestBranch(t *testing.T) {
	got := ansi.Strip(Branch("feature/y"))
	if !strings.Contains(got, "feature/y") {
		t.Errorf("Branch() = %q, want to contain branch name", got)
	}
}
