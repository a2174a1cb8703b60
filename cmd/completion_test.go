package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompletionCommandOutputsScripts(t *testing.T) {
	tests := []struct {
		name    string
		shell   string
		needle  string
		wantErr bool
	}{
		{
			name:   "bash",
			shell:  "bash",
			needle: "# task-cli bash completion",
		},
		{
			name:   "zsh",
			shell:  "zsh",
			needle: "#compdef task-cli",
		},
		{
			name:   "fish",
			shell:  "fish",
			needle: "# task-cli fish completion",
		},
		{
			name:    "unsupported shell",
			shell:   "powershell",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := completionCommand(&buf, []string{tt.shell})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("completionCommand() error = %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, tt.needle) {
				t.Errorf("output missing %q:\n%s", tt.needle, out)
			}
			for _, name := range []string{"mark-in-progress", "in-progress"} {
				if !strings.Contains(out, name) {
					t.Errorf("output missing %q", name)
				}
			}
		})
	}
}

func TestCompletionCommandRequiresShell(t *testing.T) {
	var buf bytes.Buffer
	if err := completionCommand(&buf, nil); err == nil {
		t.Error("expected usage error without a shell argument")
	}
}
