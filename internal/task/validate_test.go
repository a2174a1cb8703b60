package task

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValid bool
		wantPath  string
	}{
		{
			name:      "empty content",
			content:   "",
			wantValid: true,
		},
		{
			name:      "null",
			content:   "null",
			wantValid: true,
		},
		{
			name:      "valid file",
			content:   `[{"id": 1, "description": "buy milk", "status": "todo", "created_at": "c", "updated_at": "u"}]`,
			wantValid: true,
		},
		{
			name:      "legacy update_at key",
			content:   `[{"id": 1, "description": "buy milk", "status": "done", "created_at": "c", "update_at": "u"}]`,
			wantValid: true,
		},
		{
			name:      "unknown fields allowed",
			content:   `[{"id": 1, "description": "x", "status": "todo", "created_at": "c", "updated_at": "u", "tags": ["a"]}]`,
			wantValid: true,
		},
		{
			name:      "syntax error",
			content:   `[{"id": 1`,
			wantValid: false,
		},
		{
			name:      "not an array",
			content:   `{"tasks": []}`,
			wantValid: false,
		},
		{
			name:      "invalid status",
			content:   `[{"id": 1, "description": "x", "status": "blocked", "created_at": "c", "updated_at": "u"}]`,
			wantValid: false,
			wantPath:  "[0].status",
		},
		{
			name:      "non-positive id",
			content:   `[{"id": 0, "description": "x", "status": "todo", "created_at": "c", "updated_at": "u"}]`,
			wantValid: false,
			wantPath:  "[0].id",
		},
		{
			name:      "empty description",
			content:   `[{"id": 1, "description": "", "status": "todo", "created_at": "c", "updated_at": "u"}]`,
			wantValid: false,
			wantPath:  "[0].description",
		},
		{
			name: "duplicate ids",
			content: `[
  {"id": 1, "description": "a", "status": "todo", "created_at": "c", "updated_at": "u"},
  {"id": 1, "description": "b", "status": "todo", "created_at": "c", "updated_at": "u"}
]`,
			wantValid: false,
			wantPath:  "[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.content))
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantValid && len(result.Errors) != 0 {
				t.Errorf("expected no errors, got %v", result.Errors)
			}
			if !tt.wantValid && len(result.Errors) == 0 {
				t.Error("expected errors for invalid content")
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, err := range result.Errors {
				if strings.HasPrefix(err.Error(), tt.wantPath) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidateCountsTasks(t *testing.T) {
	result := Validate([]byte(`[
  {"id": 1, "description": "a", "status": "todo", "created_at": "c", "updated_at": "u"},
  {"id": 2, "description": "b", "status": "done", "created_at": "c", "updated_at": "u"}
]`))
	if !result.Valid {
		t.Fatalf("expected valid, got %v", result.Errors)
	}
	if result.Tasks != 2 {
		t.Errorf("Tasks: got %d, want 2", result.Tasks)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/status", "[0].status"},
		{"#/12/id", "[12].id"},
		{"/0/a~1b", "[0].a/b"},
		{"/0/a~0b", "[0].a~b"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
