package errors

import (
	"fmt"
	"testing"
)

func TestDiagnosticFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		d    Diagnostic
	}{
		{
			name: "message only",
			d:    Diagnostic{Code: "mei-required-attribute-missing", Message: "missing attribute"},
			want: "[mei-required-attribute-missing] missing attribute",
		},
		{
			name: "with path",
			d:    Diagnostic{Code: "mei-required-attribute-missing", Message: "missing attribute", Path: "/mei/music[1]"},
			want: "[mei-required-attribute-missing] missing attribute at /mei/music[1]",
		},
		{
			name: "with position only",
			d:    Diagnostic{Code: "mei-parse-error", Message: "bad token", Line: 3, Column: 9},
			want: "[mei-parse-error] bad token at line 3, column 9",
		},
		{
			name: "with path and position",
			d: Diagnostic{
				Code:    "mei-attribute-value-invalid",
				Message: "bad duration",
				Path:    "/mei/music[1]/note[2]",
				Line:    7,
				Column:  12,
			},
			want: "[mei-attribute-value-invalid] bad duration at /mei/music[1]/note[2] (line 7, column 12)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	d := New(ErrNoRoot, "missing root", "/")
	if d.Code != string(ErrNoRoot) {
		t.Fatalf("Code = %q, want %q", d.Code, ErrNoRoot)
	}
	if d.Message != "missing root" {
		t.Fatalf("Message = %q, want %q", d.Message, "missing root")
	}
	if d.Path != "/" {
		t.Fatalf("Path = %q, want %q", d.Path, "/")
	}
}

func TestNewf(t *testing.T) {
	d := Newf(ErrRequiredAttributeMissing, "/mei", "attribute %s is required", "target")
	if d.Code != string(ErrRequiredAttributeMissing) {
		t.Fatalf("Code = %q, want %q", d.Code, ErrRequiredAttributeMissing)
	}
	if d.Message != "attribute target is required" {
		t.Fatalf("Message = %q, want %q", d.Message, "attribute target is required")
	}
}

func TestDiagnosticListError(t *testing.T) {
	one := Diagnostic{Code: "mei-parse-error", Message: "bad token"}
	two := Diagnostic{Code: "mei-no-root", Message: "no root element"}

	tests := []struct {
		name string
		want string
		list DiagnosticList
	}{
		{
			name: "empty",
			list: DiagnosticList{},
			want: "no diagnostics",
		},
		{
			name: "single",
			list: DiagnosticList{one},
			want: "[mei-parse-error] bad token",
		},
		{
			name: "multiple",
			list: DiagnosticList{one, two},
			want: "[mei-parse-error] bad token (and 1 more)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsDiagnostics(t *testing.T) {
	list := DiagnosticList{
		{Code: "mei-parse-error", Message: "bad token"},
		{Code: "mei-no-root", Message: "no root element"},
	}
	wrapped := fmt.Errorf("validation failed: %w", list)

	got, ok := AsDiagnostics(wrapped)
	if !ok {
		t.Fatalf("AsDiagnostics() ok = false, want true")
	}
	if len(got) != 2 {
		t.Fatalf("AsDiagnostics() len = %d, want 2", len(got))
	}
	if got[0].Code != "mei-parse-error" || got[1].Code != "mei-no-root" {
		t.Fatalf("AsDiagnostics() codes = %v, want [mei-parse-error mei-no-root]", []string{got[0].Code, got[1].Code})
	}
}
