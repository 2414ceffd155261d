package service

import (
	"errors"
	"strings"
	"testing"
)

func TestCleanEmail(t *testing.T) {
	v := NewFieldValidator("KR")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercases and trims", input: "  Kim.Minji@Samsung.COM ", want: "kim.minji@samsung.com"},
		{name: "plus addressing", input: "dev+leads@example.co.kr", want: "dev+leads@example.co.kr"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "missing at sign", input: "not-an-email", wantErr: true},
		{name: "missing tld", input: "user@localhost", wantErr: true},
		{name: "leading hyphen label", input: "user@-bad.com", wantErr: true},
		{name: "empty label", input: "user@double..dot.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.CleanEmail(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CleanEmail(%q) expected error, got %q", tt.input, got)
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("error %v is not ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanEmail(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("CleanEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanPhone(t *testing.T) {
	v := NewFieldValidator("KR")

	t.Run("nil stays nil", func(t *testing.T) {
		got, err := v.CleanPhone(nil)
		if err != nil || got != nil {
			t.Fatalf("CleanPhone(nil) = %v, %v", got, err)
		}
	})

	t.Run("blank stays nil", func(t *testing.T) {
		blank := "   "
		got, err := v.CleanPhone(&blank)
		if err != nil || got != nil {
			t.Fatalf("CleanPhone(blank) = %v, %v", got, err)
		}
	})

	t.Run("national number formatted to e164", func(t *testing.T) {
		raw := "010-1234-5678"
		got, err := v.CleanPhone(&raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || *got != "+821012345678" {
			t.Fatalf("CleanPhone(%q) = %v, want +821012345678", raw, got)
		}
	})

	t.Run("international number keeps region", func(t *testing.T) {
		raw := "+49 30 901820"
		got, err := v.CleanPhone(&raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || !strings.HasPrefix(*got, "+4930") {
			t.Fatalf("CleanPhone(%q) = %v", raw, got)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		raw := "call me maybe"
		if _, err := v.CleanPhone(&raw); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestRequireText(t *testing.T) {
	v := NewFieldValidator("")
	if v.DefaultRegion != "KR" {
		t.Fatalf("empty region should default to KR, got %q", v.DefaultRegion)
	}

	if _, err := v.RequireText("company_name", "  ", 100); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank required field should fail, got %v", err)
	}
	if _, err := v.RequireText("company_name", strings.Repeat("a", 101), 100); !errors.Is(err, ErrValidation) {
		t.Fatalf("overlong required field should fail, got %v", err)
	}
	got, err := v.RequireText("company_name", "  GLEC Inc.  ", 100)
	if err != nil || got != "GLEC Inc." {
		t.Fatalf("RequireText = %q, %v", got, err)
	}
}

func TestOptionalText(t *testing.T) {
	v := NewFieldValidator("KR")

	if got := v.OptionalText(nil, 50); got != nil {
		t.Fatalf("nil input should stay nil, got %v", got)
	}
	blank := " \t "
	if got := v.OptionalText(&blank, 50); got != nil {
		t.Fatalf("blank input should become nil, got %q", *got)
	}
	long := strings.Repeat("x", 60)
	got := v.OptionalText(&long, 50)
	if got == nil || len(*got) != 50 {
		t.Fatalf("overlong optional text should be truncated to 50, got %v", got)
	}
	keep := "  fine  "
	got = v.OptionalText(&keep, 50)
	if got == nil || *got != "fine" {
		t.Fatalf("OptionalText trim = %v", got)
	}
}
