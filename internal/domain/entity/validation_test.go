package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestRequireBilingual(t *testing.T) {
	tests := []struct {
		name      string
		en, ar    string
		wantField string
	}{
		{"both present", "Clean Water", "مياه نظيفة", ""},
		{"missing english", "", "مياه نظيفة", "title_en"},
		{"missing arabic", "Clean Water", "", "title_ar"},
		{"whitespace only arabic", "Clean Water", "   ", "title_ar"},
		{"english too long", strings.Repeat("x", 501), "ok", "title_en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireBilingual("title", tt.en, tt.ar)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("RequireBilingual err=%v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("RequireBilingual err=%v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("field=%q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"simple", "clean-water", false},
		{"arabic script", "مياه-نظيفة", false},
		{"empty", "", true},
		{"with space", "clean water", true},
		{"with slash", "clean/water", true},
		{"too long", strings.Repeat("a", 161), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug("slug_en", tt.slug)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSlug(%q) err=%v, wantErr=%v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestProgramValidate(t *testing.T) {
	p := &Program{
		TitleEn: "Clean Water",
		TitleAr: "مياه نظيفة",
	}
	p.SlugEn = "clean-water"
	p.SlugAr = "مياه-نظيفة"
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate err=%v", err)
	}

	p.SlugAr = ""
	if err := p.Validate(); err == nil {
		t.Fatal("Validate accepted missing arabic slug")
	}
}

func TestPublicationValidateRequiresFileURL(t *testing.T) {
	p := &Publication{
		TitleEn: "Annual Report",
		TitleAr: "التقرير السنوي",
	}
	p.SlugEn = "annual-report"
	p.SlugAr = "التقرير-السنوي"

	var verr *ValidationError
	if err := p.Validate(); !errors.As(err, &verr) || verr.Field != "file_url" {
		t.Fatalf("Validate err=%v, want file_url validation error", err)
	}

	p.FileURL = "https://cdn.example.org/annual-report.pdf"
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
}
