package entity

import (
	"fmt"
	"strings"
)

// maxSlugLength bounds slug columns; matches the VARCHAR width in the schema.
const maxSlugLength = 160

// maxTitleLength bounds display text fields to keep admin forms honest.
const maxTitleLength = 500

// RequireBilingual checks that both locale variants of a required text field
// are present. The field name is reported without a locale suffix.
func RequireBilingual(field, en, ar string) error {
	if strings.TrimSpace(en) == "" {
		return &ValidationError{Field: field + "_en", Message: "is required"}
	}
	if strings.TrimSpace(ar) == "" {
		return &ValidationError{Field: field + "_ar", Message: "is required"}
	}
	if len(en) > maxTitleLength {
		return &ValidationError{
			Field:   field + "_en",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	if len(ar) > maxTitleLength {
		return &ValidationError{
			Field:   field + "_ar",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}

// ValidateSlug checks that a slug is usable in a URL path segment: non-empty,
// bounded, and free of whitespace and slashes. Arabic slugs keep their native
// script, so no ASCII-only restriction is applied.
func ValidateSlug(field, slug string) error {
	if slug == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if len(slug) > maxSlugLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxSlugLength),
		}
	}
	if strings.ContainsAny(slug, " \t\n/") {
		return &ValidationError{Field: field, Message: "must not contain whitespace or slashes"}
	}
	return nil
}

// validateCommon applies the shared checks every content type needs.
func (c *Content) validateCommon() error {
	if err := ValidateSlug("slug_en", c.SlugEn); err != nil {
		return err
	}
	return ValidateSlug("slug_ar", c.SlugAr)
}
