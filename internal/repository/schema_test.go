package repository_test

import (
	"testing"

	"amal-cms/internal/repository"
)

// checkSchema verifies the closure/column alignment the generic repository
// relies on: Values matches Columns, Dest matches id + Columns.
func checkSchema[T any](t *testing.T, s repository.Schema[T]) {
	t.Helper()
	e := new(T)
	if got, want := len(s.Values(e)), len(s.Columns); got != want {
		t.Errorf("%s: Values len=%d, Columns len=%d", s.Table, got, want)
	}
	if got, want := len(s.Dest(e)), len(s.Columns)+1; got != want {
		t.Errorf("%s: Dest len=%d, want %d (id + columns)", s.Table, got, want)
	}
	if s.SlugEn == "" || s.SlugAr == "" {
		t.Errorf("%s: slug columns not set", s.Table)
	}
	if len(s.SearchColumns) == 0 {
		t.Errorf("%s: no search columns", s.Table)
	}
}

func TestSchemaAlignment(t *testing.T) {
	checkSchema(t, repository.Programs)
	checkSchema(t, repository.Projects)
	checkSchema(t, repository.Activities)
	checkSchema(t, repository.Publications)
	checkSchema(t, repository.Images)
	checkSchema(t, repository.SuccessStories)
	checkSchema(t, repository.FAQs)
	checkSchema(t, repository.Jobs)
}

func TestSchemaUpdatable(t *testing.T) {
	s := repository.Publications

	for _, col := range []string{"title_en", "abstract_ar", "file_url", "tags_en", "category_id"} {
		if !s.Updatable(col) {
			t.Errorf("Updatable(%q)=false, want true", col)
		}
	}
	// Counters, timestamps, and the publish pair never go through Update.
	for _, col := range []string{
		"downloads", "page_views", "created_at", "updated_at",
		"is_published", "published_at", "no_such_column",
	} {
		if s.Updatable(col) {
			t.Errorf("Updatable(%q)=true, want false", col)
		}
	}
}

func TestSchemaOrderable(t *testing.T) {
	s := repository.Programs
	if !s.Orderable("id") || !s.Orderable("created_at") || !s.Orderable("title_en") {
		t.Error("expected id, created_at, title_en to be orderable")
	}
	if s.Orderable("created_at; DROP TABLE programs") {
		t.Error("arbitrary ORDER BY input accepted")
	}
}

func TestSchemaParents(t *testing.T) {
	if !repository.Images.HasParent(repository.ParentActivity) {
		t.Error("images should carry activity_id")
	}
	if repository.Programs.HasParent(repository.ParentProgram) {
		t.Error("programs should not carry a parent key")
	}
}
