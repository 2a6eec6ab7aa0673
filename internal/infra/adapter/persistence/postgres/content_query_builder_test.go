package postgres_test

import (
	"errors"
	"testing"
	"time"

	"amal-cms/internal/domain/entity"
	pg "amal-cms/internal/infra/adapter/persistence/postgres"
	"amal-cms/internal/repository"

	"github.com/google/go-cmp/cmp"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestListWhere(t *testing.T) {
	qb := pg.NewContentQueryBuilder(&repository.Projects)

	tests := []struct {
		name       string
		filter     repository.ListFilter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "no filters",
			filter:     repository.ListFilter{},
			wantClause: "",
			wantArgs:   nil,
		},
		{
			name:       "published only",
			filter:     repository.ListFilter{Published: boolPtr(true)},
			wantClause: "WHERE is_published = $1",
			wantArgs:   []any{true},
		},
		{
			name: "published and parent filters combine with AND",
			filter: repository.ListFilter{
				Published:  boolPtr(false),
				ProgramID:  int64Ptr(5),
				CategoryID: int64Ptr(9),
			},
			wantClause: "WHERE is_published = $1 AND program_id = $2 AND category_id = $3",
			wantArgs:   []any{false, int64(5), int64(9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args, err := qb.ListWhere(tt.filter)
			if err != nil {
				t.Fatalf("ListWhere err=%v", err)
			}
			if clause != tt.wantClause {
				t.Errorf("clause=%q, want %q", clause, tt.wantClause)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListWhereRejectsForeignParent(t *testing.T) {
	// Projects carry program_id and category_id, not activity_id.
	qb := pg.NewContentQueryBuilder(&repository.Projects)

	_, _, err := qb.ListWhere(repository.ListFilter{ActivityID: int64Ptr(3)})
	var verr *entity.ValidationError
	if !errors.As(err, &verr) || verr.Field != "activity_id" {
		t.Fatalf("err=%v, want ValidationError on activity_id", err)
	}
}

func TestOrderClause(t *testing.T) {
	qb := pg.NewContentQueryBuilder(&repository.Programs)

	tests := []struct {
		name    string
		filter  repository.ListFilter
		want    string
		wantErr bool
	}{
		{"defaults", repository.ListFilter{}, "created_at DESC", false},
		{"explicit asc", repository.ListFilter{OrderBy: "title_en", Order: "asc"}, "title_en ASC", false},
		{"id desc", repository.ListFilter{OrderBy: "id", Order: "desc"}, "id DESC", false},
		{"unknown column", repository.ListFilter{OrderBy: "1; DROP TABLE programs"}, "", true},
		{"bad direction", repository.ListFilter{Order: "sideways"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qb.OrderClause(tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("clause=%q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchWhere(t *testing.T) {
	qb := pg.NewContentQueryBuilder(&repository.Programs)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clause, args := qb.SearchWhere([]string{"water", "well"}, repository.SearchFilter{
		PublishedOnly: true,
		From:          &from,
	})

	want := "WHERE (title_en ILIKE $1 OR title_ar ILIKE $1 OR description_en ILIKE $1 OR description_ar ILIKE $1)" +
		" AND (title_en ILIKE $2 OR title_ar ILIKE $2 OR description_en ILIKE $2 OR description_ar ILIKE $2)" +
		" AND is_published = TRUE AND published_at >= $3"
	if clause != want {
		t.Errorf("clause=%q\nwant   %q", clause, want)
	}
	wantArgs := []any{"%water%", "%well%", from}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchWhereEscapesWildcards(t *testing.T) {
	qb := pg.NewContentQueryBuilder(&repository.Programs)

	_, args := qb.SearchWhere([]string{"100%"}, repository.SearchFilter{})
	if args[0] != `%100\%%` {
		t.Fatalf("pattern=%q, want escaped wildcard", args[0])
	}
}

func TestSlugWhere(t *testing.T) {
	programs := pg.NewContentQueryBuilder(&repository.Programs)
	want := "WHERE (slug_en = $1 OR slug_ar = $1) AND is_published = TRUE"
	if got := programs.SlugWhere(); got != want {
		t.Errorf("SlugWhere()=%q, want %q", got, want)
	}

	// Images additionally gate on the gallery flag.
	images := pg.NewContentQueryBuilder(&repository.Images)
	want += " AND is_public = TRUE"
	if got := images.SlugWhere(); got != want {
		t.Errorf("SlugWhere()=%q, want %q", got, want)
	}
}

func TestTagsWhere(t *testing.T) {
	qb := pg.NewContentQueryBuilder(&repository.Programs)

	if got, want := qb.TagsWhere(false), "WHERE (tags_en && $1 OR tags_ar && $1)"; got != want {
		t.Errorf("TagsWhere(false)=%q, want %q", got, want)
	}
	if got := qb.TagsWhere(true); got != "WHERE (tags_en && $1 OR tags_ar && $1) AND is_published = TRUE" {
		t.Errorf("TagsWhere(true)=%q", got)
	}
}
