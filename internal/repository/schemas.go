package repository

import "amal-cms/internal/domain/entity"

// withCommon appends the shared content columns to a type's own columns.
// Values and Dest closures follow the same ordering: type columns first,
// then entity.CommonValues / entity.CommonDest.
func withCommon(cols ...string) []string {
	return append(cols, entity.CommonColumns...)
}

// Programs is the schema for the programs table.
var Programs = Schema[entity.Program]{
	Table: "programs",
	Columns: withCommon(
		"title_en", "title_ar", "description_en", "description_ar",
		"tags_en", "tags_ar", "keywords_en", "keywords_ar",
	),
	Values: func(p *entity.Program) []any {
		return append([]any{
			p.TitleEn, p.TitleAr, p.DescriptionEn, p.DescriptionAr,
			p.TagsEn, p.TagsAr, p.KeywordsEn, p.KeywordsAr,
		}, p.CommonValues()...)
	},
	Dest: func(p *entity.Program) []any {
		return append([]any{
			&p.ID,
			&p.TitleEn, &p.TitleAr, &p.DescriptionEn, &p.DescriptionAr,
			&p.TagsEn, &p.TagsAr, &p.KeywordsEn, &p.KeywordsAr,
		}, p.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	SearchColumns: []string{"title_en", "title_ar", "description_en", "description_ar"},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar", "keywords_en", "keywords_ar"},
}

// Projects is the schema for the projects table.
var Projects = Schema[entity.Project]{
	Table: "projects",
	Columns: withCommon(
		"title_en", "title_ar", "description_en", "description_ar",
		"program_id", "category_id", "tags_en", "tags_ar",
	),
	Values: func(p *entity.Project) []any {
		return append([]any{
			p.TitleEn, p.TitleAr, p.DescriptionEn, p.DescriptionAr,
			p.ProgramID, p.CategoryID, p.TagsEn, p.TagsAr,
		}, p.CommonValues()...)
	},
	Dest: func(p *entity.Project) []any {
		return append([]any{
			&p.ID,
			&p.TitleEn, &p.TitleAr, &p.DescriptionEn, &p.DescriptionAr,
			&p.ProgramID, &p.CategoryID, &p.TagsEn, &p.TagsAr,
		}, p.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	SearchColumns: []string{"title_en", "title_ar", "description_en", "description_ar"},
	Parents:       []Parent{ParentProgram, ParentCategory},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar"},
}

// Activities is the schema for the activities table.
var Activities = Schema[entity.Activity]{
	Table: "activities",
	Columns: withCommon(
		"title_en", "title_ar", "description_en", "description_ar",
		"program_id", "project_id", "tags_en", "tags_ar",
	),
	Values: func(a *entity.Activity) []any {
		return append([]any{
			a.TitleEn, a.TitleAr, a.DescriptionEn, a.DescriptionAr,
			a.ProgramID, a.ProjectID, a.TagsEn, a.TagsAr,
		}, a.CommonValues()...)
	},
	Dest: func(a *entity.Activity) []any {
		return append([]any{
			&a.ID,
			&a.TitleEn, &a.TitleAr, &a.DescriptionEn, &a.DescriptionAr,
			&a.ProgramID, &a.ProjectID, &a.TagsEn, &a.TagsAr,
		}, a.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	SearchColumns: []string{"title_en", "title_ar", "description_en", "description_ar"},
	Parents:       []Parent{ParentProgram, ParentProject},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar"},
}

// Publications is the schema for the publications table. It is the only
// schema with a downloads counter.
var Publications = Schema[entity.Publication]{
	Table: "publications",
	Columns: withCommon(
		"title_en", "title_ar", "abstract_en", "abstract_ar",
		"file_url", "category_id", "downloads",
		"tags_en", "tags_ar", "keywords_en", "keywords_ar",
	),
	Values: func(p *entity.Publication) []any {
		return append([]any{
			p.TitleEn, p.TitleAr, p.AbstractEn, p.AbstractAr,
			p.FileURL, p.CategoryID, p.Downloads,
			p.TagsEn, p.TagsAr, p.KeywordsEn, p.KeywordsAr,
		}, p.CommonValues()...)
	},
	Dest: func(p *entity.Publication) []any {
		return append([]any{
			&p.ID,
			&p.TitleEn, &p.TitleAr, &p.AbstractEn, &p.AbstractAr,
			&p.FileURL, &p.CategoryID, &p.Downloads,
			&p.TagsEn, &p.TagsAr, &p.KeywordsEn, &p.KeywordsAr,
		}, p.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	DownloadsColumn: "downloads",
	SearchColumns:   []string{"title_en", "title_ar", "abstract_en", "abstract_ar"},
	Parents:         []Parent{ParentCategory},
	TagsEn:          "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar", "keywords_en", "keywords_ar"},
}

// Images is the schema for the images table. It is the only schema with the
// is_public gallery flag, which GetBySlug honors on top of is_published.
var Images = Schema[entity.Image]{
	Table: "images",
	Columns: withCommon(
		"title_en", "title_ar", "url", "is_public",
		"program_id", "project_id", "activity_id", "tags_en", "tags_ar",
	),
	Values: func(i *entity.Image) []any {
		return append([]any{
			i.TitleEn, i.TitleAr, i.URL, i.IsPublic,
			i.ProgramID, i.ProjectID, i.ActivityID, i.TagsEn, i.TagsAr,
		}, i.CommonValues()...)
	},
	Dest: func(i *entity.Image) []any {
		return append([]any{
			&i.ID,
			&i.TitleEn, &i.TitleAr, &i.URL, &i.IsPublic,
			&i.ProgramID, &i.ProjectID, &i.ActivityID, &i.TagsEn, &i.TagsAr,
		}, i.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	PublicFlag:    "is_public",
	SearchColumns: []string{"title_en", "title_ar"},
	Parents:       []Parent{ParentProgram, ParentProject, ParentActivity},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar"},
}

// SuccessStories is the schema for the success_stories table.
var SuccessStories = Schema[entity.SuccessStory]{
	Table: "success_stories",
	Columns: withCommon(
		"title_en", "title_ar", "story_en", "story_ar",
		"program_id", "tags_en", "tags_ar",
	),
	Values: func(s *entity.SuccessStory) []any {
		return append([]any{
			s.TitleEn, s.TitleAr, s.StoryEn, s.StoryAr,
			s.ProgramID, s.TagsEn, s.TagsAr,
		}, s.CommonValues()...)
	},
	Dest: func(s *entity.SuccessStory) []any {
		return append([]any{
			&s.ID,
			&s.TitleEn, &s.TitleAr, &s.StoryEn, &s.StoryAr,
			&s.ProgramID, &s.TagsEn, &s.TagsAr,
		}, s.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	SearchColumns: []string{"title_en", "title_ar", "story_en", "story_ar"},
	Parents:       []Parent{ParentProgram},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar"},
}

// FAQs is the schema for the faqs table. The question columns stand in for
// the title in search.
var FAQs = Schema[entity.FAQ]{
	Table: "faqs",
	Columns: withCommon(
		"question_en", "question_ar", "answer_en", "answer_ar",
		"category_id", "tags_en", "tags_ar",
	),
	Values: func(f *entity.FAQ) []any {
		return append([]any{
			f.QuestionEn, f.QuestionAr, f.AnswerEn, f.AnswerAr,
			f.CategoryID, f.TagsEn, f.TagsAr,
		}, f.CommonValues()...)
	},
	Dest: func(f *entity.FAQ) []any {
		return append([]any{
			&f.ID,
			&f.QuestionEn, &f.QuestionAr, &f.AnswerEn, &f.AnswerAr,
			&f.CategoryID, &f.TagsEn, &f.TagsAr,
		}, f.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	SearchColumns: []string{"question_en", "question_ar", "answer_en", "answer_ar"},
	Parents:       []Parent{ParentCategory},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar"},
}

// Jobs is the schema for the jobs table.
var Jobs = Schema[entity.Job]{
	Table: "jobs",
	Columns: withCommon(
		"title_en", "title_ar", "description_en", "description_ar",
		"location_en", "location_ar", "deadline", "tags_en", "tags_ar",
	),
	Values: func(j *entity.Job) []any {
		return append([]any{
			j.TitleEn, j.TitleAr, j.DescriptionEn, j.DescriptionAr,
			j.LocationEn, j.LocationAr, j.Deadline, j.TagsEn, j.TagsAr,
		}, j.CommonValues()...)
	},
	Dest: func(j *entity.Job) []any {
		return append([]any{
			&j.ID,
			&j.TitleEn, &j.TitleAr, &j.DescriptionEn, &j.DescriptionAr,
			&j.LocationEn, &j.LocationAr, &j.Deadline, &j.TagsEn, &j.TagsAr,
		}, j.CommonDest()...)
	},
	SlugEn: "slug_en", SlugAr: "slug_ar",
	SearchColumns: []string{"title_en", "title_ar", "description_en", "description_ar"},
	TagsEn:        "tags_en", TagsAr: "tags_ar",
	ArrayColumns: []string{"tags_en", "tags_ar"},
}
