package entity

// Activity is a dated event or field action carried out under a project.
// It keeps a reference to both the project and, denormalized, the program,
// so public pages can filter by either without a join.
type Activity struct {
	Content
	TitleEn       string   `json:"title_en"`
	TitleAr       string   `json:"title_ar"`
	DescriptionEn string   `json:"description_en"`
	DescriptionAr string   `json:"description_ar"`
	ProgramID     *int64   `json:"program_id"`
	ProjectID     *int64   `json:"project_id"`
	TagsEn        []string `json:"tags_en"`
	TagsAr        []string `json:"tags_ar"`
}

// Validate checks the required bilingual fields and slugs.
func (a *Activity) Validate() error {
	if err := RequireBilingual("title", a.TitleEn, a.TitleAr); err != nil {
		return err
	}
	return a.validateCommon()
}
