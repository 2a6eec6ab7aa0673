package entity

// Project is a concrete funded effort under a program.
type Project struct {
	Content
	TitleEn       string   `json:"title_en"`
	TitleAr       string   `json:"title_ar"`
	DescriptionEn string   `json:"description_en"`
	DescriptionAr string   `json:"description_ar"`
	ProgramID     *int64   `json:"program_id"`
	CategoryID    *int64   `json:"category_id"`
	TagsEn        []string `json:"tags_en"`
	TagsAr        []string `json:"tags_ar"`
}

// Validate checks the required bilingual fields and slugs.
func (p *Project) Validate() error {
	if err := RequireBilingual("title", p.TitleEn, p.TitleAr); err != nil {
		return err
	}
	return p.validateCommon()
}
