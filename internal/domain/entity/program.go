package entity

// Program represents one of the foundation's long-running programs
// (e.g. clean water, education). Programs are the top of the content
// hierarchy: projects, activities, images, and stories hang off them.
type Program struct {
	Content
	TitleEn       string   `json:"title_en"`
	TitleAr       string   `json:"title_ar"`
	DescriptionEn string   `json:"description_en"`
	DescriptionAr string   `json:"description_ar"`
	TagsEn        []string `json:"tags_en"`
	TagsAr        []string `json:"tags_ar"`
	KeywordsEn    []string `json:"keywords_en"`
	KeywordsAr    []string `json:"keywords_ar"`
}

// Validate checks the required bilingual fields and slugs.
func (p *Program) Validate() error {
	if err := RequireBilingual("title", p.TitleEn, p.TitleAr); err != nil {
		return err
	}
	return p.validateCommon()
}
