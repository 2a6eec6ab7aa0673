package entity

// Publication is a downloadable report or study. It is the one content type
// with a download counter in addition to page views; the counter is only
// mutated through the repository's atomic increment.
type Publication struct {
	Content
	TitleEn    string   `json:"title_en"`
	TitleAr    string   `json:"title_ar"`
	AbstractEn string   `json:"abstract_en"`
	AbstractAr string   `json:"abstract_ar"`
	FileURL    string   `json:"file_url"`
	CategoryID *int64   `json:"category_id"`
	Downloads  int64    `json:"downloads"`
	TagsEn     []string `json:"tags_en"`
	TagsAr     []string `json:"tags_ar"`
	KeywordsEn []string `json:"keywords_en"`
	KeywordsAr []string `json:"keywords_ar"`
}

// ResetServerOwned additionally clears the download counter.
func (p *Publication) ResetServerOwned() {
	p.Content.ResetServerOwned()
	p.Downloads = 0
}

// Validate checks the required bilingual fields, the file URL, and slugs.
func (p *Publication) Validate() error {
	if err := RequireBilingual("title", p.TitleEn, p.TitleAr); err != nil {
		return err
	}
	if p.FileURL == "" {
		return &ValidationError{Field: "file_url", Message: "is required"}
	}
	return p.validateCommon()
}
