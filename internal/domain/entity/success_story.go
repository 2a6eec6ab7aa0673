package entity

// SuccessStory is a beneficiary story published under a program.
type SuccessStory struct {
	Content
	TitleEn   string   `json:"title_en"`
	TitleAr   string   `json:"title_ar"`
	StoryEn   string   `json:"story_en"`
	StoryAr   string   `json:"story_ar"`
	ProgramID *int64   `json:"program_id"`
	TagsEn    []string `json:"tags_en"`
	TagsAr    []string `json:"tags_ar"`
}

// Validate checks the required bilingual fields and slugs.
func (s *SuccessStory) Validate() error {
	if err := RequireBilingual("title", s.TitleEn, s.TitleAr); err != nil {
		return err
	}
	if err := RequireBilingual("story", s.StoryEn, s.StoryAr); err != nil {
		return err
	}
	return s.validateCommon()
}
