package entity

// Image is a gallery photo attached to a program, project, or activity.
// IsPublic gates gallery visibility on top of the publish flag: an image may
// be published for use inside pages while staying out of public galleries.
type Image struct {
	Content
	TitleEn    string   `json:"title_en"`
	TitleAr    string   `json:"title_ar"`
	URL        string   `json:"url"`
	IsPublic   bool     `json:"is_public"`
	ProgramID  *int64   `json:"program_id"`
	ProjectID  *int64   `json:"project_id"`
	ActivityID *int64   `json:"activity_id"`
	TagsEn     []string `json:"tags_en"`
	TagsAr     []string `json:"tags_ar"`
}

// Validate checks the required bilingual fields, the image URL, and slugs.
func (i *Image) Validate() error {
	if err := RequireBilingual("title", i.TitleEn, i.TitleAr); err != nil {
		return err
	}
	if i.URL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}
	return i.validateCommon()
}
