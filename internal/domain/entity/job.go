package entity

import "time"

// Job is an open position announced on the careers page. Deadline is the
// application cutoff; listing past-deadline jobs is the caller's concern.
type Job struct {
	Content
	TitleEn       string     `json:"title_en"`
	TitleAr       string     `json:"title_ar"`
	DescriptionEn string     `json:"description_en"`
	DescriptionAr string     `json:"description_ar"`
	LocationEn    string     `json:"location_en"`
	LocationAr    string     `json:"location_ar"`
	Deadline      *time.Time `json:"deadline"`
	TagsEn        []string   `json:"tags_en"`
	TagsAr        []string   `json:"tags_ar"`
}

// Validate checks the required bilingual fields and slugs.
func (j *Job) Validate() error {
	if err := RequireBilingual("title", j.TitleEn, j.TitleAr); err != nil {
		return err
	}
	return j.validateCommon()
}
