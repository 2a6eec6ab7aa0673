package entity

// FAQ is a question/answer pair. The question plays the role other types
// give their title, including in the search columns.
type FAQ struct {
	Content
	QuestionEn string   `json:"question_en"`
	QuestionAr string   `json:"question_ar"`
	AnswerEn   string   `json:"answer_en"`
	AnswerAr   string   `json:"answer_ar"`
	CategoryID *int64   `json:"category_id"`
	TagsEn     []string `json:"tags_en"`
	TagsAr     []string `json:"tags_ar"`
}

// Validate checks the required bilingual fields and slugs.
func (f *FAQ) Validate() error {
	if err := RequireBilingual("question", f.QuestionEn, f.QuestionAr); err != nil {
		return err
	}
	if err := RequireBilingual("answer", f.AnswerEn, f.AnswerAr); err != nil {
		return err
	}
	return f.validateCommon()
}
