package model

import (
	"time"
)

// Answer is one response's value for one question. For long-answer questions
// AnswerText may be typed text, a machine transcript, or both joined by a
// blank line; TranscriptText holds the most recent transcript segment and
// AudioURL points at the recording it came from. Rows are immutable once the
// parent response is stored.
type Answer struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ResponseID     uint      `json:"response_id" gorm:"not null;index"`
	QuestionID     uint      `json:"question_id" gorm:"not null;index"`
	Question       Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText     *string   `json:"answer_text,omitempty" gorm:"type:text"`
	AudioURL       *string   `json:"audio_url,omitempty"`
	TranscriptText *string   `json:"transcript_text,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
}

// Text returns the stored answer text or "" when absent.
func (a *Answer) Text() string {
	if a.AnswerText == nil {
		return ""
	}
	return *a.AnswerText
}
